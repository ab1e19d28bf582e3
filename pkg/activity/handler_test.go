package activity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *mux.Router {
	service, _, _ := setup(t)
	handler := NewHandler(service)
	r := mux.NewRouter()
	r.HandleFunc("/api/activity", handler.List).Methods("GET")
	r.HandleFunc("/api/activity/{name}", handler.Classify).Methods("PUT")
	return r
}

func TestHandler_ClassifyAndList(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/activity/Holiday", strings.NewReader(`{"classification":"time off"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var activities []ActivityDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&activities))
	assert.Equal(t, []ActivityDTO{{Name: "Holiday", Classification: "Time Off"}}, activities)
}

func TestHandler_Classify_InvalidClassification(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/activity/Holiday", strings.NewReader(`{"classification":"Overhead"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid classification")
}
