package timeentry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ImportReport(t *testing.T) {
	service, _, _ := setup(t)
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/hours/import", strings.NewReader(dailyReport))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	handler.ImportReport(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var result ImportResultDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 3, result.Entries)

	req = httptest.NewRequest(http.MethodGet, "/api/people", nil)
	w = httptest.NewRecorder()
	handler.ListPeople(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var people []string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&people))
	assert.Equal(t, []string{"Jane Doe", "John Roe"}, people)
}

func TestHandler_ImportReport_BadRequest(t *testing.T) {
	service, _, _ := setup(t)
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/hours/import", strings.NewReader("not,a,report\n"))
	w := httptest.NewRecorder()
	handler.ImportReport(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid report")
}
