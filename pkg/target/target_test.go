package target

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/utilization/pkg/fiscal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_SeriesIsInFiscalOrder(t *testing.T) {
	plan := Plan{UserName: "Jane Doe", Months: map[fiscal.Month]float64{fiscal.Mar: 0.9, fiscal.Apr: 0.7}}

	series := plan.Series()

	require.Len(t, series, 12)
	assert.Equal(t, 0.7, series[0])
	assert.Equal(t, 0.0, series[5])
	assert.Equal(t, 0.9, series[11])
}

func TestHandler_GetPlan(t *testing.T) {
	repo := NewRepositoryStub()
	require.NoError(t, repo.ReplaceAll(context.Background(), []Plan{
		{UserName: "Jane Doe", Months: map[fiscal.Month]float64{fiscal.Apr: 0.75}},
	}))
	r := mux.NewRouter()
	r.HandleFunc("/api/targets/{person}", NewHandler(repo).GetPlan).Methods("GET")

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/targets/Jane%20Doe", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var dto PlanDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.Equal(t, "Jane Doe", dto.UserName)
		assert.Equal(t, MonthTargetDTO{Month: "Apr", Target: 0.75}, dto.Months[0])
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/targets/Nobody", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

type brokenRepository struct{}

func (brokenRepository) Get(ctx context.Context, userName string) (Plan, error) {
	return Plan{}, errors.New("connection refused")
}

func (brokenRepository) ReplaceAll(ctx context.Context, plans []Plan) error {
	return errors.New("connection refused")
}

func TestHandler_GetPlan_RepositoryFailure(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/targets/{person}", NewHandler(brokenRepository{}).GetPlan).Methods("GET")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/targets/Jane%20Doe", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load plan")
}
