package target

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/utilization/internal/rest"
	"github.com/klokku/utilization/pkg/fiscal"
	log "github.com/sirupsen/logrus"
)

type MonthTargetDTO struct {
	Month  string  `json:"month"`
	Target float64 `json:"target"`
}

type PlanDTO struct {
	UserName string           `json:"userName"`
	Months   []MonthTargetDTO `json:"months"`
}

func PlanToDTO(plan Plan) PlanDTO {
	months := make([]MonthTargetDTO, 0, fiscal.MonthsInYear)
	for i, value := range plan.Series() {
		months = append(months, MonthTargetDTO{Month: string(fiscal.At(i)), Target: value})
	}
	return PlanDTO{UserName: plan.UserName, Months: months}
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo}
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	person := mux.Vars(r)["person"]
	log.Debugf("Getting utilization plan for %s", person)
	plan, err := h.repo.Get(r.Context(), person)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Plan not found", person)
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, "Failed to load plan", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(plan)); err != nil {
		log.Errorf("failed to encode plan: %v", err)
	}
}
