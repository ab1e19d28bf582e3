package timeentry

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/utilization/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ImportResultDTO struct {
	Batch   string `json:"batch"`
	Entries int    `json:"entries"`
	Users   int    `json:"users"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ImportReport replaces all time entries with the daily report CSV sent as the request body.
func (h *Handler) ImportReport(w http.ResponseWriter, r *http.Request) {
	log.Debug("Importing daily utilization report")
	result, err := h.service.Import(r.Context(), http.MaxBytesReader(w, r.Body, 32<<20), "upload")
	if err != nil {
		if errors.Is(err, ErrMalformedEntry) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid report", err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, "Failed to import report", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ImportResultDTO(result)); err != nil {
		log.Errorf("failed to encode import result: %v", err)
	}
}

func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.service.People(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to list people", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(people); err != nil {
		log.Errorf("failed to encode people: %v", err)
	}
}
