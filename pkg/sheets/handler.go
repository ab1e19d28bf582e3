package sheets

import (
	"encoding/json"
	"net/http"

	"github.com/klokku/utilization/internal/rest"
	log "github.com/sirupsen/logrus"
)

type SyncResultDTO struct {
	Batch        string `json:"batch"`
	Entries      int    `json:"entries"`
	Activities   int    `json:"activities"`
	CalendarDays int    `json:"calendarDays"`
	People       int    `json:"people"`
	Targets      int    `json:"targets"`
	DurationMs   int64  `json:"durationMs"`
}

type Handler struct {
	service SyncService
}

func NewHandler(service SyncService) *Handler {
	return &Handler{service}
}

func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	log.Debug("Syncing inputs from Google Sheets")
	result, err := h.service.Sync(r.Context())
	if err != nil {
		log.Errorf("sync failed: %v", err)
		rest.WriteError(w, http.StatusBadGateway, "Failed to sync from Google Sheets", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SyncResultDTO{
		Batch:        result.Batch,
		Entries:      result.Entries,
		Activities:   result.Activities,
		CalendarDays: result.CalendarDays,
		People:       result.People,
		Targets:      result.Targets,
		DurationMs:   result.Duration.Milliseconds(),
	}); err != nil {
		log.Errorf("failed to encode sync result: %v", err)
	}
}
