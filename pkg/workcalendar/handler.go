package workcalendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/klokku/utilization/internal/rest"
	"github.com/klokku/utilization/internal/utils"
	log "github.com/sirupsen/logrus"
)

type DayDTO struct {
	Date      string `json:"date"`
	Remaining int    `json:"remaining"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetDays(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing calendar days")
	calendar, err := h.service.Calendar(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to load calendar", err.Error())
		return
	}
	days := calendar.Days()
	dtos := make([]DayDTO, 0, len(days))
	for _, d := range days {
		dtos = append(dtos, DayDTO{Date: d.Date.Format(time.DateOnly), Remaining: d.Remaining})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("failed to encode calendar: %v", err)
	}
}

// ReplaceDays replaces the whole calendar with a CSV upload (Date,Remaining).
func (h *Handler) ReplaceDays(w http.ResponseWriter, r *http.Request) {
	days, err := ParseCSV(r.Body)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid calendar", err.Error())
		return
	}
	if err := h.service.ReplaceAll(r.Context(), days, "api"); err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to store calendar", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateDays replaces the calendar with a weekday calendar between the from and to query
// dates (to exclusive).
func (h *Handler) GenerateDays(w http.ResponseWriter, r *http.Request) {
	from, errFrom := utils.ParseDate(r.URL.Query().Get("from"))
	to, errTo := utils.ParseDate(r.URL.Query().Get("to"))
	if err := errors.Join(errFrom, errTo); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
		return
	}
	if !from.Before(to) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", "from must be before to")
		return
	}
	days := Generate(from, to, nil)
	if err := h.service.ReplaceAll(r.Context(), days, "generated"); err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to store calendar", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
