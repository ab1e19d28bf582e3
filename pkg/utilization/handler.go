package utilization

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/klokku/utilization/internal/rest"
	log "github.com/sirupsen/logrus"
)

type MonthRowDTO struct {
	Month                string   `json:"month"`
	Capacity             float64  `json:"capacity"`
	Billable             float64  `json:"billable"`
	RAndD                float64  `json:"rAndD"`
	Other                float64  `json:"other"`
	TimeOff              float64  `json:"timeOff"`
	Utilization          float64  `json:"utilization"`
	UtilizationToDate    float64  `json:"utilizationToDate"`
	ProjectedHours       float64  `json:"projectedHours"`
	ProjectedUtilization float64  `json:"projectedUtilization"`
	Forecast             bool     `json:"forecast"`
	Planned              *float64 `json:"planned,omitempty"`
}

type OutlookDTO struct {
	Predicted float64 `json:"predicted"`
	Target    float64 `json:"target"`
	Status    string  `json:"status"`
	Shortfall float64 `json:"shortfall"`
	Message   string  `json:"message,omitempty"`
}

type ReportDTO struct {
	Person          string        `json:"person"`
	Method          string        `json:"method"`
	BySemester      bool          `json:"bySemester"`
	FiscalYearStart time.Time     `json:"fiscalYearStart"`
	HireDate        time.Time     `json:"hireDate"`
	LastDayWorked   time.Time     `json:"lastDayWorked"`
	CurrentMonth    string        `json:"currentMonth"`
	ValidThrough    string        `json:"validThrough"`
	Predicted       float64       `json:"predicted"`
	Months          []MonthRowDTO `json:"months"`
	Outlook         OutlookDTO    `json:"outlook"`
}

type ShareDTO struct {
	Label     string  `json:"label"`
	Billable  float64 `json:"billable"`
	RAndD     float64 `json:"rAndD"`
	Other     float64 `json:"other"`
	TimeOff   float64 `json:"timeOff"`
	Aggregate bool    `json:"aggregate"`
}

type BreakdownDTO struct {
	Person       string     `json:"person"`
	CurrentMonth string     `json:"currentMonth"`
	BySemester   bool       `json:"bySemester"`
	Columns      []ShareDTO `json:"columns"`
	Planned      []float64  `json:"planned,omitempty"`
}

type Handler struct {
	service     Service
	csvRenderer Renderer
	defaults    Params
}

// NewHandler creates the utilization handler. defaults supplies the method and semester mode
// used when a request does not set them.
func NewHandler(service Service, csvRenderer Renderer, defaults Params) *Handler {
	return &Handler{service: service, csvRenderer: csvRenderer, defaults: defaults}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseParams(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	log.Debugf("Getting utilization report for %s (%s)", params.Person, params.Method)

	result, err := h.service.Report(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.csvRenderer.RenderReport(result)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv report: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ResultToDTO(result)); err != nil {
		log.Errorf("failed to encode report: %v", err)
	}
}

func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseParams(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	log.Debugf("Getting utilization breakdown for %s", params.Person)

	breakdown, err := h.service.Breakdown(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BreakdownToDTO(breakdown)); err != nil {
		log.Errorf("failed to encode breakdown: %v", err)
	}
}

func (h *Handler) parseParams(r *http.Request) (Params, error) {
	query := r.URL.Query()
	params := h.defaults

	params.Person = query.Get("person")
	if params.Person == "" {
		return Params{}, errors.New("person is required")
	}
	if query.Has("method") {
		method, err := ParseMethod(query.Get("method"))
		if err != nil {
			return Params{}, err
		}
		params.Method = method
	}
	if query.Has("bySemester") {
		bySemester, err := strconv.ParseBool(query.Get("bySemester"))
		if err != nil {
			return Params{}, fmt.Errorf("bySemester must be true or false")
		}
		params.BySemester = bySemester
	}
	if query.Has("target") {
		target, err := strconv.ParseFloat(query.Get("target"), 64)
		if err != nil || target < 0 || target > 100 {
			return Params{}, fmt.Errorf("target must be a percentage between 0 and 100")
		}
		params.Target = target
	}
	return params, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPersonNotFound):
		rest.WriteError(w, http.StatusNotFound, "Person not found", err.Error())
	case errors.Is(err, ErrMalformedInput), errors.Is(err, ErrUnknownMethod):
		rest.WriteError(w, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, ErrCalendarGap):
		rest.WriteError(w, http.StatusUnprocessableEntity, "Calendar is incomplete", err.Error())
	default:
		log.Errorf("failed to build utilization report: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to build report", err.Error())
	}
}

func ResultToDTO(result Result) ReportDTO {
	report := result.Report
	months := make([]MonthRowDTO, 0, len(report.Months))
	for i, row := range report.Months {
		dto := MonthRowDTO{
			Month:                string(row.Month),
			Capacity:             row.Capacity,
			Billable:             row.Billable,
			RAndD:                row.RAndD,
			Other:                row.Other,
			TimeOff:              row.TimeOff,
			Utilization:          row.Utilization,
			UtilizationToDate:    row.UtilizationToDate,
			ProjectedHours:       row.ProjectedHours,
			ProjectedUtilization: row.ProjectedUtilization,
			Forecast:             row.Forecast,
		}
		if result.Planned != nil {
			planned := result.Planned[i]
			dto.Planned = &planned
		}
		months = append(months, dto)
	}
	return ReportDTO{
		Person:          report.Person,
		Method:          string(report.Method),
		BySemester:      report.BySemester,
		FiscalYearStart: report.FiscalYearStart,
		HireDate:        report.HireDate,
		LastDayWorked:   report.LastDayWorked,
		CurrentMonth:    string(report.CurrentMonth),
		ValidThrough:    report.ValidThrough(),
		Predicted:       report.Predicted,
		Months:          months,
		Outlook: OutlookDTO{
			Predicted: result.Outlook.Predicted,
			Target:    result.Outlook.Target,
			Status:    string(result.Outlook.Status),
			Shortfall: result.Outlook.Shortfall,
			Message:   result.Outlook.Message(),
		},
	}
}

func BreakdownToDTO(breakdown Breakdown) BreakdownDTO {
	columns := make([]ShareDTO, 0, len(breakdown.Columns))
	for _, c := range breakdown.Columns {
		columns = append(columns, ShareDTO{
			Label:     c.Label,
			Billable:  c.Billable,
			RAndD:     c.RAndD,
			Other:     c.Other,
			TimeOff:   c.TimeOff,
			Aggregate: c.Aggregate,
		})
	}
	return BreakdownDTO{
		Person:       breakdown.Person,
		CurrentMonth: string(breakdown.CurrentMonth),
		BySemester:   breakdown.BySemester,
		Columns:      columns,
		Planned:      breakdown.Planned,
	}
}
