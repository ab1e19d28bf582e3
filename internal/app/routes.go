package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/utilization/internal/rest"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Activities
	r.HandleFunc("/api/activity", deps.ActivityHandler.List).Methods("GET")
	r.HandleFunc("/api/activity/{name}", deps.ActivityHandler.Classify).Methods("PUT")

	// Working-day calendar
	r.HandleFunc("/api/calendar", deps.CalendarHandler.GetDays).Methods("GET")
	r.HandleFunc("/api/calendar", deps.CalendarHandler.ReplaceDays).Methods("PUT")
	r.HandleFunc("/api/calendar/generate", deps.CalendarHandler.GenerateDays).Queries("from", "{from}", "to", "{to}").Methods("POST")

	// Time entries
	r.HandleFunc("/api/hours/import", deps.TimeEntryHandler.ImportReport).Methods("POST")
	r.HandleFunc("/api/people", deps.TimeEntryHandler.ListPeople).Methods("GET")

	// Planned utilization
	r.HandleFunc("/api/targets/{person}", deps.TargetHandler.GetPlan).Methods("GET")

	// Utilization
	r.HandleFunc("/api/utilization", deps.UtilizationHandler.GetReport).Methods("GET")
	r.HandleFunc("/api/utilization/breakdown", deps.UtilizationHandler.GetBreakdown).Methods("GET")

	// Google Sheets
	if deps.SyncHandler != nil {
		r.HandleFunc("/api/sync", deps.SyncHandler.Sync).Methods("POST")
	} else {
		r.HandleFunc("/api/sync", func(w http.ResponseWriter, _ *http.Request) {
			rest.WriteError(w, http.StatusServiceUnavailable, "Google Sheets sync is not configured", "")
		}).Methods("POST")
	}
}
