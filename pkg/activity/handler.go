package activity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/utilization/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ActivityDTO struct {
	Name           string `json:"name"`
	Classification string `json:"classification"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing activities")
	activities, err := h.service.List(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to list activities", err.Error())
		return
	}

	dtos := make([]ActivityDTO, 0, len(activities))
	for _, a := range activities {
		dtos = append(dtos, ActivityDTO{Name: a.Name, Classification: string(a.Classification)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		log.Errorf("failed to encode activities: %v", err)
	}
}

// Classify stores the classification of the activity named in the path.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	log.Debugf("Classifying activity %q", name)

	var dto ActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	classification, err := ParseClassification(dto.Classification)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid classification", err.Error())
		return
	}

	stored, err := h.service.Classify(r.Context(), name, classification)
	if err != nil {
		if errors.Is(err, ErrUnknownClassification) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid classification", err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, "Failed to classify activity", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ActivityDTO{Name: stored.Name, Classification: string(stored.Classification)}); err != nil {
		log.Errorf("failed to encode activity: %v", err)
	}
}
