package mealpatterns

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// HandleGet handles GET /v1/meal-pattern?profile_id=
func HandleGet(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, ok := profileIDFromQuery(w, r)
		if !ok {
			return
		}

		resp, err := service.GetOrDefault(r.Context(), profileID)
		if err != nil {
			if errors.Is(err, ErrProfileNotFound) {
				writeError(w, http.StatusNotFound, "profile_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// HandlePut handles PUT /v1/meal-pattern
func HandlePut(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProfileID uuid.UUID  `json:"profile_id"`
			Pattern   PatternDTO `json:"pattern"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}

		pattern, err := service.Upsert(r.Context(), req.ProfileID, req.Pattern)
		if err != nil {
			if errors.Is(err, ErrProfileNotFound) {
				writeError(w, http.StatusNotFound, "profile_not_found", err.Error())
				return
			}
			writeError(w, http.StatusBadRequest, "invalid_pattern", err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(pattern)
	}
}

func profileIDFromQuery(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.URL.Query().Get("profile_id")
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "missing_params", "profile_id is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_profile_id", "invalid profile_id format")
		return uuid.Nil, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
