package calibration

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// HandleGet handles GET /v1/calibration?profile_id=
func HandleGet(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, ok := profileIDFromQuery(w, r)
		if !ok {
			return
		}

		period, err := service.GetPeriod(r.Context(), profileID)
		if err != nil {
			respondError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, period)
	}
}

// HandleStart handles POST /v1/calibration/start
func HandleStart(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProfileRequest
		if !decodeBody(w, r, &req) {
			return
		}

		period, err := service.StartPeriod(r.Context(), req.ProfileID)
		if err != nil {
			respondError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, period)
	}
}

// HandleDismiss handles POST /v1/calibration/dismiss
func HandleDismiss(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProfileRequest
		if !decodeBody(w, r, &req) {
			return
		}

		period, err := service.Dismiss(r.Context(), req.ProfileID)
		if err != nil {
			respondError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, period)
	}
}

// HandleAlign handles POST /v1/calibration/align
func HandleAlign(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProfileRequest
		if !decodeBody(w, r, &req) {
			return
		}

		period, err := service.AlignToCurrentWeek(r.Context(), req.ProfileID)
		if err != nil {
			respondError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, period)
	}
}

// HandleAddMeal handles POST /v1/calibration/days/{day}/meals
func HandleAddMeal(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := Weekday(r.PathValue("day"))

		var req AddMealRequest
		if !decodeBody(w, r, &req) {
			return
		}

		meal, err := service.AddMeal(r.Context(), req.ProfileID, day, req.Type, req.Label)
		if err != nil {
			respondError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, meal)
	}
}

// HandleUpdateMeal handles PATCH /v1/calibration/days/{day}/meals/{id}
func HandleUpdateMeal(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := Weekday(r.PathValue("day"))
		mealID, ok := mealIDFromPath(w, r)
		if !ok {
			return
		}

		var req UpdateMealRequest
		if !decodeBody(w, r, &req) {
			return
		}

		meal, err := service.UpdateMeal(r.Context(), req.ProfileID, day, mealID, req)
		if err != nil {
			respondError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, meal)
	}
}

// HandleRemoveMeal handles DELETE /v1/calibration/days/{day}/meals/{id}?profile_id=
func HandleRemoveMeal(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := Weekday(r.PathValue("day"))
		mealID, ok := mealIDFromPath(w, r)
		if !ok {
			return
		}
		profileID, ok := profileIDFromQuery(w, r)
		if !ok {
			return
		}

		if err := service.RemoveMeal(r.Context(), profileID, day, mealID); err != nil {
			respondError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleReorderMeals handles PUT /v1/calibration/days/{day}/meals/order
func HandleReorderMeals(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := Weekday(r.PathValue("day"))

		var req ReorderMealsRequest
		if !decodeBody(w, r, &req) {
			return
		}

		meals, err := service.ReorderMeals(r.Context(), req.ProfileID, day, req.Order)
		if err != nil {
			respondError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string][]MealEntry{"meals": meals})
	}
}

// HandleCompleteDay handles POST /v1/calibration/days/{day}/complete
func HandleCompleteDay(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := Weekday(r.PathValue("day"))

		var req ProfileRequest
		if !decodeBody(w, r, &req) {
			return
		}

		period, err := service.CompleteDay(r.Context(), req.ProfileID, day)
		if err != nil {
			respondError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, period)
	}
}

// HandleTrackingMode handles POST /v1/calibration/tracking-mode
func HandleTrackingMode(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TrackingModeRequest
		if !decodeBody(w, r, &req) {
			return
		}

		period, err := service.SetTrackingMode(r.Context(), req.ProfileID, req.Mode)
		if err != nil {
			respondError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, period)
	}
}

// respondError maps service sentinels to JSON error responses
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "profile_not_found", err.Error())
	case errors.Is(err, ErrPeriodNotFound):
		writeError(w, http.StatusNotFound, "period_not_found", err.Error())
	case errors.Is(err, ErrMealNotFound):
		writeError(w, http.StatusNotFound, "meal_not_found", err.Error())
	case errors.Is(err, ErrUnknownDay):
		writeError(w, http.StatusBadRequest, "unknown_day", err.Error())
	case errors.Is(err, ErrInvalidMealType):
		writeError(w, http.StatusBadRequest, "invalid_type", err.Error())
	case errors.Is(err, ErrInvalidMode):
		writeError(w, http.StatusBadRequest, "invalid_mode", err.Error())
	case errors.Is(err, ErrNotAPermutation):
		writeError(w, http.StatusBadRequest, "not_a_permutation", err.Error())
	case errors.Is(err, ErrNotEligible):
		writeError(w, http.StatusConflict, "not_eligible", err.Error())
	case errors.Is(err, ErrLastMeal):
		writeError(w, http.StatusConflict, "last_meal", err.Error())
	case errors.Is(err, ErrPeriodNotComplete):
		writeError(w, http.StatusConflict, "period_not_complete", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
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

func mealIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "missing_id", "meal id is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid meal id format")
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
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
