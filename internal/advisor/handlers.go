package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// HandleList handles GET /v1/advisor/additions?profile_id=&status=
func HandleList(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileIDStr := r.URL.Query().Get("profile_id")
		if profileIDStr == "" {
			writeError(w, http.StatusBadRequest, "missing_params", "profile_id is required")
			return
		}
		profileID, err := uuid.Parse(profileIDStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_profile_id", "invalid profile_id format")
			return
		}

		additions, err := service.List(r.Context(), profileID, r.URL.Query().Get("status"))
		if err != nil {
			respondError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(AdditionsResponse{Additions: additions})
	}
}

// HandleCreate handles POST /v1/advisor/additions
func HandleCreate(service *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAdditionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}

		addition, err := service.Create(r.Context(), req)
		if err != nil {
			respondError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(addition)
	}
}

// HandleApprove handles POST /v1/advisor/additions/{id}/approve
func HandleApprove(service *Service) http.HandlerFunc {
	return additionAction(service.Approve)
}

// HandleUndo handles POST /v1/advisor/additions/{id}/undo
func HandleUndo(service *Service) http.HandlerFunc {
	return additionAction(service.Undo)
}

func additionAction(action func(ctx context.Context, id uuid.UUID) (*AdditionDTO, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := r.PathValue("id")
		if idStr == "" {
			writeError(w, http.StatusBadRequest, "missing_id", "addition id is required")
			return
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_id", "invalid addition id format")
			return
		}

		addition, err := action(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(addition)
	}
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "profile_not_found", err.Error())
	case errors.Is(err, ErrAdditionNotFound):
		writeError(w, http.StatusNotFound, "addition_not_found", err.Error())
	case errors.Is(err, ErrInvalidKind):
		writeError(w, http.StatusBadRequest, "invalid_kind", err.Error())
	case errors.Is(err, ErrInvalidDay):
		writeError(w, http.StatusBadRequest, "unknown_day", err.Error())
	case errors.Is(err, ErrEmptyContent):
		writeError(w, http.StatusBadRequest, "empty_content", err.Error())
	case errors.Is(err, ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_taken", err.Error())
	case errors.Is(err, ErrNotPending):
		writeError(w, http.StatusConflict, "not_pending", err.Error())
	case errors.Is(err, ErrNotApplied):
		writeError(w, http.StatusConflict, "not_applied", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
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
