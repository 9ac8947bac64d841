package estimator

import (
	"encoding/json"
	"net/http"
)

const maxTextLength = 4000

type estimateRequest struct {
	Text string `json:"text"`
	// Revision is the caller's input generation token. It is echoed back
	// so the editing surface can discard responses for stale content.
	Revision int64 `json:"revision"`
}

type estimateResponse struct {
	Estimate      FoodEstimate   `json:"estimate"`
	IsAI          bool           `json:"is_ai"`
	Clarification *Clarification `json:"clarification,omitempty"`
	Revision      int64          `json:"revision"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleEstimate handles POST /v1/estimates.
// Zero-item estimates and degraded (non-AI) results are successes, not
// errors — the response is always a usable estimate.
func HandleEstimate(assisted *Assisted) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeEstimateRequest(w, r)
		if !ok {
			return
		}

		result := assisted.Estimate(r.Context(), req.Text)

		writeEstimate(w, estimateResponse{
			Estimate:      result.Estimate,
			IsAI:          result.IsAI,
			Clarification: NeedsClarification(req.Text),
			Revision:      req.Revision,
		})
	}
}

// HandleProvisional handles POST /v1/estimates/provisional.
// Rule-based only, no external call — for instant display while the
// assisted estimate is in flight.
func HandleProvisional(assisted *Assisted) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeEstimateRequest(w, r)
		if !ok {
			return
		}

		result := assisted.Provisional(req.Text)

		writeEstimate(w, estimateResponse{
			Estimate:      result.Estimate,
			IsAI:          false,
			Clarification: NeedsClarification(req.Text),
			Revision:      req.Revision,
		})
	}
}

func decodeEstimateRequest(w http.ResponseWriter, r *http.Request) (estimateRequest, bool) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return estimateRequest{}, false
	}
	if len(req.Text) > maxTextLength {
		writeError(w, http.StatusBadRequest, "text_too_long", "meal text is too long")
		return estimateRequest{}, false
	}
	return req, true
}

func writeEstimate(w http.ResponseWriter, resp estimateResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
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
