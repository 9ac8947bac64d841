package estimator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newHandlerAssisted(p *countingProvider) *Assisted {
	return NewAssisted(p, NewCache(16), 2*time.Second)
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/estimates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleEstimate(t *testing.T) {
	provider := &countingProvider{fail: true}
	h := HandleEstimate(newHandlerAssisted(provider))

	rec := postJSON(t, h, `{"text":"2 eggs and a slice of toast","revision":7}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp estimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.IsAI {
		t.Error("provider failure must degrade, not error")
	}
	if resp.Estimate.TotalCalories != 231 {
		t.Errorf("expected total 231, got %d", resp.Estimate.TotalCalories)
	}
	if resp.Revision != 7 {
		t.Errorf("expected revision echoed back as 7, got %d", resp.Revision)
	}
}

func TestHandleEstimateClarification(t *testing.T) {
	provider := &countingProvider{fail: true}
	h := HandleEstimate(newHandlerAssisted(provider))

	rec := postJSON(t, h, `{"text":"a bowl of rice"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp estimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Clarification == nil {
		t.Fatal("expected a clarification for rice")
	}
	if resp.Clarification.MatchedFood != "rice" {
		t.Errorf("expected matched food rice, got %q", resp.Clarification.MatchedFood)
	}
	// Clarification rides along with a full estimate, it does not replace it.
	if resp.Estimate.TotalCalories == 0 {
		t.Error("estimate must still resolve alongside the clarification")
	}
}

func TestHandleEstimateInvalidJSON(t *testing.T) {
	h := HandleEstimate(newHandlerAssisted(&countingProvider{}))

	rec := postJSON(t, h, `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Error.Code != "invalid_json" {
		t.Errorf("expected code invalid_json, got %q", resp.Error.Code)
	}
}

func TestHandleEstimateTextTooLong(t *testing.T) {
	h := HandleEstimate(newHandlerAssisted(&countingProvider{}))

	body, _ := json.Marshal(estimateRequest{Text: strings.Repeat("x", maxTextLength+1)})
	rec := postJSON(t, h, string(body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Error.Code != "text_too_long" {
		t.Errorf("expected code text_too_long, got %q", resp.Error.Code)
	}
}

func TestHandleProvisional(t *testing.T) {
	provider := &countingProvider{}
	h := HandleProvisional(newHandlerAssisted(provider))

	rec := postJSON(t, h, `{"text":"2 eggs","revision":3}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp estimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.IsAI {
		t.Error("provisional results are never AI")
	}
	if resp.Estimate.TotalCalories != 156 {
		t.Errorf("expected total 156, got %d", resp.Estimate.TotalCalories)
	}
	if resp.Revision != 3 {
		t.Errorf("expected revision echoed back as 3, got %d", resp.Revision)
	}
	if provider.calls != 0 {
		t.Errorf("provisional must not issue external calls, got %d", provider.calls)
	}
}
