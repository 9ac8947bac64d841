package estimator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avet102/meal-hub/internal/ai"
)

// countingProvider implements ai.Provider for testing, tracking how many
// external requests were issued.
type countingProvider struct {
	calls int
	fail  bool
	empty bool
	items []ai.ItemBreakdown
}

func (p *countingProvider) EstimateMeal(ctx context.Context, req ai.EstimateRequest) (ai.EstimateResponse, error) {
	p.calls++
	if p.fail {
		return ai.EstimateResponse{}, errors.New("network down")
	}
	if p.empty {
		return ai.EstimateResponse{}, nil
	}
	items := p.items
	if items == nil {
		items = []ai.ItemBreakdown{
			{Food: "scrambled eggs", Quantity: 2, Unit: "piece", CaloriesPerUnit: 91, Confidence: "high", Source: "model"},
		}
	}
	return ai.EstimateResponse{Items: items}, nil
}

func newTestAssisted(p ai.Provider) *Assisted {
	return NewAssisted(p, NewCache(16), 2*time.Second)
}

func TestAssistedSuccess(t *testing.T) {
	provider := &countingProvider{}
	a := newTestAssisted(provider)

	res := a.Estimate(context.Background(), "2 eggs")

	if !res.IsAI {
		t.Error("expected AI-path result")
	}
	if res.Estimate.TotalCalories != 182 {
		t.Errorf("expected total 182, got %d", res.Estimate.TotalCalories)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 external call, got %d", provider.calls)
	}
}

// For a fixed content string, a second call with no interleaving state
// change is served from the cache without a new external request.
func TestAssistedCacheHitSkipsExternalCall(t *testing.T) {
	provider := &countingProvider{}
	a := newTestAssisted(provider)

	first := a.Estimate(context.Background(), "2 eggs")
	second := a.Estimate(context.Background(), "  2 EGGS ")

	if provider.calls != 1 {
		t.Errorf("expected exactly 1 external call, got %d", provider.calls)
	}
	if second.IsAI != first.IsAI || second.Estimate.TotalCalories != first.Estimate.TotalCalories {
		t.Error("cached result must match the original")
	}
}

func TestAssistedFallbackOnFailure(t *testing.T) {
	provider := &countingProvider{fail: true}
	a := newTestAssisted(provider)

	res := a.Estimate(context.Background(), "2 eggs and a slice of toast")

	if res.IsAI {
		t.Error("expected degraded (non-AI) result")
	}
	// Rule-based path alone: 2×78 + 75.
	if res.Estimate.TotalCalories != 231 {
		t.Errorf("expected rule-based total 231, got %d", res.Estimate.TotalCalories)
	}
}

func TestAssistedFallbackOnEmptyBreakdown(t *testing.T) {
	provider := &countingProvider{empty: true}
	a := newTestAssisted(provider)

	res := a.Estimate(context.Background(), "2 eggs")

	if res.IsAI {
		t.Error("an unusable breakdown must degrade to the rule-based path")
	}
	if res.Estimate.TotalCalories != 156 {
		t.Errorf("expected rule-based total 156, got %d", res.Estimate.TotalCalories)
	}
}

func TestAssistedSkipsInvalidItems(t *testing.T) {
	provider := &countingProvider{items: []ai.ItemBreakdown{
		{Food: "", Quantity: 1, CaloriesPerUnit: 100, Confidence: "high"},
		{Food: "rice", Quantity: -1, CaloriesPerUnit: 100, Confidence: "high"},
		{Food: "rice", Quantity: 1, Unit: "cup", CaloriesPerUnit: 206, Confidence: "shrug"},
	}}
	a := newTestAssisted(provider)

	res := a.Estimate(context.Background(), "rice")

	if !res.IsAI {
		t.Fatal("one valid item should be enough for an AI result")
	}
	if len(res.Estimate.Items) != 1 {
		t.Fatalf("expected 1 valid item, got %d", len(res.Estimate.Items))
	}
	// Unknown confidence strings rank as low.
	if res.Estimate.Items[0].Confidence != ConfidenceLow {
		t.Errorf("expected low confidence, got %s", res.Estimate.Items[0].Confidence)
	}
}

func TestAssistedProvisionalNeverCallsProvider(t *testing.T) {
	provider := &countingProvider{}
	a := newTestAssisted(provider)

	res := a.Provisional("2 eggs")

	if res.IsAI {
		t.Error("provisional results are never AI")
	}
	if res.Estimate.TotalCalories != 156 {
		t.Errorf("expected rule-based total 156, got %d", res.Estimate.TotalCalories)
	}
	if provider.calls != 0 {
		t.Errorf("provisional must not issue external calls, got %d", provider.calls)
	}
}

func TestRevisionDiscardsStaleResults(t *testing.T) {
	var rev Revision

	token := rev.Bump()
	if !rev.Current(token) {
		t.Fatal("fresh token must be current")
	}

	// The user edits the content before the response lands.
	newer := rev.Bump()

	if rev.Current(token) {
		t.Error("stale token must not be current")
	}
	if !rev.Current(newer) {
		t.Error("latest token must be current")
	}
}
