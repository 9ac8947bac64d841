package estimator

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/avet102/meal-hub/internal/ai"
	"github.com/avet102/meal-hub/internal/unitconv"
)

// Result is an estimate plus the path that produced it.
type Result struct {
	Estimate FoodEstimate `json:"estimate"`
	IsAI     bool         `json:"is_ai"`
}

// Assisted combines the rule-based estimator, the estimate cache and an
// external AI provider. Its contract is degraded-but-available: Estimate
// never returns an error — any provider failure falls back to the
// rule-based result.
type Assisted struct {
	provider ai.Provider
	cache    *Cache
	timeout  time.Duration
}

func NewAssisted(provider ai.Provider, cache *Cache, timeout time.Duration) *Assisted {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Assisted{
		provider: provider,
		cache:    cache,
		timeout:  timeout,
	}
}

// Provisional returns the rule-based estimate immediately, for display
// while an external request is pending. The interface is never blank.
func (a *Assisted) Provisional(text string) Result {
	return Result{Estimate: Estimate(text), IsAI: false}
}

// Estimate resolves an estimate for the meal text.
//
//  1. Cache hit → resolve immediately with the cached path flag.
//  2. Otherwise ask the provider, bounded by the configured timeout.
//  3. Success → cache tagged as AI and return it.
//  4. Failure, timeout or an unusable breakdown → rule-based result,
//     IsAI=false. The failure is never surfaced as an error.
func (a *Assisted) Estimate(ctx context.Context, text string) Result {
	key := Normalize(text)

	if e, ok := a.cache.Get(key); ok {
		return Result{Estimate: e.Estimate, IsAI: e.IsAI}
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.provider.EstimateMeal(reqCtx, ai.EstimateRequest{Text: text})
	if err == nil {
		if est, ok := estimateFromBreakdown(resp); ok {
			a.cache.Put(key, est, true)
			return Result{Estimate: est, IsAI: true}
		}
	}

	fallback := Estimate(text)
	a.cache.Put(key, fallback, false)
	return Result{Estimate: fallback, IsAI: false}
}

// estimateFromBreakdown converts a provider breakdown to a FoodEstimate.
// Reports false when the response is unusable (no valid items), which
// callers treat the same as a request failure.
func estimateFromBreakdown(resp ai.EstimateResponse) (FoodEstimate, bool) {
	items := make([]Item, 0, len(resp.Items))
	total := 0
	overall := ""

	for _, b := range resp.Items {
		if strings.TrimSpace(b.Food) == "" || b.Quantity <= 0 || b.CaloriesPerUnit < 0 {
			continue
		}

		conf := strings.ToLower(strings.TrimSpace(b.Confidence))
		if _, ok := confidenceRank[conf]; !ok {
			conf = ConfidenceLow
		}

		unit, ok := unitconv.Parse(b.Unit)
		if !ok {
			unit = unitconv.UnitServing
		}

		it := Item{
			Food:            b.Food,
			Quantity:        b.Quantity,
			Unit:            unit,
			CaloriesPerUnit: b.CaloriesPerUnit,
			Calories:        int(math.Round(b.CaloriesPerUnit * b.Quantity)),
			Confidence:      conf,
			Source:          b.Source,
			SourceURL:       b.SourceURL,
		}
		items = append(items, it)
		total += it.Calories
		if overall == "" {
			overall = conf
		} else {
			overall = weakest(overall, conf)
		}
	}

	if len(items) == 0 {
		return FoodEstimate{}, false
	}

	return FoodEstimate{
		Items:         items,
		TotalCalories: total,
		Confidence:    overall,
		Tips:          resp.Tips,
	}, true
}
