package ai

import "context"

// Provider requests a per-item calorie breakdown for a free-form meal
// description from a generative backend.
type Provider interface {
	EstimateMeal(ctx context.Context, req EstimateRequest) (EstimateResponse, error)
}

// EstimateRequest carries the raw meal description text. No other contract
// is assumed about the backing service.
type EstimateRequest struct {
	Text string
}

// EstimateResponse is the structured per-item breakdown returned by the
// service. An empty Items list is treated by callers as a failed estimate.
type EstimateResponse struct {
	Items []ItemBreakdown
	Tips  []string
}

// ItemBreakdown describes one recognized food item.
type ItemBreakdown struct {
	Food            string
	Quantity        float64
	Unit            string
	CaloriesPerUnit float64
	Confidence      string // "low" | "medium" | "high"
	Source          string
	SourceURL       string
}
