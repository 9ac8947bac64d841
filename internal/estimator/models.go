package estimator

import "github.com/avet102/meal-hub/internal/unitconv"

// Confidence is a three-level quality signal attached to an estimate or
// estimate item.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

var confidenceRank = map[string]int{
	ConfidenceLow:    0,
	ConfidenceMedium: 1,
	ConfidenceHigh:   2,
}

// weakest returns the lower of two confidence levels. Unknown values rank
// as low.
func weakest(a, b string) string {
	if confidenceRank[a] <= confidenceRank[b] {
		return a
	}
	return b
}

// Item is one recognized food item within an estimate.
type Item struct {
	Food            string        `json:"food"`
	Quantity        float64       `json:"quantity"`
	Unit            unitconv.Unit `json:"unit"`
	CaloriesPerUnit float64       `json:"calories_per_unit"`
	Calories        int           `json:"calories"`
	Confidence      string        `json:"confidence"`
	ConfidenceNote  string        `json:"confidence_note,omitempty"`
	Source          string        `json:"source"`
	SourceURL       string        `json:"source_url,omitempty"`
}

// FoodEstimate is a computed breakdown of calories for a meal's text.
// A zero-item estimate is a valid result, not an error.
type FoodEstimate struct {
	Items         []Item   `json:"items"`
	TotalCalories int      `json:"total_calories"`
	Confidence    string   `json:"confidence"`
	Tips          []string `json:"tips,omitempty"`
}

// Clarification is an advisory multiple-choice question for inputs where
// the matched food has materially different calorie profiles depending on
// an unspecified attribute. It never blocks estimation.
type Clarification struct {
	MatchedFood string   `json:"matched_food"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
}
