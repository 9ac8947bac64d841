package ai

import (
	"context"
	"strings"
)

// MockProvider returns a deterministic breakdown for demo mode and tests.
// It recognizes a small fixed vocabulary; anything else yields no items,
// which callers treat as a failed estimate and recover from locally.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

type mockFood struct {
	keyword         string
	food            string
	unit            string
	caloriesPerUnit float64
}

// The mock table intentionally disagrees slightly with the offline
// reference table so tests can tell which path produced an estimate.
var mockFoods = []mockFood{
	{keyword: "egg", food: "egg, large, cooked", unit: "piece", caloriesPerUnit: 74},
	{keyword: "toast", food: "whole wheat toast", unit: "slice", caloriesPerUnit: 81},
	{keyword: "bread", food: "whole wheat bread", unit: "slice", caloriesPerUnit: 81},
	{keyword: "oatmeal", food: "oatmeal, cooked", unit: "cup", caloriesPerUnit: 158},
	{keyword: "banana", food: "banana, medium", unit: "piece", caloriesPerUnit: 107},
	{keyword: "chicken", food: "chicken breast, grilled", unit: "oz", caloriesPerUnit: 46},
	{keyword: "rice", food: "white rice, cooked", unit: "cup", caloriesPerUnit: 204},
	{keyword: "salad", food: "mixed green salad with dressing", unit: "serving", caloriesPerUnit: 150},
	{keyword: "milk", food: "milk, 2%", unit: "cup", caloriesPerUnit: 122},
	{keyword: "coffee", food: "coffee with splash of milk", unit: "cup", caloriesPerUnit: 18},
}

func (p *MockProvider) EstimateMeal(ctx context.Context, req EstimateRequest) (EstimateResponse, error) {
	_ = ctx

	lowered := strings.ToLower(req.Text)

	var items []ItemBreakdown
	for _, f := range mockFoods {
		if !strings.Contains(lowered, f.keyword) {
			continue
		}
		items = append(items, ItemBreakdown{
			Food:            f.food,
			Quantity:        1,
			Unit:            f.unit,
			CaloriesPerUnit: f.caloriesPerUnit,
			Confidence:      "high",
			Source:          "mock nutrition model",
		})
	}

	resp := EstimateResponse{Items: items}
	if len(items) > 0 {
		resp.Tips = []string{"Demo mode estimate — values are approximate."}
	}
	return resp, nil
}
