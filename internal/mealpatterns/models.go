package mealpatterns

import (
	"fmt"
	"strings"

	"github.com/avet102/meal-hub/internal/calibration"
)

// maxSlots bounds how many template slots a day can carry
const maxSlots = 12

// SlotDTO is one meal slot of the template
type SlotDTO struct {
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

// PatternDTO is the saved meal-pattern template
type PatternDTO struct {
	Slots []SlotDTO `json:"slots"`
}

// PatternResponse wraps a pattern with a flag marking the system default
type PatternResponse struct {
	Pattern   PatternDTO `json:"pattern"`
	IsDefault bool       `json:"is_default"`
}

func (p PatternDTO) Validate() error {
	if len(p.Slots) == 0 {
		return fmt.Errorf("pattern needs at least one slot")
	}
	if len(p.Slots) > maxSlots {
		return fmt.Errorf("pattern may have at most %d slots", maxSlots)
	}
	for i, slot := range p.Slots {
		if !isValidType(slot.Type) {
			return fmt.Errorf("slot %d: invalid meal type %q", i, slot.Type)
		}
		if slot.Type == calibration.MealCustom && strings.TrimSpace(slot.Label) == "" {
			return fmt.Errorf("slot %d: custom slots need a label", i)
		}
	}
	return nil
}

func isValidType(t string) bool {
	for _, valid := range calibration.ValidMealTypes {
		if t == valid {
			return true
		}
	}
	return false
}

// defaultPattern is the system template used until the user saves one
var defaultPattern = PatternDTO{
	Slots: []SlotDTO{
		{Type: calibration.MealBreakfast},
		{Type: calibration.MealLunch},
		{Type: calibration.MealAfternoonSnack},
		{Type: calibration.MealDinner},
	},
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
