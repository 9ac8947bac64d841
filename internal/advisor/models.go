package advisor

import (
	"time"

	"github.com/avet102/meal-hub/internal/storage"
	"github.com/google/uuid"
)

// Addition kinds
const (
	KindNutrition = "nutrition"
)

// Addition statuses
const (
	StatusPending = "pending"
	StatusApplied = "applied"
	StatusUndone  = "undone"
)

// AdditionDTO is the API response format
type AdditionDTO struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	Kind      string    `json:"kind"`
	Day       string    `json:"day"`
	MealID    uuid.UUID `json:"meal_id"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAdditionRequest is the request body for registering a suggestion
type CreateAdditionRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Kind      string    `json:"kind"`
	Day       string    `json:"day"`
	MealID    uuid.UUID `json:"meal_id"`
	Content   string    `json:"content"`
}

// AdditionsResponse is the response for listing additions
type AdditionsResponse struct {
	Additions []AdditionDTO `json:"additions"`
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

func additionToDTO(a storage.AdvisorAddition) AdditionDTO {
	return AdditionDTO{
		ID:        a.ID,
		ProfileID: a.ProfileID,
		Kind:      a.Kind,
		Day:       a.Day,
		MealID:    a.MealID,
		Content:   a.Content,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
