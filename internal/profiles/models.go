package profiles

import (
	"time"

	"github.com/google/uuid"
)

// ProfileDTO is the API response format
type ProfileDTO struct {
	ID          uuid.UUID `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfilesResponse is the response for GET /v1/profiles
type ProfilesResponse struct {
	Profiles []ProfileDTO `json:"profiles"`
}

// CreateProfileRequest is the request body for POST /v1/profiles
type CreateProfileRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// UpdateProfileRequest is the request body for PATCH /v1/profiles/{id}
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
