package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile represents a user profile (owner or guest)
type Profile struct {
	ID          uuid.UUID
	OwnerUserID string // "default" for MVP, later a uuid
	Type        string // "owner" or "guest"
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Storage is the interface for profile persistence
type Storage interface {
	// ListProfiles returns all profiles
	ListProfiles(ctx context.Context) ([]Profile, error)

	// GetProfile returns a profile by ID
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)

	// CreateProfile creates a new profile
	CreateProfile(ctx context.Context, profile *Profile) error

	// UpdateProfile updates a profile
	UpdateProfile(ctx context.Context, profile *Profile) error

	// DeleteProfile removes a profile
	DeleteProfile(ctx context.Context, id uuid.UUID) error

	// Close releases the connection (for Postgres)
	Close() error
}

// CalibrationStorage persists calibration periods wholesale. The period is
// an opaque JSON document keyed by profile; the service owns its shape.
type CalibrationStorage interface {
	// GetPeriod returns the stored period document. bool=false means the
	// profile has never started one.
	GetPeriod(ctx context.Context, profileID uuid.UUID) ([]byte, bool, error)

	// PutPeriod replaces the stored period document (upsert by profile_id)
	PutPeriod(ctx context.Context, profileID uuid.UUID, payload []byte) error
}

// MealPatternSlot is one slot in a profile's meal pattern
type MealPatternSlot struct {
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

// MealPattern is a profile's saved meal pattern template
type MealPattern struct {
	ProfileID uuid.UUID
	Slots     []MealPatternSlot
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MealPatternsStorage persists per-profile meal pattern templates
type MealPatternsStorage interface {
	// GetMealPattern returns the saved pattern. bool=false means the
	// profile uses the system default.
	GetMealPattern(ctx context.Context, profileID uuid.UUID) (MealPattern, bool, error)

	// UpsertMealPattern replaces the saved pattern (upsert by profile_id)
	UpsertMealPattern(ctx context.Context, profileID uuid.UUID, slots []MealPatternSlot) (MealPattern, error)
}

// AdvisorAddition is a suggested meal edit awaiting approval. PrevContent
// holds the content the approval replaced so the edit can be undone.
type AdvisorAddition struct {
	ID          uuid.UUID
	ProfileID   uuid.UUID
	Kind        string // "nutrition"
	Day         string // weekday key, e.g. "monday"
	MealID      uuid.UUID
	Content     string
	PrevContent *string
	Status      string // "pending", "applied" or "undone"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AdvisorStorage persists advisor additions
type AdvisorStorage interface {
	// InsertAddition stores a new addition
	InsertAddition(ctx context.Context, addition *AdvisorAddition) error

	// GetAddition returns an addition by ID
	GetAddition(ctx context.Context, id uuid.UUID) (*AdvisorAddition, error)

	// GetPendingBySlot returns the pending addition for (profile, kind,
	// day, meal). bool=false means none.
	GetPendingBySlot(ctx context.Context, profileID uuid.UUID, kind, day string, mealID uuid.UUID) (*AdvisorAddition, bool, error)

	// ListAdditions returns a profile's additions, optionally filtered by
	// status, newest first
	ListAdditions(ctx context.Context, profileID uuid.UUID, status string) ([]AdvisorAddition, error)

	// UpdateAddition persists changes to an existing addition
	UpdateAddition(ctx context.Context, addition *AdvisorAddition) error
}
