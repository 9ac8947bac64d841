package mealpatterns

import (
	"context"
	"errors"
	"strings"

	"github.com/avet102/meal-hub/internal/calibration"
	"github.com/avet102/meal-hub/internal/storage"
	"github.com/avet102/meal-hub/internal/userctx"
	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

// Storage defines the interface for meal-pattern persistence
type Storage interface {
	// GetMealPattern returns the saved pattern. bool=false means not saved.
	GetMealPattern(ctx context.Context, profileID uuid.UUID) (storage.MealPattern, bool, error)

	// UpsertMealPattern creates or replaces the pattern for a profile
	UpsertMealPattern(ctx context.Context, profileID uuid.UUID, slots []storage.MealPatternSlot) (storage.MealPattern, error)
}

// ProfileStorage defines the interface for profile operations
type ProfileStorage interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error)
}

// Service handles meal-pattern template logic
type Service struct {
	storage        Storage
	profileStorage ProfileStorage
}

func NewService(patternStorage Storage, profileStorage ProfileStorage) *Service {
	return &Service{
		storage:        patternStorage,
		profileStorage: profileStorage,
	}
}

// GetOrDefault returns the saved pattern, or the system default when the
// profile has not saved one.
func (s *Service) GetOrDefault(ctx context.Context, profileID uuid.UUID) (PatternResponse, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return PatternResponse{}, ErrProfileNotFound
	}

	row, found, err := s.storage.GetMealPattern(ctx, profileID)
	if err != nil {
		return PatternResponse{}, err
	}
	if !found {
		return PatternResponse{Pattern: defaultPattern, IsDefault: true}, nil
	}

	return PatternResponse{Pattern: dtoFromStorage(row), IsDefault: false}, nil
}

// Upsert validates and saves the pattern for a profile
func (s *Service) Upsert(ctx context.Context, profileID uuid.UUID, dto PatternDTO) (PatternDTO, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return PatternDTO{}, ErrProfileNotFound
	}

	if err := dto.Validate(); err != nil {
		return PatternDTO{}, err
	}

	row, err := s.storage.UpsertMealPattern(ctx, profileID, dtoToStorage(dto))
	if err != nil {
		return PatternDTO{}, err
	}
	return dtoFromStorage(row), nil
}

// ResolvePattern implements calibration.PatternSource: new periods are
// pre-populated from the saved template, falling back to the default.
func (s *Service) ResolvePattern(ctx context.Context, profileID uuid.UUID) ([]calibration.PatternSlot, error) {
	row, found, err := s.storage.GetMealPattern(ctx, profileID)
	if err != nil {
		return nil, err
	}

	dto := defaultPattern
	if found {
		dto = dtoFromStorage(row)
	}

	slots := make([]calibration.PatternSlot, 0, len(dto.Slots))
	for _, slot := range dto.Slots {
		slots = append(slots, calibration.PatternSlot{Type: slot.Type, Label: slot.Label})
	}
	return slots, nil
}

func (s *Service) ensureProfileAccess(ctx context.Context, profileID uuid.UUID) error {
	profile, err := s.profileStorage.GetProfile(ctx, profileID)
	if err != nil {
		return ErrProfileNotFound
	}

	if userID, ok := userctx.GetUserID(ctx); ok && strings.TrimSpace(userID) != "" && profile.OwnerUserID != userID {
		return ErrProfileNotFound
	}

	return nil
}

func dtoFromStorage(row storage.MealPattern) PatternDTO {
	slots := make([]SlotDTO, 0, len(row.Slots))
	for _, slot := range row.Slots {
		slots = append(slots, SlotDTO{Type: slot.Type, Label: slot.Label})
	}
	return PatternDTO{Slots: slots}
}

func dtoToStorage(dto PatternDTO) []storage.MealPatternSlot {
	slots := make([]storage.MealPatternSlot, 0, len(dto.Slots))
	for _, slot := range dto.Slots {
		slots = append(slots, storage.MealPatternSlot{Type: slot.Type, Label: slot.Label})
	}
	return slots
}
