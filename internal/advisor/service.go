package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avet102/meal-hub/internal/calibration"
	"github.com/avet102/meal-hub/internal/storage"
	"github.com/avet102/meal-hub/internal/userctx"
	"github.com/google/uuid"
)

var (
	ErrAdditionNotFound = errors.New("addition not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrInvalidKind      = errors.New("invalid addition kind")
	ErrInvalidDay       = errors.New("invalid weekday key")
	ErrEmptyContent     = errors.New("suggested content must not be empty")
	ErrSlotTaken        = errors.New("a pending addition already exists for this meal")
	ErrNotPending       = errors.New("addition is not pending")
	ErrNotApplied       = errors.New("addition is not applied")
)

// Storage defines the interface for advisor addition persistence
type Storage interface {
	// InsertAddition stores a new addition
	InsertAddition(ctx context.Context, addition *storage.AdvisorAddition) error

	// GetAddition retrieves an addition by ID
	GetAddition(ctx context.Context, id uuid.UUID) (*storage.AdvisorAddition, error)

	// GetPendingBySlot returns the pending addition for (profile, kind,
	// day, meal). bool=false means none.
	GetPendingBySlot(ctx context.Context, profileID uuid.UUID, kind, day string, mealID uuid.UUID) (*storage.AdvisorAddition, bool, error)

	// ListAdditions returns a profile's additions, optionally filtered by
	// status
	ListAdditions(ctx context.Context, profileID uuid.UUID, status string) ([]storage.AdvisorAddition, error)

	// UpdateAddition persists changes to an existing addition
	UpdateAddition(ctx context.Context, addition *storage.AdvisorAddition) error
}

// ProfileStorage defines the interface for profile operations
type ProfileStorage interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error)
}

// MealEditor is the calibration surface approvals write through. Approving
// an addition goes through the same content-edit path the user would take,
// so calorie overrides are cleared the same way.
type MealEditor interface {
	GetPeriod(ctx context.Context, profileID uuid.UUID) (*calibration.PeriodDTO, error)
	UpdateMeal(ctx context.Context, profileID uuid.UUID, day calibration.Weekday, mealID uuid.UUID, req calibration.UpdateMealRequest) (*calibration.MealEntry, error)
}

// Service handles advisor addition logic
type Service struct {
	storage        Storage
	profileStorage ProfileStorage
	meals          MealEditor
}

// NewService creates a new advisor service
func NewService(additionStorage Storage, profileStorage ProfileStorage, meals MealEditor) *Service {
	return &Service{
		storage:        additionStorage,
		profileStorage: profileStorage,
		meals:          meals,
	}
}

// List returns a profile's additions, newest intent first per storage
func (s *Service) List(ctx context.Context, profileID uuid.UUID, status string) ([]AdditionDTO, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return nil, ErrProfileNotFound
	}

	rows, err := s.storage.ListAdditions(ctx, profileID, status)
	if err != nil {
		return nil, err
	}

	dtos := make([]AdditionDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, additionToDTO(row))
	}
	return dtos, nil
}

// Create registers a suggested edit for a meal slot. One pending addition
// per (kind, day, meal) slot.
func (s *Service) Create(ctx context.Context, req CreateAdditionRequest) (*AdditionDTO, error) {
	if err := s.ensureProfileAccess(ctx, req.ProfileID); err != nil {
		return nil, ErrProfileNotFound
	}
	if req.Kind != KindNutrition {
		return nil, ErrInvalidKind
	}
	if !isValidDay(req.Day) {
		return nil, ErrInvalidDay
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	if _, exists, err := s.storage.GetPendingBySlot(ctx, req.ProfileID, req.Kind, req.Day, req.MealID); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrSlotTaken
	}

	now := time.Now().UTC()
	addition := &storage.AdvisorAddition{
		ID:        uuid.New(),
		ProfileID: req.ProfileID,
		Kind:      req.Kind,
		Day:       req.Day,
		MealID:    req.MealID,
		Content:   req.Content,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.InsertAddition(ctx, addition); err != nil {
		return nil, err
	}

	dto := additionToDTO(*addition)
	return &dto, nil
}

// Approve writes the suggested content into the meal and remembers what it
// replaced so the change can be undone.
func (s *Service) Approve(ctx context.Context, additionID uuid.UUID) (*AdditionDTO, error) {
	addition, err := s.ownedAddition(ctx, additionID)
	if err != nil {
		return nil, err
	}
	if addition.Status != StatusPending {
		return nil, ErrNotPending
	}

	previous, err := s.currentContent(ctx, addition)
	if err != nil {
		return nil, err
	}

	content := addition.Content
	if _, err := s.meals.UpdateMeal(ctx, addition.ProfileID, calibration.Weekday(addition.Day), addition.MealID,
		calibration.UpdateMealRequest{Content: &content}); err != nil {
		return nil, err
	}

	addition.PrevContent = &previous
	addition.Status = StatusApplied
	addition.UpdatedAt = time.Now().UTC()
	if err := s.storage.UpdateAddition(ctx, addition); err != nil {
		return nil, err
	}

	dto := additionToDTO(*addition)
	return &dto, nil
}

// Undo restores the content the approval replaced
func (s *Service) Undo(ctx context.Context, additionID uuid.UUID) (*AdditionDTO, error) {
	addition, err := s.ownedAddition(ctx, additionID)
	if err != nil {
		return nil, err
	}
	if addition.Status != StatusApplied || addition.PrevContent == nil {
		return nil, ErrNotApplied
	}

	previous := *addition.PrevContent
	if _, err := s.meals.UpdateMeal(ctx, addition.ProfileID, calibration.Weekday(addition.Day), addition.MealID,
		calibration.UpdateMealRequest{Content: &previous}); err != nil {
		return nil, err
	}

	addition.Status = StatusUndone
	addition.UpdatedAt = time.Now().UTC()
	if err := s.storage.UpdateAddition(ctx, addition); err != nil {
		return nil, err
	}

	dto := additionToDTO(*addition)
	return &dto, nil
}

// Helper functions

func (s *Service) ownedAddition(ctx context.Context, id uuid.UUID) (*storage.AdvisorAddition, error) {
	addition, err := s.storage.GetAddition(ctx, id)
	if err != nil {
		return nil, ErrAdditionNotFound
	}
	if err := s.ensureProfileAccess(ctx, addition.ProfileID); err != nil {
		return nil, ErrAdditionNotFound
	}
	return addition, nil
}

func (s *Service) currentContent(ctx context.Context, addition *storage.AdvisorAddition) (string, error) {
	period, err := s.meals.GetPeriod(ctx, addition.ProfileID)
	if err != nil {
		return "", err
	}
	for _, day := range period.Days {
		if day.Day != calibration.Weekday(addition.Day) {
			continue
		}
		for _, meal := range day.Meals {
			if meal.ID == addition.MealID {
				return meal.Content, nil
			}
		}
	}
	return "", calibration.ErrMealNotFound
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

func isValidDay(day string) bool {
	switch calibration.Weekday(day) {
	case calibration.Monday, calibration.Tuesday, calibration.Wednesday,
		calibration.Thursday, calibration.Friday:
		return true
	}
	return false
}
