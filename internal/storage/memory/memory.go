package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avet102/meal-hub/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("profile not found")
)

// MemoryStorage is the in-memory implementation of Storage. Useful for
// development and tests; everything is lost on restart.
type MemoryStorage struct {
	mu           sync.RWMutex
	profiles     map[uuid.UUID]storage.Profile
	calibration  *CalibrationMemoryStorage
	mealPatterns *MealPatternsMemoryStorage
	advisor      *AdvisorMemoryStorage
}

// New creates a MemoryStorage seeded with a default owner profile
func New() *MemoryStorage {
	ownerID := uuid.New()
	owner := storage.Profile{
		ID:          ownerID,
		OwnerUserID: "default",
		Type:        "owner",
		Name:        "Me",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	return &MemoryStorage{
		profiles: map[uuid.UUID]storage.Profile{
			ownerID: owner,
		},
		calibration:  NewCalibrationMemoryStorage(),
		mealPatterns: NewMealPatternsMemoryStorage(),
		advisor:      NewAdvisorMemoryStorage(),
	}
}

func (m *MemoryStorage) ListProfiles(ctx context.Context) ([]storage.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profiles := make([]storage.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, p)
	}

	return profiles, nil
}

func (m *MemoryStorage) GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &p, nil
}

func (m *MemoryStorage) CreateProfile(ctx context.Context, profile *storage.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	m.profiles[profile.ID] = *profile

	return nil
}

func (m *MemoryStorage) UpdateProfile(ctx context.Context, profile *storage.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[profile.ID]; !ok {
		return ErrNotFound
	}

	profile.UpdatedAt = time.Now()
	m.profiles[profile.ID] = *profile

	return nil
}

func (m *MemoryStorage) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[id]; !ok {
		return ErrNotFound
	}

	delete(m.profiles, id)

	return nil
}

func (m *MemoryStorage) Close() error {
	// no-op for memory
	return nil
}

// GetCalibrationStorage returns the calibration storage
func (m *MemoryStorage) GetCalibrationStorage() *CalibrationMemoryStorage {
	return m.calibration
}

// CalibrationStorage methods - delegate to embedded calibration storage

func (m *MemoryStorage) GetPeriod(ctx context.Context, profileID uuid.UUID) ([]byte, bool, error) {
	return m.calibration.GetPeriod(ctx, profileID)
}

func (m *MemoryStorage) PutPeriod(ctx context.Context, profileID uuid.UUID, payload []byte) error {
	return m.calibration.PutPeriod(ctx, profileID, payload)
}

// GetMealPatternsStorage returns the meal patterns storage
func (m *MemoryStorage) GetMealPatternsStorage() *MealPatternsMemoryStorage {
	return m.mealPatterns
}

// MealPatternsStorage methods - delegate to embedded meal patterns storage

func (m *MemoryStorage) GetMealPattern(ctx context.Context, profileID uuid.UUID) (storage.MealPattern, bool, error) {
	return m.mealPatterns.GetMealPattern(ctx, profileID)
}

func (m *MemoryStorage) UpsertMealPattern(ctx context.Context, profileID uuid.UUID, slots []storage.MealPatternSlot) (storage.MealPattern, error) {
	return m.mealPatterns.UpsertMealPattern(ctx, profileID, slots)
}

// GetAdvisorStorage returns the advisor storage
func (m *MemoryStorage) GetAdvisorStorage() *AdvisorMemoryStorage {
	return m.advisor
}

// AdvisorStorage methods - delegate to embedded advisor storage

func (m *MemoryStorage) InsertAddition(ctx context.Context, addition *storage.AdvisorAddition) error {
	return m.advisor.InsertAddition(ctx, addition)
}

func (m *MemoryStorage) GetAddition(ctx context.Context, id uuid.UUID) (*storage.AdvisorAddition, error) {
	return m.advisor.GetAddition(ctx, id)
}

func (m *MemoryStorage) GetPendingBySlot(ctx context.Context, profileID uuid.UUID, kind, day string, mealID uuid.UUID) (*storage.AdvisorAddition, bool, error) {
	return m.advisor.GetPendingBySlot(ctx, profileID, kind, day, mealID)
}

func (m *MemoryStorage) ListAdditions(ctx context.Context, profileID uuid.UUID, status string) ([]storage.AdvisorAddition, error) {
	return m.advisor.ListAdditions(ctx, profileID, status)
}

func (m *MemoryStorage) UpdateAddition(ctx context.Context, addition *storage.AdvisorAddition) error {
	return m.advisor.UpdateAddition(ctx, addition)
}
