package memory

import (
	"context"
	"sync"
	"time"

	"github.com/avet102/meal-hub/internal/storage"
	"github.com/google/uuid"
)

type MealPatternsMemoryStorage struct {
	mu       sync.RWMutex
	patterns map[uuid.UUID]storage.MealPattern
}

func NewMealPatternsMemoryStorage() *MealPatternsMemoryStorage {
	return &MealPatternsMemoryStorage{
		patterns: make(map[uuid.UUID]storage.MealPattern),
	}
}

func (s *MealPatternsMemoryStorage) GetMealPattern(ctx context.Context, profileID uuid.UUID) (storage.MealPattern, bool, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.patterns[profileID]
	if !ok {
		return storage.MealPattern{}, false, nil
	}
	return row, true, nil
}

func (s *MealPatternsMemoryStorage) UpsertMealPattern(ctx context.Context, profileID uuid.UUID, slots []storage.MealPatternSlot) (storage.MealPattern, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	existing, ok := s.patterns[profileID]
	if !ok {
		existing = storage.MealPattern{
			ProfileID: profileID,
			CreatedAt: now,
		}
	}

	existing.Slots = append([]storage.MealPatternSlot(nil), slots...)
	existing.UpdatedAt = now

	s.patterns[profileID] = existing
	return existing, nil
}
