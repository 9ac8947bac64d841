package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/avet102/meal-hub/internal/storage"
	"github.com/google/uuid"
)

var ErrAdditionNotFound = errors.New("addition not found")

type AdvisorMemoryStorage struct {
	mu        sync.RWMutex
	additions map[uuid.UUID]storage.AdvisorAddition
}

func NewAdvisorMemoryStorage() *AdvisorMemoryStorage {
	return &AdvisorMemoryStorage{
		additions: make(map[uuid.UUID]storage.AdvisorAddition),
	}
}

func (s *AdvisorMemoryStorage) InsertAddition(ctx context.Context, addition *storage.AdvisorAddition) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	s.additions[addition.ID] = *addition
	return nil
}

func (s *AdvisorMemoryStorage) GetAddition(ctx context.Context, id uuid.UUID) (*storage.AdvisorAddition, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.additions[id]
	if !ok {
		return nil, ErrAdditionNotFound
	}
	return &a, nil
}

func (s *AdvisorMemoryStorage) GetPendingBySlot(ctx context.Context, profileID uuid.UUID, kind, day string, mealID uuid.UUID) (*storage.AdvisorAddition, bool, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.additions {
		if a.ProfileID == profileID && a.Kind == kind && a.Day == day && a.MealID == mealID && a.Status == "pending" {
			found := a
			return &found, true, nil
		}
	}
	return nil, false, nil
}

func (s *AdvisorMemoryStorage) ListAdditions(ctx context.Context, profileID uuid.UUID, status string) ([]storage.AdvisorAddition, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []storage.AdvisorAddition{}
	for _, a := range s.additions {
		if a.ProfileID != profileID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		result = append(result, a)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (s *AdvisorMemoryStorage) UpdateAddition(ctx context.Context, addition *storage.AdvisorAddition) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.additions[addition.ID]; !ok {
		return ErrAdditionNotFound
	}

	s.additions[addition.ID] = *addition
	return nil
}
