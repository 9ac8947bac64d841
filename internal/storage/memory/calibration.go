package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type CalibrationMemoryStorage struct {
	mu      sync.RWMutex
	periods map[uuid.UUID][]byte
}

func NewCalibrationMemoryStorage() *CalibrationMemoryStorage {
	return &CalibrationMemoryStorage{
		periods: make(map[uuid.UUID][]byte),
	}
}

func (s *CalibrationMemoryStorage) GetPeriod(ctx context.Context, profileID uuid.UUID) ([]byte, bool, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.periods[profileID]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(payload))
	copy(out, payload)
	return out, true, nil
}

func (s *CalibrationMemoryStorage) PutPeriod(ctx context.Context, profileID uuid.UUID, payload []byte) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.periods[profileID] = stored

	return nil
}
