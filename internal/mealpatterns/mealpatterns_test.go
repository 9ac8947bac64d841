package mealpatterns

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avet102/meal-hub/internal/calibration"
	"github.com/avet102/meal-hub/internal/storage"
	"github.com/google/uuid"
)

// mockStorage implements Storage for testing
type mockStorage struct {
	patterns map[uuid.UUID]storage.MealPattern
}

func newMockStorage() *mockStorage {
	return &mockStorage{patterns: make(map[uuid.UUID]storage.MealPattern)}
}

func (m *mockStorage) GetMealPattern(ctx context.Context, profileID uuid.UUID) (storage.MealPattern, bool, error) {
	row, ok := m.patterns[profileID]
	return row, ok, nil
}

func (m *mockStorage) UpsertMealPattern(ctx context.Context, profileID uuid.UUID, slots []storage.MealPatternSlot) (storage.MealPattern, error) {
	row := storage.MealPattern{ProfileID: profileID, Slots: slots}
	m.patterns[profileID] = row
	return row, nil
}

// mockProfileStorage implements ProfileStorage for testing
type mockProfileStorage struct {
	profiles map[uuid.UUID]storage.Profile
}

func (m *mockProfileStorage) GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error) {
	p, exists := m.profiles[id]
	if !exists {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

func newTestService() (*Service, uuid.UUID) {
	profileID := uuid.New()
	profileStorage := &mockProfileStorage{
		profiles: map[uuid.UUID]storage.Profile{
			profileID: {ID: profileID, OwnerUserID: "default", Type: "owner"},
		},
	}
	return NewService(newMockStorage(), profileStorage), profileID
}

func TestGetOrDefaultReturnsSystemDefault(t *testing.T) {
	service, profileID := newTestService()

	resp, err := service.GetOrDefault(context.Background(), profileID)
	if err != nil {
		t.Fatalf("GetOrDefault failed: %v", err)
	}

	if !resp.IsDefault {
		t.Error("expected system default flag")
	}
	if len(resp.Pattern.Slots) != 4 {
		t.Fatalf("expected 4 default slots, got %d", len(resp.Pattern.Slots))
	}
	if resp.Pattern.Slots[0].Type != calibration.MealBreakfast {
		t.Errorf("expected breakfast first, got %s", resp.Pattern.Slots[0].Type)
	}
}

func TestUpsertAndGet(t *testing.T) {
	service, profileID := newTestService()

	saved, err := service.Upsert(context.Background(), profileID, PatternDTO{
		Slots: []SlotDTO{
			{Type: calibration.MealBreakfast},
			{Type: calibration.MealDinner},
			{Type: calibration.MealCustom, Label: "midnight snack"},
		},
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if len(saved.Slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(saved.Slots))
	}

	resp, err := service.GetOrDefault(context.Background(), profileID)
	if err != nil {
		t.Fatalf("GetOrDefault failed: %v", err)
	}
	if resp.IsDefault {
		t.Error("expected saved pattern, not the default")
	}
	if resp.Pattern.Slots[2].Label != "midnight snack" {
		t.Errorf("expected custom label preserved, got %q", resp.Pattern.Slots[2].Label)
	}
}

func TestUpsertValidation(t *testing.T) {
	service, profileID := newTestService()

	tests := []struct {
		name  string
		slots []SlotDTO
	}{
		{"empty", nil},
		{"invalid type", []SlotDTO{{Type: "brunch"}}},
		{"custom without label", []SlotDTO{{Type: calibration.MealCustom}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Upsert(context.Background(), profileID, PatternDTO{Slots: tt.slots}); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestResolvePattern(t *testing.T) {
	service, profileID := newTestService()

	// Unsaved profile resolves to the default template.
	slots, err := service.ResolvePattern(context.Background(), profileID)
	if err != nil {
		t.Fatalf("ResolvePattern failed: %v", err)
	}
	if len(slots) != 4 {
		t.Fatalf("expected 4 default slots, got %d", len(slots))
	}

	if _, err := service.Upsert(context.Background(), profileID, PatternDTO{
		Slots: []SlotDTO{{Type: calibration.MealBreakfast}, {Type: calibration.MealDinner}},
	}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	slots, err = service.ResolvePattern(context.Background(), profileID)
	if err != nil {
		t.Fatalf("ResolvePattern failed: %v", err)
	}
	if len(slots) != 2 || slots[1].Type != calibration.MealDinner {
		t.Errorf("expected saved pattern, got %v", slots)
	}
}

func TestHandleGet(t *testing.T) {
	service, profileID := newTestService()

	req := httptest.NewRequest("GET", "/v1/meal-pattern?profile_id="+profileID.String(), nil)
	w := httptest.NewRecorder()
	HandleGet(service)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp PatternResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !resp.IsDefault {
		t.Error("expected default pattern")
	}
}

func TestHandlePutInvalidPattern(t *testing.T) {
	service, profileID := newTestService()

	body, _ := json.Marshal(map[string]any{
		"profile_id": profileID,
		"pattern":    PatternDTO{Slots: []SlotDTO{{Type: "brunch"}}},
	})
	req := httptest.NewRequest("PUT", "/v1/meal-pattern", bytes.NewReader(body))
	w := httptest.NewRecorder()
	HandlePut(service)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
