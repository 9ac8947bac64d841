package calibration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func postBody(t *testing.T, h http.HandlerFunc, url string, body any, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", url, bytes.NewReader(payload))
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestHandleStart(t *testing.T) {
	service, profileID, _ := newTestService(testMonday)

	w := postBody(t, HandleStart(service), "/v1/calibration/start", ProfileRequest{ProfileID: profileID}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp PeriodDTO
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Days) != 5 {
		t.Errorf("expected 5 days, got %d", len(resp.Days))
	}
	if resp.StartDate != "2026-03-02" {
		t.Errorf("expected start date 2026-03-02, got %s", resp.StartDate)
	}
}

func TestHandleGet(t *testing.T) {
	service, profileID, _ := newTestService(testMonday)
	if _, err := service.StartPeriod(context.Background(), profileID); err != nil {
		t.Fatalf("StartPeriod failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/v1/calibration?profile_id="+profileID.String(), nil)
	w := httptest.NewRecorder()
	HandleGet(service)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp PeriodDTO
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Days[0].Status != StatusOpenToday {
		t.Errorf("expected monday open_today, got %s", resp.Days[0].Status)
	}
}

func TestHandleGetNoPeriod(t *testing.T) {
	service, profileID, _ := newTestService(testMonday)

	req := httptest.NewRequest("GET", "/v1/calibration?profile_id="+profileID.String(), nil)
	w := httptest.NewRecorder()
	HandleGet(service)(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestHandleAddMeal(t *testing.T) {
	service, profileID, _ := newTestService(testMonday)
	if _, err := service.StartPeriod(context.Background(), profileID); err != nil {
		t.Fatalf("StartPeriod failed: %v", err)
	}

	w := postBody(t, HandleAddMeal(service), "/v1/calibration/days/monday/meals",
		AddMealRequest{ProfileID: profileID, Type: MealSnack},
		map[string]string{"day": "monday"})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var meal MealEntry
	json.NewDecoder(w.Body).Decode(&meal)
	if meal.Type != MealSnack {
		t.Errorf("expected snack, got %s", meal.Type)
	}
}

func TestHandleAddMealUnknownDay(t *testing.T) {
	service, profileID, _ := newTestService(testMonday)
	if _, err := service.StartPeriod(context.Background(), profileID); err != nil {
		t.Fatalf("StartPeriod failed: %v", err)
	}

	w := postBody(t, HandleAddMeal(service), "/v1/calibration/days/sunday/meals",
		AddMealRequest{ProfileID: profileID, Type: MealSnack},
		map[string]string{"day": "sunday"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error.Code != "unknown_day" {
		t.Errorf("expected code unknown_day, got %s", resp.Error.Code)
	}
}

func TestHandleCompleteDayIneligible(t *testing.T) {
	service, profileID, _ := newTestService(testMonday)
	if _, err := service.StartPeriod(context.Background(), profileID); err != nil {
		t.Fatalf("StartPeriod failed: %v", err)
	}

	w := postBody(t, HandleCompleteDay(service), "/v1/calibration/days/monday/complete",
		ProfileRequest{ProfileID: profileID},
		map[string]string{"day": "monday"})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}

	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error.Code != "not_eligible" {
		t.Errorf("expected code not_eligible, got %s", resp.Error.Code)
	}
}

func TestHandleTrackingModeBeforeCompletion(t *testing.T) {
	service, profileID, _ := newTestService(testMonday)
	if _, err := service.StartPeriod(context.Background(), profileID); err != nil {
		t.Fatalf("StartPeriod failed: %v", err)
	}

	w := postBody(t, HandleTrackingMode(service), "/v1/calibration/tracking-mode",
		TrackingModeRequest{ProfileID: profileID, Mode: TrackingJournal}, nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}

	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error.Code != "period_not_complete" {
		t.Errorf("expected code period_not_complete, got %s", resp.Error.Code)
	}
}

func TestHandleUpdateMeal(t *testing.T) {
	service, profileID, _ := newTestService(testMonday)
	if _, err := service.StartPeriod(context.Background(), profileID); err != nil {
		t.Fatalf("StartPeriod failed: %v", err)
	}
	period, _ := service.GetPeriod(context.Background(), profileID)
	mealID := period.Days[0].Meals[0].ID

	content := "2 eggs and toast"
	payload, _ := json.Marshal(UpdateMealRequest{ProfileID: profileID, Content: &content})
	req := httptest.NewRequest("PATCH", "/v1/calibration/days/monday/meals/"+mealID.String(), bytes.NewReader(payload))
	req.SetPathValue("day", "monday")
	req.SetPathValue("id", mealID.String())
	w := httptest.NewRecorder()

	HandleUpdateMeal(service)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var meal MealEntry
	json.NewDecoder(w.Body).Decode(&meal)
	if meal.Content != content {
		t.Errorf("expected content %q, got %q", content, meal.Content)
	}
}

func TestHandleRemoveMealLast(t *testing.T) {
	service, profileID, _ := newTestService(testMonday)
	if _, err := service.StartPeriod(context.Background(), profileID); err != nil {
		t.Fatalf("StartPeriod failed: %v", err)
	}
	period, _ := service.GetPeriod(context.Background(), profileID)
	meals := period.Days[0].Meals
	for i := 0; i < len(meals)-1; i++ {
		if err := service.RemoveMeal(context.Background(), profileID, Monday, meals[i].ID); err != nil {
			t.Fatalf("RemoveMeal failed: %v", err)
		}
	}
	lastID := meals[len(meals)-1].ID

	req := httptest.NewRequest("DELETE", "/v1/calibration/days/monday/meals/"+lastID.String()+"?profile_id="+profileID.String(), nil)
	req.SetPathValue("day", "monday")
	req.SetPathValue("id", lastID.String())
	w := httptest.NewRecorder()

	HandleRemoveMeal(service)(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}

	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error.Code != "last_meal" {
		t.Errorf("expected code last_meal, got %s", resp.Error.Code)
	}
}

func TestHandleReorderMeals(t *testing.T) {
	service, profileID, _ := newTestService(testMonday)
	if _, err := service.StartPeriod(context.Background(), profileID); err != nil {
		t.Fatalf("StartPeriod failed: %v", err)
	}
	period, _ := service.GetPeriod(context.Background(), profileID)
	meals := period.Days[0].Meals

	order := make([]uuid.UUID, 0, len(meals))
	for i := len(meals) - 1; i >= 0; i-- {
		order = append(order, meals[i].ID)
	}

	payload, _ := json.Marshal(ReorderMealsRequest{ProfileID: profileID, Order: order})
	req := httptest.NewRequest("PUT", "/v1/calibration/days/monday/meals/order", bytes.NewReader(payload))
	req.SetPathValue("day", "monday")
	w := httptest.NewRecorder()

	HandleReorderMeals(service)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}
