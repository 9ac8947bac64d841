package calibration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avet102/meal-hub/internal/storage"
	"github.com/avet102/meal-hub/internal/userctx"
	"github.com/google/uuid"
)

var (
	ErrPeriodNotFound    = errors.New("calibration period not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrUnknownDay        = errors.New("unknown weekday key")
	ErrMealNotFound      = errors.New("meal not found")
	ErrInvalidMealType   = errors.New("invalid meal type")
	ErrInvalidMode       = errors.New("invalid tracking mode")
	ErrNotEligible       = errors.New("day needs at least two meals with content")
	ErrLastMeal          = errors.New("cannot remove the last meal of a day")
	ErrNotAPermutation   = errors.New("order must be a permutation of the day's meals")
	ErrPeriodNotComplete = errors.New("tracking mode requires a completed period")
)

// minFilledMeals is the completion threshold: a day qualifies once this
// many meals have non-empty trimmed content.
const minFilledMeals = 2

// Storage defines the interface for period persistence. The whole period
// is serialized as one record per profile and rewritten on each mutation.
type Storage interface {
	// GetPeriod returns the stored period payload, or ok=false if the
	// profile has none
	GetPeriod(ctx context.Context, profileID uuid.UUID) ([]byte, bool, error)

	// PutPeriod stores the period payload for a profile, replacing any
	// previous one
	PutPeriod(ctx context.Context, profileID uuid.UUID, payload []byte) error
}

// ProfileStorage defines the interface for profile operations
type ProfileStorage interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error)
}

// PatternSlot is one meal slot of a saved meal-pattern template.
type PatternSlot struct {
	Type  string
	Label string
}

// PatternSource resolves the meal-pattern template used to pre-populate a
// new period's days.
type PatternSource interface {
	ResolvePattern(ctx context.Context, profileID uuid.UUID) ([]PatternSlot, error)
}

// fallbackPattern is used when no pattern source is wired or it fails.
var fallbackPattern = []PatternSlot{
	{Type: MealBreakfast},
	{Type: MealLunch},
	{Type: MealAfternoonSnack},
	{Type: MealDinner},
}

// Service owns the calibration state machine
type Service struct {
	storage        Storage
	profileStorage ProfileStorage
	patterns       PatternSource
	clock          Clock
}

// NewService creates a new calibration service. A nil clock means the
// system clock.
func NewService(storage Storage, profileStorage ProfileStorage, patterns PatternSource, clock Clock) *Service {
	if clock == nil {
		clock = RealClock()
	}
	return &Service{
		storage:        storage,
		profileStorage: profileStorage,
		patterns:       patterns,
		clock:          clock,
	}
}

// GetPeriod returns the profile's period with derived day statuses. Past
// weekdays that meet the completion threshold are completed implicitly on
// read; today never is.
func (s *Service) GetPeriod(ctx context.Context, profileID uuid.UUID) (*PeriodDTO, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return nil, ErrProfileNotFound
	}

	p, err := s.loadPeriod(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if s.autoCompletePastDays(p, now) {
		if err := s.savePeriod(ctx, p); err != nil {
			return nil, err
		}
	}

	dto := p.toDTO(now)
	return &dto, nil
}

// StartPeriod creates a period anchored to the most recent Monday, its
// days pre-populated from the saved meal-pattern template. Idempotent: an
// existing period is returned unchanged.
func (s *Service) StartPeriod(ctx context.Context, profileID uuid.UUID) (*PeriodDTO, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return nil, ErrProfileNotFound
	}

	now := s.clock.Now()

	if p, err := s.loadPeriod(ctx, profileID); err == nil {
		dto := p.toDTO(now)
		return &dto, nil
	} else if !errors.Is(err, ErrPeriodNotFound) {
		return nil, err
	}

	pattern := s.resolvePattern(ctx, profileID)

	p := &Period{
		ProfileID:    profileID,
		StartDate:    mostRecentMonday(now).Format("2006-01-02"),
		Days:         make(map[Weekday]*DayRecord, len(weekdayOrder)),
		TrackingMode: TrackingUnset,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, day := range weekdayOrder {
		rec := &DayRecord{Meals: make([]MealEntry, 0, len(pattern))}
		for i, slot := range pattern {
			rec.Meals = append(rec.Meals, MealEntry{
				ID:    uuid.New(),
				Type:  slot.Type,
				Label: slot.Label,
				Order: i,
			})
		}
		p.Days[day] = rec
	}
	first := weekdayOrder[0]
	p.CurrentDay = &first

	if err := s.savePeriod(ctx, p); err != nil {
		return nil, err
	}

	dto := p.toDTO(now)
	return &dto, nil
}

// Dismiss records that the user declined calibration. Creates the period
// record if none exists yet so the decision is durable.
func (s *Service) Dismiss(ctx context.Context, profileID uuid.UUID) (*PeriodDTO, error) {
	dto, err := s.StartPeriod(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if dto.Dismissed {
		return dto, nil
	}

	p, err := s.loadPeriod(ctx, profileID)
	if err != nil {
		return nil, err
	}
	p.Dismissed = true
	if err := s.savePeriod(ctx, p); err != nil {
		return nil, err
	}

	out := p.toDTO(s.clock.Now())
	return &out, nil
}

// AlignToCurrentWeek re-bases a period from a prior week onto the current
// week, preserving all day content and completion. Idempotent within the
// same calendar week.
func (s *Service) AlignToCurrentWeek(ctx context.Context, profileID uuid.UUID) (*PeriodDTO, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return nil, ErrProfileNotFound
	}

	p, err := s.loadPeriod(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	monday := mostRecentMonday(now).Format("2006-01-02")
	if p.StartDate != monday {
		p.StartDate = monday
		if err := s.savePeriod(ctx, p); err != nil {
			return nil, err
		}
	}

	dto := p.toDTO(now)
	return &dto, nil
}

// AddMeal appends a meal with the next order index
func (s *Service) AddMeal(ctx context.Context, profileID uuid.UUID, day Weekday, mealType, label string) (*MealEntry, error) {
	if !isValidMealType(mealType) {
		return nil, ErrInvalidMealType
	}

	var added *MealEntry
	err := s.mutateDay(ctx, profileID, day, func(rec *DayRecord) error {
		meal := MealEntry{
			ID:    uuid.New(),
			Type:  mealType,
			Label: label,
			Order: len(rec.Meals),
		}
		rec.Meals = append(rec.Meals, meal)
		added = &rec.Meals[len(rec.Meals)-1]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// UpdateMeal edits a meal's content and/or calorie override. A content
// change clears any stored override unless the request carries a new one:
// an override set together with a content change wins.
func (s *Service) UpdateMeal(ctx context.Context, profileID uuid.UUID, day Weekday, mealID uuid.UUID, req UpdateMealRequest) (*MealEntry, error) {
	var updated *MealEntry
	err := s.mutateDay(ctx, profileID, day, func(rec *DayRecord) error {
		meal := findMeal(rec, mealID)
		if meal == nil {
			return ErrMealNotFound
		}

		if req.Content != nil && *req.Content != meal.Content {
			meal.Content = *req.Content
			meal.CalorieOverride = nil
		}
		if req.CalorieOverride != nil {
			override := *req.CalorieOverride
			meal.CalorieOverride = &override
		}

		updated = meal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveMeal deletes a meal; the last meal of a day cannot be removed
func (s *Service) RemoveMeal(ctx context.Context, profileID uuid.UUID, day Weekday, mealID uuid.UUID) error {
	return s.mutateDay(ctx, profileID, day, func(rec *DayRecord) error {
		idx := -1
		for i := range rec.Meals {
			if rec.Meals[i].ID == mealID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrMealNotFound
		}
		if len(rec.Meals) == 1 {
			return ErrLastMeal
		}

		rec.Meals = append(rec.Meals[:idx], rec.Meals[idx+1:]...)
		for i := range rec.Meals {
			rec.Meals[i].Order = i
		}
		return nil
	})
}

// ReorderMeals replaces the day's meal order. The new order must be a
// permutation of the existing meal ids.
func (s *Service) ReorderMeals(ctx context.Context, profileID uuid.UUID, day Weekday, order []uuid.UUID) ([]MealEntry, error) {
	var meals []MealEntry
	err := s.mutateDay(ctx, profileID, day, func(rec *DayRecord) error {
		if len(order) != len(rec.Meals) {
			return ErrNotAPermutation
		}

		byID := make(map[uuid.UUID]*MealEntry, len(rec.Meals))
		for i := range rec.Meals {
			byID[rec.Meals[i].ID] = &rec.Meals[i]
		}

		reordered := make([]MealEntry, 0, len(order))
		for i, id := range order {
			meal, ok := byID[id]
			if !ok {
				return ErrNotAPermutation
			}
			delete(byID, id)
			m := *meal
			m.Order = i
			reordered = append(reordered, m)
		}

		rec.Meals = reordered
		meals = reordered
		return nil
	})
	if err != nil {
		return nil, err
	}
	return meals, nil
}

// CanComplete reports whether the day meets the completion threshold
func (s *Service) CanComplete(ctx context.Context, profileID uuid.UUID, day Weekday) (bool, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return false, ErrProfileNotFound
	}

	p, err := s.loadPeriod(ctx, profileID)
	if err != nil {
		return false, err
	}
	rec, ok := p.Days[day]
	if !ok {
		return false, ErrUnknownDay
	}
	return canComplete(rec), nil
}

// CompleteDay marks a day complete, advances the current-day pointer and,
// on the fifth day, stamps the period itself. Ineligible days are refused
// with no state change.
func (s *Service) CompleteDay(ctx context.Context, profileID uuid.UUID, day Weekday) (*PeriodDTO, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return nil, ErrProfileNotFound
	}

	p, err := s.loadPeriod(ctx, profileID)
	if err != nil {
		return nil, err
	}
	rec, ok := p.Days[day]
	if !ok {
		return nil, ErrUnknownDay
	}

	now := s.clock.Now()
	if !rec.Completed {
		if !canComplete(rec) {
			return nil, ErrNotEligible
		}
		rec.Completed = true
		completedAt := now
		rec.CompletedAt = &completedAt
		p.recomputeProgress(now)
		if err := s.savePeriod(ctx, p); err != nil {
			return nil, err
		}
	}

	dto := p.toDTO(now)
	return &dto, nil
}

// SetTrackingMode records the one-time decision offered after the fifth
// day. Rejected while the period is still open.
func (s *Service) SetTrackingMode(ctx context.Context, profileID uuid.UUID, mode string) (*PeriodDTO, error) {
	if !isValidTrackingMode(mode) {
		return nil, ErrInvalidMode
	}
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return nil, ErrProfileNotFound
	}

	p, err := s.loadPeriod(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if p.CompletedAt == nil {
		return nil, ErrPeriodNotComplete
	}

	p.TrackingMode = mode
	if err := s.savePeriod(ctx, p); err != nil {
		return nil, err
	}

	dto := p.toDTO(s.clock.Now())
	return &dto, nil
}

// Helper functions

// mutateDay loads the period, applies fn to the day record and persists
// the whole period when fn succeeds.
func (s *Service) mutateDay(ctx context.Context, profileID uuid.UUID, day Weekday, fn func(rec *DayRecord) error) error {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return ErrProfileNotFound
	}

	p, err := s.loadPeriod(ctx, profileID)
	if err != nil {
		return err
	}
	rec, ok := p.Days[day]
	if !ok {
		return ErrUnknownDay
	}

	if err := fn(rec); err != nil {
		return err
	}

	return s.savePeriod(ctx, p)
}

func (s *Service) loadPeriod(ctx context.Context, profileID uuid.UUID) (*Period, error) {
	payload, ok, err := s.storage.GetPeriod(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load period: %w", err)
	}
	if !ok {
		return nil, ErrPeriodNotFound
	}

	var p Period
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode period: %w", err)
	}
	return &p, nil
}

func (s *Service) savePeriod(ctx context.Context, p *Period) error {
	p.UpdatedAt = s.clock.Now()
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode period: %w", err)
	}
	if err := s.storage.PutPeriod(ctx, p.ProfileID, payload); err != nil {
		return fmt.Errorf("store period: %w", err)
	}
	return nil
}

func (s *Service) resolvePattern(ctx context.Context, profileID uuid.UUID) []PatternSlot {
	if s.patterns == nil {
		return fallbackPattern
	}
	pattern, err := s.patterns.ResolvePattern(ctx, profileID)
	if err != nil || len(pattern) == 0 {
		return fallbackPattern
	}
	return pattern
}

// autoCompletePastDays completes past weekdays that meet the threshold.
// Today stays open until the user explicitly finishes it, even when its
// content already qualifies. Returns true when anything changed.
func (s *Service) autoCompletePastDays(p *Period, now time.Time) bool {
	today := dateOnly(now)
	changed := false

	for _, day := range weekdayOrder {
		rec := p.Days[day]
		if rec == nil || rec.Completed {
			continue
		}
		date, err := p.dayDate(day)
		if err != nil {
			continue
		}
		if !dateOnly(date).Before(today) {
			continue
		}
		if !canComplete(rec) {
			continue // stays missed
		}
		rec.Completed = true
		completedAt := now
		rec.CompletedAt = &completedAt
		changed = true
	}

	if changed {
		p.recomputeProgress(now)
	}
	return changed
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

func canComplete(rec *DayRecord) bool {
	filled := 0
	for _, m := range rec.Meals {
		if strings.TrimSpace(m.Content) != "" {
			filled++
		}
	}
	return filled >= minFilledMeals
}

func findMeal(rec *DayRecord, id uuid.UUID) *MealEntry {
	for i := range rec.Meals {
		if rec.Meals[i].ID == id {
			return &rec.Meals[i]
		}
	}
	return nil
}

func isValidMealType(t string) bool {
	for _, valid := range ValidMealTypes {
		if t == valid {
			return true
		}
	}
	return false
}

func isValidTrackingMode(m string) bool {
	for _, valid := range ValidTrackingModes {
		if m == valid {
			return true
		}
	}
	return false
}

// recomputeProgress re-derives CurrentDay and, when every day is done,
// stamps the period's CompletedAt once.
func (p *Period) recomputeProgress(now time.Time) {
	p.CurrentDay = nil
	for _, day := range weekdayOrder {
		if rec := p.Days[day]; rec != nil && !rec.Completed {
			d := day
			p.CurrentDay = &d
			return
		}
	}
	if p.CompletedAt == nil {
		completedAt := now
		p.CompletedAt = &completedAt
	}
}

// dayDate maps a weekday key onto its calendar date for this period
func (p *Period) dayDate(day Weekday) (time.Time, error) {
	offset, ok := weekdayOffset[day]
	if !ok {
		return time.Time{}, ErrUnknownDay
	}
	start, err := time.Parse("2006-01-02", p.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start date: %w", err)
	}
	return start.AddDate(0, 0, offset), nil
}

func (p *Period) toDTO(now time.Time) PeriodDTO {
	days := make([]DayDTO, 0, len(weekdayOrder))
	for _, day := range weekdayOrder {
		rec := p.Days[day]
		if rec == nil {
			rec = &DayRecord{}
		}
		date, _ := p.dayDate(day)
		days = append(days, DayDTO{
			Day:         day,
			Date:        date.Format("2006-01-02"),
			Status:      DayStatusFor(now, date, rec.Completed),
			Meals:       rec.Meals,
			Completed:   rec.Completed,
			CompletedAt: rec.CompletedAt,
		})
	}

	return PeriodDTO{
		ProfileID:    p.ProfileID,
		StartDate:    p.StartDate,
		Days:         days,
		CurrentDay:   p.CurrentDay,
		CompletedAt:  p.CompletedAt,
		Dismissed:    p.Dismissed,
		TrackingMode: p.TrackingMode,
	}
}

// mostRecentMonday returns the Monday of t's week (t itself on Mondays)
func mostRecentMonday(t time.Time) time.Time {
	back := (int(t.Weekday()) + 6) % 7
	return dateOnly(t.AddDate(0, 0, -back))
}
