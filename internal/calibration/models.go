package calibration

import (
	"time"

	"github.com/google/uuid"
)

// Weekday keys a calibration period tracks. Weekends are not part of the
// window.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// weekdayOrder is the canonical day order; Days always holds exactly these
// five keys.
var weekdayOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// weekdayOffset is days since the period's Monday start.
var weekdayOffset = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3, Friday: 4,
}

// Meal types
const (
	MealBreakfast      = "breakfast"
	MealMorningSnack   = "morning_snack"
	MealLunch          = "lunch"
	MealAfternoonSnack = "afternoon_snack"
	MealDinner         = "dinner"
	MealEveningSnack   = "evening_snack"
	MealSnack          = "snack"
	MealCustom         = "custom"
)

// ValidMealTypes lists the accepted meal type values
var ValidMealTypes = []string{
	MealBreakfast, MealMorningSnack, MealLunch, MealAfternoonSnack,
	MealDinner, MealEveningSnack, MealSnack, MealCustom,
}

// Tracking modes, chosen once the period is complete
const (
	TrackingUnset    = "unset"
	TrackingDetailed = "detailed"
	TrackingJournal  = "journal"
	TrackingPaused   = "paused"
)

// ValidTrackingModes lists the modes a user may choose (unset is the
// initial value, not a choice)
var ValidTrackingModes = []string{TrackingDetailed, TrackingJournal, TrackingPaused}

// DayStatus is derived from calendar time and the completed flag at read
// time, never stored.
type DayStatus string

const (
	StatusLocked    DayStatus = "locked"
	StatusOpenToday DayStatus = "open_today"
	StatusMissed    DayStatus = "missed"
	StatusLogged    DayStatus = "logged"
)

// MealEntry is one labeled, freely described food record within a day
type MealEntry struct {
	ID      uuid.UUID `json:"id"`
	Type    string    `json:"type"`
	Label   string    `json:"label,omitempty"`
	Content string    `json:"content"`
	Order   int       `json:"order"`
	// CalorieOverride, when set, is the authoritative total for this meal.
	// It is cleared whenever Content changes without a new override.
	CalorieOverride *int `json:"calorie_override,omitempty"`
}

// DayRecord holds one weekday's ordered meals
type DayRecord struct {
	Meals     []MealEntry `json:"meals"`
	Completed bool        `json:"completed"`
	// CompletedAt is set once and never cleared; edits stay allowed after.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Period is the five-weekday calibration window, serialized wholesale as
// one record per profile.
type Period struct {
	ProfileID uuid.UUID `json:"profile_id"`
	StartDate string    `json:"start_date"` // YYYY-MM-DD, always a Monday
	// Days always has exactly the five weekday keys.
	Days         map[Weekday]*DayRecord `json:"days"`
	CurrentDay   *Weekday               `json:"current_day,omitempty"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
	Dismissed    bool                   `json:"dismissed"`
	TrackingMode string                 `json:"tracking_mode"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// DayStatusFor classifies a weekday from calendar time and its completed
// flag:
//
//	logged     — completed, regardless of date
//	open_today — today's weekday, not completed
//	locked     — future weekday
//	missed     — past weekday, not completed
func DayStatusFor(today, dayDate time.Time, completed bool) DayStatus {
	if completed {
		return StatusLogged
	}
	t := dateOnly(today)
	d := dateOnly(dayDate)
	switch {
	case d.Equal(t):
		return StatusOpenToday
	case d.After(t):
		return StatusLocked
	default:
		return StatusMissed
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayDTO is one day in the API response, with its derived status
type DayDTO struct {
	Day         Weekday     `json:"day"`
	Date        string      `json:"date"`
	Status      DayStatus   `json:"status"`
	Meals       []MealEntry `json:"meals"`
	Completed   bool        `json:"completed"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// PeriodDTO is the API response format; Days are in weekday order
type PeriodDTO struct {
	ProfileID    uuid.UUID  `json:"profile_id"`
	StartDate    string     `json:"start_date"`
	Days         []DayDTO   `json:"days"`
	CurrentDay   *Weekday   `json:"current_day,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Dismissed    bool       `json:"dismissed"`
	TrackingMode string     `json:"tracking_mode"`
}

// AddMealRequest is the request body for adding a meal to a day
type AddMealRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Type      string    `json:"type"`
	Label     string    `json:"label,omitempty"`
}

// UpdateMealRequest is the request body for editing a meal. Nil fields are
// left untouched; a content change clears any stored override unless a new
// override arrives in the same request.
type UpdateMealRequest struct {
	ProfileID       uuid.UUID `json:"profile_id"`
	Content         *string   `json:"content,omitempty"`
	CalorieOverride *int      `json:"calorie_override,omitempty"`
}

// ReorderMealsRequest is the request body for reordering a day's meals
type ReorderMealsRequest struct {
	ProfileID uuid.UUID   `json:"profile_id"`
	Order     []uuid.UUID `json:"order"`
}

// TrackingModeRequest is the request body for the post-period decision
type TrackingModeRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Mode      string    `json:"mode"`
}

// ProfileRequest is the request body for operations that only need the
// owning profile
type ProfileRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
