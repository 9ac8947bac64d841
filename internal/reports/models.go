package reports

import (
	"strings"

	"github.com/avet102/meal-hub/internal/calibration"
	"github.com/avet102/meal-hub/internal/estimator"
)

// mealRow is one rendered line of a day's table
type mealRow struct {
	Title    string
	Content  string
	Calories int
	// Estimated is false when a stored calorie override is authoritative
	Estimated bool
}

// daySummary is one weekday of the rendered report
type daySummary struct {
	Title  string
	Date   string
	Status string
	Rows   []mealRow
	Total  int
}

// weekSummary is the view model the PDF is drawn from
type weekSummary struct {
	StartDate    string
	TrackingMode string
	Days         []daySummary
	Total        int
}

// buildWeekSummary flattens a period into the report view model. Meal
// calories use the stored override when present, otherwise the rule-based
// estimate of the meal text; meals without content count as zero.
func buildWeekSummary(period *calibration.PeriodDTO) weekSummary {
	week := weekSummary{
		StartDate:    period.StartDate,
		TrackingMode: period.TrackingMode,
	}

	for _, day := range period.Days {
		ds := daySummary{
			Title:  humanize(string(day.Day)),
			Date:   day.Date,
			Status: humanize(string(day.Status)),
		}

		for _, meal := range day.Meals {
			row := mealRow{
				Title:   mealTitle(meal),
				Content: strings.TrimSpace(meal.Content),
			}
			switch {
			case meal.CalorieOverride != nil:
				row.Calories = *meal.CalorieOverride
			case row.Content != "":
				row.Calories = estimator.Estimate(row.Content).TotalCalories
				row.Estimated = true
			}
			ds.Rows = append(ds.Rows, row)
			ds.Total += row.Calories
		}

		week.Total += ds.Total
		week.Days = append(week.Days, ds)
	}

	return week
}

// mealTitle prefers the custom label over the meal type
func mealTitle(meal calibration.MealEntry) string {
	if strings.TrimSpace(meal.Label) != "" {
		return meal.Label
	}
	return humanize(meal.Type)
}

// humanize turns snake_case enum values into display text
func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
