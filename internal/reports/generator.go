package reports

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/avet102/meal-hub/internal/calibration"
	"github.com/jung-kurt/gofpdf"
)

// Generator renders calibration week summaries as PDF
type Generator struct{}

// NewGenerator creates a new report generator
func NewGenerator() *Generator {
	return &Generator{}
}

// WeekSummary renders the five-weekday period as a PDF document
func (g *Generator) WeekSummary(period *calibration.PeriodDTO) ([]byte, error) {
	week := buildWeekSummary(period)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 16)
	pdf.AddPage()

	pdf.Cell(0, 10, "Calibration Week Summary")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Week of %s", week.StartDate))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Week total: %d kcal", week.Total))
	pdf.Ln(5)
	if week.TrackingMode != calibration.TrackingUnset {
		pdf.Cell(0, 6, fmt.Sprintf("Tracking mode: %s", humanize(week.TrackingMode)))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	for _, day := range week.Days {
		g.drawDay(pdf, day)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// drawDay draws one weekday header and its meals table
func (g *Generator) drawDay(pdf *gofpdf.Fpdf, day daySummary) {
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s %s (%s)", day.Title, day.Date, day.Status))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 8)

	// Table header
	pdf.CellFormat(40, 6, "Meal", "1", 0, "C", false, 0, "")
	pdf.CellFormat(105, 6, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Calories", "1", 1, "C", false, 0, "")

	// Table rows
	for _, row := range day.Rows {
		calories := strconv.Itoa(row.Calories)
		if row.Estimated {
			calories += " (est)"
		}
		pdf.CellFormat(40, 6, truncate(row.Title, 26), "1", 0, "L", false, 0, "")
		pdf.CellFormat(105, 6, truncate(row.Content, 70), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, calories, "1", 1, "C", false, 0, "")
	}

	pdf.CellFormat(145, 6, "Day total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, strconv.Itoa(day.Total), "1", 1, "C", false, 0, "")
	pdf.Ln(6)
}

// truncate trims text to fit a table cell
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
