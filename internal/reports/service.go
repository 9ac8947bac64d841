package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/avet102/meal-hub/internal/calibration"
	"github.com/google/uuid"
)

// Errors
var (
	ErrNoPeriod        = errors.New("no calibration period")
	ErrProfileNotFound = errors.New("profile not found")
)

// PeriodSource supplies the calibration period the report renders.
// Ownership checks happen inside the source.
type PeriodSource interface {
	GetPeriod(ctx context.Context, profileID uuid.UUID) (*calibration.PeriodDTO, error)
}

// Service handles report business logic. Reports are rendered on demand
// and never stored.
type Service struct {
	periods   PeriodSource
	generator *Generator
}

// NewService creates a new reports service
func NewService(periods PeriodSource) *Service {
	return &Service{
		periods:   periods,
		generator: NewGenerator(),
	}
}

// WeekSummaryPDF renders the profile's calibration week as a PDF and
// returns the bytes together with a suggested filename.
func (s *Service) WeekSummaryPDF(ctx context.Context, profileID uuid.UUID) ([]byte, string, error) {
	period, err := s.periods.GetPeriod(ctx, profileID)
	if err != nil {
		switch {
		case errors.Is(err, calibration.ErrPeriodNotFound):
			return nil, "", ErrNoPeriod
		case errors.Is(err, calibration.ErrProfileNotFound):
			return nil, "", ErrProfileNotFound
		}
		return nil, "", fmt.Errorf("failed to load period: %w", err)
	}

	data, err := s.generator.WeekSummary(period)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate report: %w", err)
	}

	filename := fmt.Sprintf("calibration_week_%s.pdf", period.StartDate)
	return data, filename, nil
}
