package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCalibrationStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresCalibrationStorage(pool *pgxpool.Pool) *PostgresCalibrationStorage {
	return &PostgresCalibrationStorage{pool: pool}
}

func (s *PostgresCalibrationStorage) GetPeriod(ctx context.Context, profileID uuid.UUID) ([]byte, bool, error) {
	const query = `
		SELECT payload
		FROM calibration_periods
		WHERE profile_id = $1
	`

	var payload []byte
	err := s.pool.QueryRow(ctx, query, profileID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return payload, true, nil
}

func (s *PostgresCalibrationStorage) PutPeriod(ctx context.Context, profileID uuid.UUID, payload []byte) error {
	const query = `
		INSERT INTO calibration_periods (profile_id, payload, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (profile_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = NOW()
	`

	_, err := s.pool.Exec(ctx, query, profileID, payload)
	return err
}
