package postgres

import (
	"context"
	"errors"

	"github.com/avet102/meal-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAdditionNotFound = errors.New("addition not found")

type PostgresAdvisorStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresAdvisorStorage(pool *pgxpool.Pool) *PostgresAdvisorStorage {
	return &PostgresAdvisorStorage{pool: pool}
}

func (s *PostgresAdvisorStorage) InsertAddition(ctx context.Context, addition *storage.AdvisorAddition) error {
	const query = `
		INSERT INTO advisor_additions (
			id, profile_id, kind, day, meal_id, content, prev_content, status,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		addition.ID,
		addition.ProfileID,
		addition.Kind,
		addition.Day,
		addition.MealID,
		addition.Content,
		addition.PrevContent,
		addition.Status,
		addition.CreatedAt,
		addition.UpdatedAt,
	)

	return err
}

func (s *PostgresAdvisorStorage) GetAddition(ctx context.Context, id uuid.UUID) (*storage.AdvisorAddition, error) {
	const query = `
		SELECT id, profile_id, kind, day, meal_id, content, prev_content, status,
		       created_at, updated_at
		FROM advisor_additions
		WHERE id = $1
	`

	var row storage.AdvisorAddition
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.ProfileID,
		&row.Kind,
		&row.Day,
		&row.MealID,
		&row.Content,
		&row.PrevContent,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdditionNotFound
		}
		return nil, err
	}

	return &row, nil
}

func (s *PostgresAdvisorStorage) GetPendingBySlot(ctx context.Context, profileID uuid.UUID, kind, day string, mealID uuid.UUID) (*storage.AdvisorAddition, bool, error) {
	const query = `
		SELECT id, profile_id, kind, day, meal_id, content, prev_content, status,
		       created_at, updated_at
		FROM advisor_additions
		WHERE profile_id = $1 AND kind = $2 AND day = $3 AND meal_id = $4 AND status = 'pending'
		LIMIT 1
	`

	var row storage.AdvisorAddition
	err := s.pool.QueryRow(ctx, query, profileID, kind, day, mealID).Scan(
		&row.ID,
		&row.ProfileID,
		&row.Kind,
		&row.Day,
		&row.MealID,
		&row.Content,
		&row.PrevContent,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &row, true, nil
}

func (s *PostgresAdvisorStorage) ListAdditions(ctx context.Context, profileID uuid.UUID, status string) ([]storage.AdvisorAddition, error) {
	query := `
		SELECT id, profile_id, kind, day, meal_id, content, prev_content, status,
		       created_at, updated_at
		FROM advisor_additions
		WHERE profile_id = $1
	`
	args := []any{profileID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	additions := []storage.AdvisorAddition{}
	for rows.Next() {
		var row storage.AdvisorAddition
		err := rows.Scan(
			&row.ID,
			&row.ProfileID,
			&row.Kind,
			&row.Day,
			&row.MealID,
			&row.Content,
			&row.PrevContent,
			&row.Status,
			&row.CreatedAt,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		additions = append(additions, row)
	}

	return additions, rows.Err()
}

func (s *PostgresAdvisorStorage) UpdateAddition(ctx context.Context, addition *storage.AdvisorAddition) error {
	const query = `
		UPDATE advisor_additions
		SET content = $2, prev_content = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := s.pool.Exec(ctx, query,
		addition.ID,
		addition.Content,
		addition.PrevContent,
		addition.Status,
		addition.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrAdditionNotFound
	}

	return nil
}
