package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avet102/meal-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMealPatternsStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresMealPatternsStorage(pool *pgxpool.Pool) *PostgresMealPatternsStorage {
	return &PostgresMealPatternsStorage{pool: pool}
}

func (s *PostgresMealPatternsStorage) GetMealPattern(ctx context.Context, profileID uuid.UUID) (storage.MealPattern, bool, error) {
	const query = `
		SELECT profile_id, slots, created_at, updated_at
		FROM meal_patterns
		WHERE profile_id = $1
	`

	var row storage.MealPattern
	var slots []byte
	err := s.pool.QueryRow(ctx, query, profileID).Scan(
		&row.ProfileID,
		&slots,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.MealPattern{}, false, nil
		}
		return storage.MealPattern{}, false, err
	}

	if err := json.Unmarshal(slots, &row.Slots); err != nil {
		return storage.MealPattern{}, false, fmt.Errorf("decode meal pattern slots: %w", err)
	}

	return row, true, nil
}

func (s *PostgresMealPatternsStorage) UpsertMealPattern(ctx context.Context, profileID uuid.UUID, slots []storage.MealPatternSlot) (storage.MealPattern, error) {
	encoded, err := json.Marshal(slots)
	if err != nil {
		return storage.MealPattern{}, fmt.Errorf("encode meal pattern slots: %w", err)
	}

	const query = `
		INSERT INTO meal_patterns (profile_id, slots, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (profile_id) DO UPDATE SET
			slots = EXCLUDED.slots,
			updated_at = NOW()
		RETURNING profile_id, created_at, updated_at
	`

	var out storage.MealPattern
	err = s.pool.QueryRow(ctx, query, profileID, encoded).Scan(
		&out.ProfileID,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return storage.MealPattern{}, err
	}

	out.Slots = append([]storage.MealPatternSlot(nil), slots...)
	return out, nil
}
