package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/avet102/meal-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("profile not found")
)

// PostgresStorage is the Postgres implementation of Storage
type PostgresStorage struct {
	pool         *pgxpool.Pool
	calibration  *PostgresCalibrationStorage
	mealPatterns *PostgresMealPatternsStorage
	advisor      *PostgresAdvisorStorage
}

// New creates a PostgresStorage and ensures the default owner profile
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	ps := &PostgresStorage{
		pool:         pool,
		calibration:  NewPostgresCalibrationStorage(pool),
		mealPatterns: NewPostgresMealPatternsStorage(pool),
		advisor:      NewPostgresAdvisorStorage(pool),
	}

	if err := ps.ensureOwnerProfile(ctx); err != nil {
		return nil, err
	}

	return ps, nil
}

// ensureOwnerProfile creates the owner profile if it does not exist yet
func (p *PostgresStorage) ensureOwnerProfile(ctx context.Context) error {
	query := `
		INSERT INTO profiles (id, owner_user_id, type, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING
	`

	ownerID := uuid.New()
	now := time.Now()

	_, err := p.pool.Exec(ctx, query,
		ownerID,
		"default",
		"owner",
		"Me",
		now,
		now,
	)

	return err
}

func (p *PostgresStorage) ListProfiles(ctx context.Context) ([]storage.Profile, error) {
	query := `
		SELECT id, owner_user_id, type, name, created_at, updated_at
		FROM profiles
		ORDER BY created_at ASC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []storage.Profile{}
	for rows.Next() {
		var prof storage.Profile
		err := rows.Scan(
			&prof.ID,
			&prof.OwnerUserID,
			&prof.Type,
			&prof.Name,
			&prof.CreatedAt,
			&prof.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, prof)
	}

	return profiles, rows.Err()
}

func (p *PostgresStorage) GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error) {
	query := `
		SELECT id, owner_user_id, type, name, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var prof storage.Profile
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&prof.ID,
		&prof.OwnerUserID,
		&prof.Type,
		&prof.Name,
		&prof.CreatedAt,
		&prof.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &prof, nil
}

func (p *PostgresStorage) CreateProfile(ctx context.Context, profile *storage.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO profiles (id, owner_user_id, type, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		profile.ID,
		profile.OwnerUserID,
		profile.Type,
		profile.Name,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	return err
}

func (p *PostgresStorage) UpdateProfile(ctx context.Context, profile *storage.Profile) error {
	profile.UpdatedAt = time.Now()

	query := `
		UPDATE profiles
		SET name = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := p.pool.Exec(ctx, query,
		profile.ID,
		profile.Name,
		profile.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *PostgresStorage) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM profiles WHERE id = $1`

	result, err := p.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// GetCalibrationStorage returns the calibration storage
func (p *PostgresStorage) GetCalibrationStorage() *PostgresCalibrationStorage {
	return p.calibration
}

// CalibrationStorage methods - delegate to embedded calibration storage

func (p *PostgresStorage) GetPeriod(ctx context.Context, profileID uuid.UUID) ([]byte, bool, error) {
	return p.calibration.GetPeriod(ctx, profileID)
}

func (p *PostgresStorage) PutPeriod(ctx context.Context, profileID uuid.UUID, payload []byte) error {
	return p.calibration.PutPeriod(ctx, profileID, payload)
}

// GetMealPatternsStorage returns the meal patterns storage
func (p *PostgresStorage) GetMealPatternsStorage() *PostgresMealPatternsStorage {
	return p.mealPatterns
}

// MealPatternsStorage methods - delegate to embedded meal patterns storage

func (p *PostgresStorage) GetMealPattern(ctx context.Context, profileID uuid.UUID) (storage.MealPattern, bool, error) {
	return p.mealPatterns.GetMealPattern(ctx, profileID)
}

func (p *PostgresStorage) UpsertMealPattern(ctx context.Context, profileID uuid.UUID, slots []storage.MealPatternSlot) (storage.MealPattern, error) {
	return p.mealPatterns.UpsertMealPattern(ctx, profileID, slots)
}

// GetAdvisorStorage returns the advisor storage
func (p *PostgresStorage) GetAdvisorStorage() *PostgresAdvisorStorage {
	return p.advisor
}

// AdvisorStorage methods - delegate to embedded advisor storage

func (p *PostgresStorage) InsertAddition(ctx context.Context, addition *storage.AdvisorAddition) error {
	return p.advisor.InsertAddition(ctx, addition)
}

func (p *PostgresStorage) GetAddition(ctx context.Context, id uuid.UUID) (*storage.AdvisorAddition, error) {
	return p.advisor.GetAddition(ctx, id)
}

func (p *PostgresStorage) GetPendingBySlot(ctx context.Context, profileID uuid.UUID, kind, day string, mealID uuid.UUID) (*storage.AdvisorAddition, bool, error) {
	return p.advisor.GetPendingBySlot(ctx, profileID, kind, day, mealID)
}

func (p *PostgresStorage) ListAdditions(ctx context.Context, profileID uuid.UUID, status string) ([]storage.AdvisorAddition, error) {
	return p.advisor.ListAdditions(ctx, profileID, status)
}

func (p *PostgresStorage) UpdateAddition(ctx context.Context, addition *storage.AdvisorAddition) error {
	return p.advisor.UpdateAddition(ctx, addition)
}
