package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/infra/postgres"
	repo "github.com/aliskhannn/quiz-trainer/internal/repository"
)

// PreferencesRepository stores quiz preferences in PostgreSQL.
type PreferencesRepository struct {
	db postgres.DBTX
}

// NewPreferencesRepository creates a new PreferencesRepository with the provided database pool.
func NewPreferencesRepository(db postgres.DBTX) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// Get retrieves preferences for a user.
func (r *PreferencesRepository) Get(ctx context.Context, userID int64) (*entities.Preferences, error) {
	query := `
		SELECT user_id, language_code, filter, max_questions, seed, mode, updated_at
		FROM quiz_preferences
		WHERE user_id = $1
	`

	var (
		prefs entities.Preferences
		mode  string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.Language,
		&prefs.Filter,
		&prefs.MaxQuestions,
		&prefs.Seed,
		&mode,
		&prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	prefs.Mode = entities.Mode(mode)

	return &prefs, nil
}

// Upsert inserts or replaces the preferences of prefs.UserID.
func (r *PreferencesRepository) Upsert(ctx context.Context, prefs *entities.Preferences) error {
	query := `
		INSERT INTO quiz_preferences (
			user_id, language_code, filter, max_questions, seed, mode, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			language_code = EXCLUDED.language_code,
			filter        = EXCLUDED.filter,
			max_questions = EXCLUDED.max_questions,
			seed          = EXCLUDED.seed,
			mode          = EXCLUDED.mode,
			updated_at    = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		prefs.UserID,
		prefs.Language,
		prefs.Filter,
		prefs.MaxQuestions,
		prefs.Seed,
		string(prefs.Mode),
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}

	return nil
}

// Delete removes the preferences of a user.
func (r *PreferencesRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM quiz_preferences WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}
