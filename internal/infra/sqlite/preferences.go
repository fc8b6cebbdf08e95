package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
)

// PreferencesRepository stores quiz preferences in SQLite.
type PreferencesRepository struct {
	db *sql.DB
}

func NewPreferencesRepository(db *sql.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

func (r *PreferencesRepository) Get(ctx context.Context, userID int64) (*entities.Preferences, error) {
	var (
		prefs   entities.Preferences
		mode    string
		updated int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, language_code, filter, max_questions, seed, mode, updated_at
		FROM quiz_preferences WHERE user_id = ?`, userID,
	).Scan(&prefs.UserID, &prefs.Language, &prefs.Filter, &prefs.MaxQuestions, &prefs.Seed, &mode, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	prefs.Mode = entities.Mode(mode)
	prefs.UpdatedAt = time.Unix(updated, 0).UTC()
	return &prefs, nil
}

func (r *PreferencesRepository) Upsert(ctx context.Context, prefs *entities.Preferences) error {
	updated := prefs.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quiz_preferences (user_id, language_code, filter, max_questions, seed, mode, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
		  language_code = excluded.language_code,
		  filter = excluded.filter,
		  max_questions = excluded.max_questions,
		  seed = excluded.seed,
		  mode = excluded.mode,
		  updated_at = excluded.updated_at`,
		prefs.UserID, prefs.Language, prefs.Filter, prefs.MaxQuestions, prefs.Seed, string(prefs.Mode), updated.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}
