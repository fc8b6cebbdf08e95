package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
)

func openTestDB(t *testing.T) *PreferencesRepository {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "prefs.db") + "?_pragma=busy_timeout(5000)"
	db, err := Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPreferencesRepository(db)
}

// TestPreferencesRepositoryNotFound verifies missing rows map to the sentinel.
func TestPreferencesRepositoryNotFound(t *testing.T) {
	repo := openTestDB(t)
	if _, err := repo.Get(context.Background(), 1); !errors.Is(err, repository.ErrPreferencesNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// TestPreferencesRepositoryUpsert verifies insert and update of one row.
func TestPreferencesRepositoryUpsert(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	updated := time.Date(2025, 5, 4, 3, 2, 1, 0, time.UTC)
	prefs := &entities.Preferences{
		UserID:       77,
		Language:     "de",
		Filter:       "basic,ux-&-components",
		MaxQuestions: 20,
		Seed:         "42",
		Mode:         entities.ModeExam,
		UpdatedAt:    updated,
	}
	if err := repo.Upsert(ctx, prefs); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.Get(ctx, 77)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Language != "de" || got.Filter != prefs.Filter || got.MaxQuestions != 20 || got.Seed != "42" || got.Mode != entities.ModeExam {
		t.Fatalf("unexpected row %+v", got)
	}
	if !got.UpdatedAt.Equal(updated) {
		t.Fatalf("unexpected updated_at %v", got.UpdatedAt)
	}

	prefs.Mode = entities.ModeStudy
	prefs.Seed = ""
	if err := repo.Upsert(ctx, prefs); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = repo.Get(ctx, 77)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Mode != entities.ModeStudy || got.Seed != "" {
		t.Fatalf("update not applied %+v", got)
	}
}
