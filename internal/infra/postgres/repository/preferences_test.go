package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/infra/postgres"
	repo "github.com/aliskhannn/quiz-trainer/internal/repository"
)

// TestPreferencesRepository runs against TEST_DATABASE_URL when it is set.
func TestPreferencesRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{MaxConns: 2})
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, postgres.NewTransactor(pool)); err != nil {
		t.Fatalf("schema: %v", err)
	}

	r := NewPreferencesRepository(pool)
	const userID = -424242
	t.Cleanup(func() { _ = r.Delete(context.Background(), userID) })

	if _, err := r.Get(ctx, userID); !errors.Is(err, repo.ErrPreferencesNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	prefs := entities.NewPreferences(userID)
	prefs.Mode = entities.ModeExam
	prefs.MaxQuestions = 30
	if err := r.Upsert(ctx, prefs); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := r.Get(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Mode != entities.ModeExam || got.MaxQuestions != 30 || got.Filter != entities.FilterAll {
		t.Fatalf("unexpected row %+v", got)
	}
}
