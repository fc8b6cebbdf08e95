package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/config"
	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
)

// TestOpenPreferencesMemory verifies the default driver needs no database.
func TestOpenPreferencesMemory(t *testing.T) {
	cfg := &config.Config{DB: config.DB{Driver: config.DriverMemory}}

	store, closeFn, err := OpenPreferences(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if closeFn == nil {
		t.Fatalf("expected a close function")
	}
	defer closeFn()

	if _, err := store.Get(context.Background(), 1); !errors.Is(err, repository.ErrPreferencesNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// TestOpenPreferencesSQLite verifies the sqlite store round trips.
func TestOpenPreferencesSQLite(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "prefs.db") + "?_pragma=busy_timeout(5000)"
	cfg := &config.Config{DB: config.DB{Driver: config.DriverSQLite, URL: dsn}}
	ctx := context.Background()

	store, closeFn, err := OpenPreferences(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if closeFn == nil {
		t.Fatalf("expected a close function")
	}
	defer closeFn()

	prefs := entities.NewPreferences(5)
	if err := store.Upsert(ctx, prefs); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if got, err := store.Get(ctx, 5); err != nil || got.UserID != 5 {
		t.Fatalf("expected stored preferences, got %+v (%v)", got, err)
	}
}

// TestOpenPreferencesPostgresWithoutURL verifies a missing DSN fails before dialing.
func TestOpenPreferencesPostgresWithoutURL(t *testing.T) {
	cfg := &config.Config{DB: config.DB{Driver: config.DriverPostgres}}

	_, closeFn, err := OpenPreferences(context.Background(), cfg, zap.NewNop())
	if !errors.Is(err, config.ErrMissingEnvironmentVariables) {
		t.Fatalf("expected missing env error, got %v", err)
	}
	if closeFn != nil {
		t.Fatalf("expected no close function on error")
	}
}
