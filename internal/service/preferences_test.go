package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// TestPreferencesGetOrDefault verifies missing preferences yield defaults.
func TestPreferencesGetOrDefault(t *testing.T) {
	svc := NewPreferencesService(newFakePrefs(), []string{"en", "de"}, "de")

	prefs, err := svc.GetOrDefault(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if prefs.UserID != 5 || prefs.Language != "de" || prefs.Filter != entities.FilterAll ||
		prefs.MaxQuestions != entities.DefaultMaxQuestions || prefs.Mode != entities.DefaultMode {
		t.Fatalf("unexpected defaults %+v", prefs)
	}
}

// TestPreferencesGetNormalizesStoredValues verifies stale values are repaired on read.
func TestPreferencesGetNormalizesStoredValues(t *testing.T) {
	store := newFakePrefs()
	store.stored[1] = entities.Preferences{UserID: 1, Language: "fr", Filter: "nope", MaxQuestions: 7, Mode: "quiz"}
	svc := NewPreferencesService(store, []string{"en"}, "en")

	prefs, err := svc.GetOrDefault(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if prefs.Language != "en" || prefs.Filter != entities.FilterAll || prefs.MaxQuestions != 60 || prefs.Mode != entities.ModeStudy {
		t.Fatalf("expected normalized values, got %+v", prefs)
	}
}

// TestPreferencesGetPropagatesStoreError verifies unexpected errors are returned.
func TestPreferencesGetPropagatesStoreError(t *testing.T) {
	store := newFakePrefs()
	store.getErr = errors.New("db down")
	svc := NewPreferencesService(store, nil, "")

	if _, err := svc.GetOrDefault(context.Background(), 1); err == nil {
		t.Fatalf("expected error")
	}
}

// TestPreferencesSetters verifies each setter persists its field.
func TestPreferencesSetters(t *testing.T) {
	store := newFakePrefs()
	svc := NewPreferencesService(store, []string{"en", "de"}, "en")
	ctx := context.Background()

	if _, err := svc.SetMode(ctx, 1, entities.ModeExam); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if _, err := svc.SetMaxQuestions(ctx, 1, 30); err != nil {
		t.Fatalf("set max: %v", err)
	}
	if _, err := svc.SetLanguage(ctx, 1, "de"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if _, err := svc.SetSeed(ctx, 1, "42"); err != nil {
		t.Fatalf("set seed: %v", err)
	}
	prefs, err := svc.SetFilter(ctx, 1, "ux-&-components, basic")
	if err != nil {
		t.Fatalf("set filter: %v", err)
	}

	stored := store.stored[1]
	if stored.Mode != entities.ModeExam || stored.MaxQuestions != 30 || stored.Language != "de" || stored.Seed != "42" {
		t.Fatalf("unexpected stored preferences %+v", stored)
	}
	if prefs.Filter != "ux-&-components,basic" {
		t.Fatalf("expected canonical filter, got %q", prefs.Filter)
	}
	if stored.UpdatedAt.IsZero() {
		t.Fatalf("expected UpdatedAt to be set")
	}
}

// TestPreferencesSetMaxRejectsUnknown verifies invalid lengths fall back.
func TestPreferencesSetMaxRejectsUnknown(t *testing.T) {
	svc := NewPreferencesService(newFakePrefs(), nil, "")

	prefs, err := svc.SetMaxQuestions(context.Background(), 1, 13)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if prefs.MaxQuestions != entities.DefaultMaxQuestions {
		t.Fatalf("expected default, got %d", prefs.MaxQuestions)
	}
}

// TestPreferencesToggleCategory verifies category toggling rules.
func TestPreferencesToggleCategory(t *testing.T) {
	svc := NewPreferencesService(newFakePrefs(), nil, "")
	ctx := context.Background()

	prefs, _ := svc.ToggleCategory(ctx, 1, entities.CategorySecurity)
	if prefs.Filter != string(entities.CategorySecurity) {
		t.Fatalf("expected single category from all, got %q", prefs.Filter)
	}

	prefs, _ = svc.ToggleCategory(ctx, 1, entities.CategoryBasic)
	if prefs.Filter != "security-&integrity,basic" {
		t.Fatalf("expected two categories, got %q", prefs.Filter)
	}

	prefs, _ = svc.ToggleCategory(ctx, 1, entities.CategorySecurity)
	if prefs.Filter != "basic" {
		t.Fatalf("expected basic, got %q", prefs.Filter)
	}

	prefs, _ = svc.ToggleCategory(ctx, 1, entities.CategoryBasic)
	if prefs.Filter != entities.FilterAll {
		t.Fatalf("expected all after removing the last category, got %q", prefs.Filter)
	}
}

// TestPreferencesToggleEveryCategoryIsAll verifies selecting all tags collapses to all.
func TestPreferencesToggleEveryCategoryIsAll(t *testing.T) {
	svc := NewPreferencesService(newFakePrefs(), nil, "")
	ctx := context.Background()

	var prefs *entities.Preferences
	for _, c := range entities.AllCategories {
		prefs, _ = svc.ToggleCategory(ctx, 1, c)
	}
	if prefs.Filter != entities.FilterAll {
		t.Fatalf("expected all, got %q", prefs.Filter)
	}
}
