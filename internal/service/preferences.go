package service

import (
	"context"
	"errors"
	"time"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
)

// PreferencesService reads and updates stored user preferences.
type PreferencesService struct {
	store           PreferencesStore
	languages       []string
	defaultLanguage string
}

func NewPreferencesService(store PreferencesStore, languages []string, defaultLanguage string) *PreferencesService {
	return &PreferencesService{
		store:           store,
		languages:       languages,
		defaultLanguage: defaultLanguage,
	}
}

// GetOrDefault returns the stored preferences, normalized, or the defaults
// when the user has none yet.
func (s *PreferencesService) GetOrDefault(ctx context.Context, userID int64) (*entities.Preferences, error) {
	prefs, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesNotFound) {
			prefs = entities.NewPreferences(userID)
			prefs.Language = s.fallbackLanguage()
			return prefs, nil
		}
		return nil, err
	}

	prefs.Normalize(s.languages, s.defaultLanguage)
	return prefs, nil
}

// Save normalizes and stores prefs.
func (s *PreferencesService) Save(ctx context.Context, prefs *entities.Preferences) error {
	prefs.Normalize(s.languages, s.defaultLanguage)
	prefs.UpdatedAt = time.Now()
	return s.store.Upsert(ctx, prefs)
}

// Update loads the user's preferences, applies fn and saves the result.
func (s *PreferencesService) Update(ctx context.Context, userID int64, fn func(*entities.Preferences)) (*entities.Preferences, error) {
	prefs, err := s.GetOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	fn(prefs)
	if err := s.Save(ctx, prefs); err != nil {
		return nil, err
	}

	return prefs, nil
}

func (s *PreferencesService) SetMode(ctx context.Context, userID int64, mode entities.Mode) (*entities.Preferences, error) {
	return s.Update(ctx, userID, func(p *entities.Preferences) { p.Mode = mode })
}

func (s *PreferencesService) SetMaxQuestions(ctx context.Context, userID int64, n int) (*entities.Preferences, error) {
	return s.Update(ctx, userID, func(p *entities.Preferences) { p.MaxQuestions = n })
}

func (s *PreferencesService) SetLanguage(ctx context.Context, userID int64, lang string) (*entities.Preferences, error) {
	return s.Update(ctx, userID, func(p *entities.Preferences) { p.Language = lang })
}

// ToggleCategory adds or removes c from the user's filter. Removing the
// last category resets the filter to all.
func (s *PreferencesService) ToggleCategory(ctx context.Context, userID int64, c entities.Category) (*entities.Preferences, error) {
	return s.Update(ctx, userID, func(p *entities.Preferences) {
		p.Filter = toggleCategory(p.Filter, c)
	})
}

// SetFilter replaces the user's filter. It is stored in canonical form.
func (s *PreferencesService) SetFilter(ctx context.Context, userID int64, filter string) (*entities.Preferences, error) {
	return s.Update(ctx, userID, func(p *entities.Preferences) { p.Filter = filter })
}

func (s *PreferencesService) SetSeed(ctx context.Context, userID int64, seed string) (*entities.Preferences, error) {
	return s.Update(ctx, userID, func(p *entities.Preferences) { p.Seed = seed })
}

func (s *PreferencesService) fallbackLanguage() string {
	if s.defaultLanguage == "" {
		return entities.DefaultLanguage
	}
	return s.defaultLanguage
}

func toggleCategory(filter string, c entities.Category) string {
	current := entities.ParseFilter(filter)
	if current.All {
		return string(c)
	}

	next := make([]entities.Category, 0, len(current.Categories)+1)
	found := false
	for _, existing := range current.Categories {
		if existing == c {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		next = append(next, c)
	}
	if len(next) == 0 {
		return entities.FilterAll
	}

	return entities.ParseFilter(entities.JoinCategories(next)).String()
}
