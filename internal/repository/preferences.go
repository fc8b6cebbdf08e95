package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

var ErrPreferencesNotFound = errors.New("preferences not found")

// MemoryPreferences keeps preferences in process memory.
type MemoryPreferences struct {
	mu    sync.RWMutex
	prefs map[int64]entities.Preferences
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{
		prefs: make(map[int64]entities.Preferences),
	}
}

// Get returns a copy of the stored preferences.
func (r *MemoryPreferences) Get(_ context.Context, userID int64) (*entities.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prefs[userID]
	if !ok {
		return nil, ErrPreferencesNotFound
	}
	return &p, nil
}

// Upsert stores a copy of prefs.
func (r *MemoryPreferences) Upsert(_ context.Context, prefs *entities.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs[prefs.UserID] = *prefs
	return nil
}
