package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
)

func singleQuestion(id string) entities.Question {
	return entities.Question{
		ID:     id,
		Kind:   entities.KindSingle,
		Prompt: "Prompt for " + id,
		Options: []entities.QuestionOption{
			{ID: "a", Text: "Alpha"},
			{ID: "b", Text: "Bravo"},
			{ID: "c", Text: "Charlie"},
		},
		CorrectIDs:  []string{"a"},
		Explanation: entities.Explanation{"Alpha is right."},
		Version:     entities.VersionOf(1),
		Category:    entities.CategoryBasic,
	}
}

func multiQuestion(id string) entities.Question {
	q := singleQuestion(id)
	q.Kind = entities.KindMulti
	q.CorrectIDs = []string{"a", "c"}
	return q
}

func numberedBank(n int) []entities.Question {
	bank := make([]entities.Question, 0, n)
	for i := 1; i <= n; i++ {
		bank = append(bank, singleQuestion(fmt.Sprintf("q%d", i)))
	}
	return bank
}

func questionIDs(qs []entities.Question) []string {
	ids := make([]string, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	return ids
}

func optionIDs(opts []entities.QuestionOption) []string {
	ids := make([]string, 0, len(opts))
	for _, o := range opts {
		ids = append(ids, o.ID)
	}
	return ids
}

// fakeSource returns a fixed bank and records its calls.
type fakeSource struct {
	mu        sync.Mutex
	questions []entities.Question
	err       error
	calls     int
	language  string
	filter    string
}

func (f *fakeSource) FetchQuestions(_ context.Context, language, filter string) ([]entities.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.language = language
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return append([]entities.Question(nil), f.questions...), nil
}

// fakePrefs is an in-memory PreferencesStore with optional failures.
type fakePrefs struct {
	mu        sync.Mutex
	stored    map[int64]entities.Preferences
	upsertErr error
	getErr    error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{stored: map[int64]entities.Preferences{}}
}

func (f *fakePrefs) Get(_ context.Context, userID int64) (*entities.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.stored[userID]
	if !ok {
		return nil, repository.ErrPreferencesNotFound
	}
	return &p, nil
}

func (f *fakePrefs) Upsert(_ context.Context, prefs *entities.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.stored[prefs.UserID] = *prefs
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
