package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
)

// QuestionSource supplies the raw bank for a language and canonical filter.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, language, filter string) ([]entities.Question, error)
}

// PreferencesStore persists per-user preferences.
type PreferencesStore interface {
	Get(ctx context.Context, userID int64) (*entities.Preferences, error)
	Upsert(ctx context.Context, prefs *entities.Preferences) error
}

// BankValidator checks a fetched bank before it is used.
type BankValidator interface {
	ValidateBank(questions []entities.Question) ([]entities.Question, error)
}

// SourceError reports a question source that could not be reached or whose
// payload could not be decoded.
type SourceError struct {
	Language string
	Filter   string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("load questions (lang=%s, filter=%s): %v", e.Language, e.Filter, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Session drives one user through a quiz. It is not safe for concurrent use.
type Session struct {
	source QuestionSource
	opts   sessionOptions
	state  entities.SessionState
}

// NewSession creates an idle session reading questions from source.
func NewSession(source QuestionSource, opts ...SessionOption) *Session {
	o := defaultSessionOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		source: source,
		opts:   o,
		state:  idleState(entities.SessionConfig{}, ""),
	}
}

func idleState(cfg entities.SessionConfig, errMsg string) entities.SessionState {
	return entities.SessionState{
		Status:     entities.StatusIdle,
		Selections: entities.Selections{},
		Checked:    map[string]bool{},
		Revealed:   map[string]bool{},
		Err:        errMsg,
		Config:     cfg,
	}
}

// Start loads, validates and orders a new question list. Any previous
// state is discarded. On failure the session is left idle and empty with
// the error recorded.
func (s *Session) Start(ctx context.Context, req entities.SessionRequest) error {
	cfg := s.resolveConfig(req)

	s.state = idleState(cfg, "")
	s.state.Status = entities.StatusLoading

	questions, err := s.load(ctx, cfg)
	if err != nil {
		s.opts.logger.Error("failed to start session",
			zap.String("language", cfg.Language),
			zap.String("filter", cfg.Filter),
			zap.Error(err),
		)
		s.state = idleState(cfg, err.Error())
		return err
	}

	rng := s.opts.newRandom(cfg.Seed)
	ordered := Shuffle(questions, rng)
	for i := range ordered {
		q := ordered[i].Clone()
		q.Options = OrderOptions(q, rng)
		ordered[i] = q
	}
	if len(ordered) > cfg.MaxQuestions {
		ordered = ordered[:cfg.MaxQuestions]
	}

	next := idleState(cfg, "")
	next.ID = uuid.NewString()
	next.Status = entities.StatusActive
	next.Questions = ordered
	s.state = next

	s.savePreferences(ctx, cfg)
	return nil
}

func (s *Session) load(ctx context.Context, cfg entities.SessionConfig) ([]entities.Question, error) {
	if s.source == nil {
		return nil, &SourceError{Language: cfg.Language, Filter: cfg.Filter, Err: errors.New("no question source")}
	}

	raw, err := s.source.FetchQuestions(ctx, cfg.Language, cfg.Filter)
	if err != nil {
		var (
			verr *ValidationError
			rerr *repository.RecordError
		)
		if errors.As(err, &verr) {
			return nil, err
		}
		if errors.As(err, &rerr) {
			return nil, NewMalformedError(rerr.Index, rerr)
		}
		return nil, &SourceError{Language: cfg.Language, Filter: cfg.Filter, Err: err}
	}

	return s.opts.validator.ValidateBank(raw)
}

func (s *Session) savePreferences(ctx context.Context, cfg entities.SessionConfig) {
	if s.opts.prefs == nil {
		return
	}

	prefs := &entities.Preferences{
		UserID:       s.opts.userID,
		Language:     cfg.Language,
		Filter:       cfg.Filter,
		MaxQuestions: cfg.MaxQuestions,
		Seed:         cfg.SeedRaw,
		Mode:         cfg.Mode,
		UpdatedAt:    time.Now(),
	}
	if err := s.opts.prefs.Upsert(ctx, prefs); err != nil {
		s.opts.logger.Warn("failed to save preferences",
			zap.Int64("user_id", s.opts.userID),
			zap.Error(err),
		)
	}
}

// SelectOption records a choice. Single questions replace the selection,
// multi questions toggle optionID. Selecting clears the checked flag.
// Unknown questions, option ids that are not on the question, and finished
// sessions leave the selection untouched.
func (s *Session) SelectOption(questionID, optionID string) {
	q, ok := s.editable(questionID)
	if !ok || !q.HasOption(optionID) {
		return
	}

	current := s.state.Selections[questionID]
	var next []string
	switch q.Kind {
	case entities.KindMulti:
		next = toggle(current, optionID)
	default:
		next = []string{optionID}
	}

	s.setSelection(questionID, next)
}

// SetSelection replaces the whole answer to a question. Ids that are not
// options of the question are dropped, duplicates are collapsed.
func (s *Session) SetSelection(questionID string, optionIDs []string) {
	q, ok := s.editable(questionID)
	if !ok {
		return
	}

	next := make([]string, 0, len(optionIDs))
	seen := make(map[string]struct{}, len(optionIDs))
	for _, id := range optionIDs {
		if _, dup := seen[id]; dup || !q.HasOption(id) {
			continue
		}
		seen[id] = struct{}{}
		next = append(next, id)
	}
	if q.Kind == entities.KindSingle && len(next) > 1 {
		next = next[len(next)-1:]
	}

	s.setSelection(questionID, next)
}

func (s *Session) setSelection(questionID string, ids []string) {
	if len(ids) == 0 {
		delete(s.state.Selections, questionID)
	} else {
		s.state.Selections[questionID] = ids
	}
	delete(s.state.Checked, questionID)
}

func toggle(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

// editable returns the question when its answer may still change.
func (s *Session) editable(questionID string) (entities.Question, bool) {
	if s.state.Finished {
		return entities.Question{}, false
	}
	return s.question(questionID)
}

func (s *Session) question(questionID string) (entities.Question, bool) {
	for _, q := range s.state.Questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return entities.Question{}, false
}

// Check marks a question as checked. It does nothing without a selection.
func (s *Session) Check(questionID string) {
	if _, ok := s.editable(questionID); !ok {
		return
	}
	if len(s.state.Selections[questionID]) == 0 {
		return
	}
	s.state.Checked[questionID] = true
}

// Reveal toggles whether the correct answer is shown.
func (s *Session) Reveal(questionID string) {
	if _, ok := s.question(questionID); !ok {
		return
	}
	if s.state.Revealed[questionID] {
		delete(s.state.Revealed, questionID)
		return
	}
	s.state.Revealed[questionID] = true
}

// Next moves to the following question, stopping at the last one.
func (s *Session) Next() {
	s.GoTo(s.state.Index + 1)
}

// Prev moves to the previous question, stopping at the first one.
func (s *Session) Prev() {
	s.GoTo(s.state.Index - 1)
}

// GoTo jumps to index, clamped to the question list.
func (s *Session) GoTo(index int) {
	s.state.Index = clampIndex(index, len(s.state.Questions))
}

func clampIndex(index, n int) int {
	if n == 0 || index < 0 {
		return 0
	}
	if index > n-1 {
		return n - 1
	}
	return index
}

// Finish freezes the session for review. Answers can no longer change.
func (s *Session) Finish() {
	s.state.Finished = true
	s.state.Status = entities.StatusFinished
	s.state.Index = clampIndex(s.state.Index, len(s.state.Questions))
}

// Reset discards everything and returns the session to idle.
func (s *Session) Reset() {
	s.state = idleState(entities.SessionConfig{}, "")
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() entities.SessionState {
	st := s.state
	st.Questions = make([]entities.Question, len(s.state.Questions))
	for i, q := range s.state.Questions {
		st.Questions[i] = q.Clone()
	}
	st.Selections = s.state.Selections.Clone()
	st.Checked = maps.Clone(s.state.Checked)
	st.Revealed = maps.Clone(s.state.Revealed)
	st.Config.Categories = append([]entities.Category(nil), s.state.Config.Categories...)
	if s.state.Config.Seed != nil {
		seed := *s.state.Config.Seed
		st.Config.Seed = &seed
	}
	return st
}

// Current returns the question at the cursor.
func (s *Session) Current() (entities.Question, bool) {
	q, ok := s.state.Current()
	if !ok {
		return entities.Question{}, false
	}
	return q.Clone(), true
}

func (s *Session) Status() entities.SessionStatus { return s.state.Status }

// Err returns the message of the last failed Start, if any.
func (s *Session) Err() string { return s.state.Err }

func (s *Session) Config() entities.SessionConfig { return s.state.Config }

func (s *Session) ID() string { return s.state.ID }

func (s *Session) Len() int { return len(s.state.Questions) }

func (s *Session) Index() int { return s.state.Index }

func (s *Session) Finished() bool { return s.state.Finished }

// Summary scores the session as it stands.
func (s *Session) Summary() entities.Summary {
	return Summarize(s.state.Questions, s.state.Selections)
}

// Selected returns a copy of the selection for a question.
func (s *Session) Selected(questionID string) []string {
	return append([]string(nil), s.state.Selections[questionID]...)
}

// IsSelected reports whether optionID is part of the selection.
func (s *Session) IsSelected(questionID, optionID string) bool {
	for _, id := range s.state.Selections[questionID] {
		if id == optionID {
			return true
		}
	}
	return false
}

func (s *Session) IsChecked(questionID string) bool { return s.state.Checked[questionID] }

func (s *Session) IsRevealed(questionID string) bool { return s.state.Revealed[questionID] }

// IsCorrect scores the current selection. Unknown questions are never correct.
func (s *Session) IsCorrect(questionID string) bool {
	q, ok := s.question(questionID)
	if !ok {
		return false
	}
	return IsCorrect(q, s.state.Selections[questionID])
}
