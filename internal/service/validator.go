package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// ValidationKind classifies a bank defect.
type ValidationKind string

const (
	KindMalformed       ValidationKind = "malformed"
	KindMissingID       ValidationKind = "missing_id"
	KindInvalidKind     ValidationKind = "invalid_kind"
	KindTooFewOptions   ValidationKind = "too_few_options"
	KindDuplicateOption ValidationKind = "duplicate_option"
	KindNoCorrect       ValidationKind = "no_correct"
	KindUnknownCorrect  ValidationKind = "unknown_correct"
	KindSingleCorrect   ValidationKind = "single_correct"
	KindEmptyPrompt     ValidationKind = "empty_prompt"
	KindMissingVersion  ValidationKind = "missing_version"
	KindEmptyBank       ValidationKind = "empty_bank"
	KindDuplicateID     ValidationKind = "duplicate_id"
)

// Sentinels for errors.Is matching against a ValidationError of that kind.
var (
	ErrMalformed       = errors.New("question must be an object")
	ErrMissingID       = errors.New("missing question id")
	ErrInvalidKind     = errors.New(`type must be "single" or "multi"`)
	ErrTooFewOptions   = errors.New("options must have at least 2 items")
	ErrDuplicateOption = errors.New("option ids must be unique")
	ErrNoCorrect       = errors.New("correct must be a non-empty list")
	ErrUnknownCorrect  = errors.New("correct references unknown option id")
	ErrSingleCorrect   = errors.New("single questions must have exactly 1 correct option")
	ErrEmptyPrompt     = errors.New("prompt must be a non-empty string")
	ErrMissingVersion  = errors.New("version must be a number")
	ErrEmptyBank       = errors.New("question bank must be non-empty")
	ErrDuplicateID     = errors.New("duplicate question id")
)

var kindSentinels = map[ValidationKind]error{
	KindMalformed:       ErrMalformed,
	KindMissingID:       ErrMissingID,
	KindInvalidKind:     ErrInvalidKind,
	KindTooFewOptions:   ErrTooFewOptions,
	KindDuplicateOption: ErrDuplicateOption,
	KindNoCorrect:       ErrNoCorrect,
	KindUnknownCorrect:  ErrUnknownCorrect,
	KindSingleCorrect:   ErrSingleCorrect,
	KindEmptyPrompt:     ErrEmptyPrompt,
	KindMissingVersion:  ErrMissingVersion,
	KindEmptyBank:       ErrEmptyBank,
	KindDuplicateID:     ErrDuplicateID,
}

// ValidationError reports the first defect found in a question or bank.
type ValidationError struct {
	Kind       ValidationKind
	QuestionID string // empty when the id is unknown
	Detail     string // extra context, e.g. the offending option id
}

// Error returns a readable message for validation failures.
func (e *ValidationError) Error() string {
	msg := e.message()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.QuestionID == "" {
		return "invalid question: " + msg
	}
	return fmt.Sprintf("invalid question %q: %s", e.QuestionID, msg)
}

// Is matches the sentinel of the same kind.
func (e *ValidationError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

func (e *ValidationError) message() string {
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		return sentinel.Error()
	}
	return string(e.Kind)
}

// NewMalformedError reports a bank record that could not be decoded.
func NewMalformedError(index int, cause error) *ValidationError {
	return &ValidationError{
		Kind:   KindMalformed,
		Detail: fmt.Sprintf("record %d: %v", index, cause),
	}
}

// Validator checks questions and banks before they reach a session.
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a Validator. A nil logger disables warnings.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// ValidateQuestion fails on the first structural defect of q.
func (v *Validator) ValidateQuestion(q entities.Question) error {
	if q.ID == "" {
		return &ValidationError{Kind: KindMissingID}
	}
	if !q.Kind.Valid() {
		return &ValidationError{Kind: KindInvalidKind, QuestionID: q.ID, Detail: string(q.Kind)}
	}
	if len(q.Options) < 2 {
		return &ValidationError{Kind: KindTooFewOptions, QuestionID: q.ID}
	}

	optionIDs := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if _, dup := optionIDs[o.ID]; dup {
			return &ValidationError{Kind: KindDuplicateOption, QuestionID: q.ID, Detail: o.ID}
		}
		optionIDs[o.ID] = struct{}{}
	}

	if len(q.CorrectIDs) == 0 {
		return &ValidationError{Kind: KindNoCorrect, QuestionID: q.ID}
	}
	for _, id := range q.CorrectIDs {
		if _, ok := optionIDs[id]; !ok {
			return &ValidationError{Kind: KindUnknownCorrect, QuestionID: q.ID, Detail: id}
		}
	}
	if q.Kind == entities.KindSingle && len(q.CorrectIDs) != 1 {
		return &ValidationError{Kind: KindSingleCorrect, QuestionID: q.ID}
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return &ValidationError{Kind: KindEmptyPrompt, QuestionID: q.ID}
	}
	if q.Version == nil {
		return &ValidationError{Kind: KindMissingVersion, QuestionID: q.ID}
	}

	v.warn(q)
	return nil
}

// ValidateBank validates every question and rejects duplicate ids. On
// success it returns questions unchanged.
func (v *Validator) ValidateBank(questions []entities.Question) ([]entities.Question, error) {
	if len(questions) == 0 {
		return nil, &ValidationError{Kind: KindEmptyBank}
	}

	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if err := v.ValidateQuestion(q); err != nil {
			return nil, err
		}
		if _, dup := seen[q.ID]; dup {
			return nil, &ValidationError{Kind: KindDuplicateID, QuestionID: q.ID}
		}
		seen[q.ID] = struct{}{}
	}

	return questions, nil
}

// warn logs soft problems that never reject a question.
func (v *Validator) warn(q entities.Question) {
	if q.Explanation.IsEmpty() {
		v.logger.Warn("question has no question-level explanation",
			zap.String("question_id", q.ID),
		)
	}
	if isTrueFalse(q) && !q.LockOptionOrder {
		v.logger.Warn("true/false question should lock its option order",
			zap.String("question_id", q.ID),
		)
	}
}

func isTrueFalse(q entities.Question) bool {
	if len(q.Options) != 2 {
		return false
	}
	texts := map[string]bool{}
	for _, o := range q.Options {
		texts[strings.ToLower(strings.TrimSpace(o.Text))] = true
	}
	return texts["true"] && texts["false"]
}
