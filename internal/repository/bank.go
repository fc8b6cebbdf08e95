package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// ErrMalformedRecord marks a bank record that is not a question object.
var ErrMalformedRecord = errors.New("malformed question record")

// RecordError reports the position of an undecodable record in a bank file.
type RecordError struct {
	Path  string
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: record %d: %v", e.Path, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// BankValidator checks the questions of one bank file.
type BankValidator interface {
	ValidateBank(questions []entities.Question) ([]entities.Question, error)
}

var bankExtensions = []string{".json", ".yaml", ".yml"}

// BankRepository reads question banks laid out as
// <root>/<language>/<category>.{json,yaml,yml}.
type BankRepository struct {
	root            string
	defaultLanguage string
	validator       BankValidator
	logger          *zap.Logger

	mu    sync.RWMutex
	cache map[string][]entities.Question
}

// NewBankRepository creates a repository rooted at root. validator may be nil.
func NewBankRepository(root, defaultLanguage string, validator BankValidator, logger *zap.Logger) *BankRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultLanguage == "" {
		defaultLanguage = entities.DefaultLanguage
	}
	return &BankRepository{
		root:            root,
		defaultLanguage: defaultLanguage,
		validator:       validator,
		logger:          logger,
		cache:           make(map[string][]entities.Question),
	}
}

// FetchQuestions returns the questions of every category selected by
// filter, in category order. A category without a bank file contributes
// nothing.
func (r *BankRepository) FetchQuestions(ctx context.Context, language, filter string) ([]entities.Question, error) {
	parsed := entities.ParseFilter(filter)
	if len(parsed.Unknown) > 0 {
		r.logger.Warn("unknown categories in filter",
			zap.Strings("unknown", parsed.Unknown),
		)
	}

	lang := r.resolveLanguage(language)

	var questions []entities.Question
	for _, c := range parsed.Categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunk, err := r.loadCategory(lang, c)
		if err != nil {
			return nil, err
		}
		questions = append(questions, chunk...)
	}

	return questions, nil
}

// Invalidate drops every cached bank file.
func (r *BankRepository) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string][]entities.Question)
}

func (r *BankRepository) resolveLanguage(language string) string {
	if language != "" && isDir(filepath.Join(r.root, language)) {
		return language
	}
	if language != r.defaultLanguage {
		r.logger.Warn("no bank for language, using default",
			zap.String("language", language),
			zap.String("default", r.defaultLanguage),
		)
	}
	return r.defaultLanguage
}

func (r *BankRepository) loadCategory(lang string, c entities.Category) ([]entities.Question, error) {
	path, ok := r.findFile(lang, c)
	if !ok {
		r.logger.Warn("no bank file for category",
			zap.String("language", lang),
			zap.String("category", string(c)),
		)
		return nil, nil
	}

	r.mu.RLock()
	cached, hit := r.cache[path]
	r.mu.RUnlock()
	if hit {
		return append([]entities.Question(nil), cached...), nil
	}

	questions, err := readBankFile(path)
	if err != nil {
		return nil, err
	}
	// The file a question lives in decides its category.
	for i := range questions {
		questions[i].Category = c
	}

	if r.validator != nil && len(questions) > 0 {
		if _, err := r.validator.ValidateBank(questions); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	r.mu.Lock()
	r.cache[path] = questions
	r.mu.Unlock()

	return append([]entities.Question(nil), questions...), nil
}

func (r *BankRepository) findFile(lang string, c entities.Category) (string, bool) {
	for _, ext := range bankExtensions {
		path := filepath.Join(r.root, lang, string(c)+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func readBankFile(path string) ([]entities.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".json":
		return DecodeJSONBank(path, data)
	default:
		return DecodeYAMLBank(path, data)
	}
}

// DecodeJSONBank decodes a JSON array of questions. Records that are not
// objects or do not match the question shape yield a *RecordError.
func DecodeJSONBank(path string, data []byte) ([]entities.Question, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: decode bank: %w", path, err)
	}

	questions := make([]entities.Question, 0, len(records))
	for i, raw := range records {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, &RecordError{Path: path, Index: i, Err: ErrMalformedRecord}
		}

		var q entities.Question
		if err := json.Unmarshal(trimmed, &q); err != nil {
			return nil, &RecordError{Path: path, Index: i, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// DecodeYAMLBank decodes a YAML sequence of questions.
func DecodeYAMLBank(path string, data []byte) ([]entities.Question, error) {
	var records []yaml.Node
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: decode bank: %w", path, err)
	}

	questions := make([]entities.Question, 0, len(records))
	for i := range records {
		node := &records[i]
		if node.Kind != yaml.MappingNode {
			return nil, &RecordError{Path: path, Index: i, Err: ErrMalformedRecord}
		}

		var q entities.Question
		if err := node.Decode(&q); err != nil {
			return nil, &RecordError{Path: path, Index: i, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}
		questions = append(questions, q)
	}

	return questions, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
