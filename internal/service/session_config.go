package service

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

type sessionOptions struct {
	logger          *zap.Logger
	validator       BankValidator
	prefs           PreferencesStore
	userID          int64
	newRandom       func(seed *uint32) RandomSource
	languages       []string
	defaultLanguage string
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

// WithLogger sets the logger used for config warnings and load failures.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(o *sessionOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithValidator replaces the bank validator.
func WithValidator(v BankValidator) SessionOption {
	return func(o *sessionOptions) {
		if v != nil {
			o.validator = v
		}
	}
}

// WithPreferences makes Start persist the resolved configuration for userID.
func WithPreferences(store PreferencesStore, userID int64) SessionOption {
	return func(o *sessionOptions) {
		o.prefs = store
		o.userID = userID
	}
}

// WithRandom overrides how the generator is built for a session. seed is nil
// for unseeded sessions.
func WithRandom(fn func(seed *uint32) RandomSource) SessionOption {
	return func(o *sessionOptions) {
		if fn != nil {
			o.newRandom = fn
		}
	}
}

// WithLanguages sets the supported language codes and the fallback.
func WithLanguages(supported []string, fallback string) SessionOption {
	return func(o *sessionOptions) {
		if len(supported) > 0 {
			o.languages = append([]string(nil), supported...)
		}
		if fallback != "" {
			o.defaultLanguage = fallback
		}
	}
}

func defaultSessionOptions() sessionOptions {
	logger := zap.NewNop()
	return sessionOptions{
		logger:          logger,
		validator:       NewValidator(logger),
		newRandom:       defaultRandom,
		languages:       []string{entities.DefaultLanguage},
		defaultLanguage: entities.DefaultLanguage,
	}
}

func defaultRandom(seed *uint32) RandomSource {
	if seed == nil {
		return NewUnseededSource()
	}
	return NewMulberry32(*seed)
}

// ResolveConfig normalizes a raw request. Every field falls back to its
// default on bad input; the returned warnings describe each fallback.
func ResolveConfig(req entities.SessionRequest, languages []string, defaultLanguage string) (entities.SessionConfig, []string) {
	var (
		cfg      entities.SessionConfig
		warnings []string
	)

	lang, ok := entities.NormalizeLanguage(req.Language, languages, defaultLanguage)
	if !ok {
		warnings = append(warnings, "unsupported language "+strconv.Quote(req.Language)+", using "+lang)
	}
	cfg.Language = lang

	filter := entities.ParseFilter(req.Filter)
	if len(filter.Unknown) > 0 {
		warnings = append(warnings, "unknown categories dropped: "+strings.Join(filter.Unknown, ", "))
	}
	cfg.Filter = filter.String()
	cfg.Categories = filter.Categories

	cfg.MaxQuestions = entities.DefaultMaxQuestions
	if strings.TrimSpace(req.Max) != "" {
		n, ok := entities.ParseMax(req.Max)
		if !ok {
			warnings = append(warnings, "unsupported max "+strconv.Quote(req.Max)+", using "+strconv.Itoa(n))
		}
		cfg.MaxQuestions = n
	}

	seed, seeded, seedWarning := ParseSeed(req.Seed)
	if seedWarning != "" {
		warnings = append(warnings, seedWarning)
	}
	if seeded {
		cfg.Seed = &seed
		cfg.SeedRaw = strings.TrimSpace(req.Seed)
	}

	cfg.Mode = entities.DefaultMode
	if strings.TrimSpace(req.Mode) != "" {
		mode, ok := entities.NormalizeMode(req.Mode)
		if !ok {
			warnings = append(warnings, "unknown mode "+strconv.Quote(req.Mode)+", using "+string(mode))
		}
		cfg.Mode = mode
	}

	return cfg, warnings
}

func (s *Session) resolveConfig(req entities.SessionRequest) entities.SessionConfig {
	cfg, warnings := ResolveConfig(req, s.opts.languages, s.opts.defaultLanguage)
	for _, w := range warnings {
		s.opts.logger.Warn("session config normalized", zap.String("reason", w))
	}
	return cfg
}
