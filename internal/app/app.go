// Package app wires configuration into the question source and preference
// store shared by the binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/config"
	"github.com/aliskhannn/quiz-trainer/internal/httpsource"
	"github.com/aliskhannn/quiz-trainer/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/quiz-trainer/internal/infra/postgres/repository"
	"github.com/aliskhannn/quiz-trainer/internal/infra/sqlite"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

// QuestionSource is a question source with an optional cache to invalidate.
type QuestionSource struct {
	service.QuestionSource
	Cache service.CacheInvalidator // nil for sources without a cache
}

// NewQuestionSource builds the source selected by cfg.Questions.Source.
func NewQuestionSource(cfg *config.Config, validator *service.Validator, logger *zap.Logger) QuestionSource {
	if cfg.Questions.Source == config.SourceHTTP {
		logger.Info("using http question source", zap.String("url", cfg.Questions.URL))
		return QuestionSource{QuestionSource: httpsource.NewClient(cfg.Questions.URL, cfg.Questions.Timeout)}
	}

	logger.Info("using file question source", zap.String("dir", cfg.Questions.Dir))
	bank := repository.NewBankRepository(cfg.Questions.Dir, cfg.Quiz.DefaultLanguage, validator, logger)
	return QuestionSource{QuestionSource: bank, Cache: bank}
}

// OpenPreferences opens the store selected by cfg.DB.Driver. The returned
// close function is never nil when err is nil.
func OpenPreferences(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.PreferencesStore, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, postgres.NewTransactor(pool)); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("using postgres preferences")
		return pgrepo.NewPreferencesRepository(pool), pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DB.URL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite preferences")
		return sqlite.NewPreferencesRepository(db), func() { _ = db.Close() }, nil

	default:
		logger.Info("using in-memory preferences")
		return repository.NewMemoryPreferences(), func() {}, nil
	}
}
