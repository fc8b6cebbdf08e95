package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/config"
)

// New builds a production logger for env=production and a development
// logger otherwise.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
