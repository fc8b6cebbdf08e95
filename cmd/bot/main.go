package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/quiz-trainer/internal/app"
	"github.com/aliskhannn/quiz-trainer/internal/config"
	"github.com/aliskhannn/quiz-trainer/internal/delivery/telegram"
	"github.com/aliskhannn/quiz-trainer/internal/logger"
	"github.com/aliskhannn/quiz-trainer/internal/service"
	"github.com/aliskhannn/quiz-trainer/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	// Initialize repositories and services.
	validator := service.NewValidator(lg)
	source := app.NewQuestionSource(cfg, validator, lg)

	prefsStore, closePrefs, err := app.OpenPreferences(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open preferences", zap.Error(err))
	}
	defer closePrefs()

	prefsService := service.NewPreferencesService(prefsStore, cfg.Quiz.Languages, cfg.Quiz.DefaultLanguage)

	sessions := storage.NewSessionStorage(func(chatID int64) *service.Session {
		return service.NewSession(source,
			service.WithLogger(lg.With(zap.Int64("chat_id", chatID))),
			service.WithValidator(validator),
			service.WithPreferences(prefsStore, chatID),
			service.WithLanguages(cfg.Quiz.Languages, cfg.Quiz.DefaultLanguage),
		)
	})

	janitor := service.NewJanitor(sessions, source.Cache, service.JanitorConfig{
		IdleTTL:        cfg.Sessions.IdleTTL,
		SweepSchedule:  cfg.Sessions.SweepSchedule,
		ReloadSchedule: cfg.Questions.ReloadSchedule,
	}, lg)

	handler := telegram.NewHandler(bot, lg, sessions, prefsService, cfg.Quiz.Languages)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return janitor.Start(gctx) })
	g.Go(func() error { return handler.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	lg.Info("shutdown signal received")
}
