package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/quiz-trainer/internal/config"
	"github.com/aliskhannn/quiz-trainer/internal/delivery/httpapi"
	"github.com/aliskhannn/quiz-trainer/internal/logger"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The API always serves banks from disk.
	bank := repository.NewBankRepository(cfg.Questions.Dir, cfg.Quiz.DefaultLanguage, service.NewValidator(lg), lg)

	router := httpapi.NewRouter(bank, httpapi.Options{
		Languages:       cfg.Quiz.Languages,
		DefaultLanguage: cfg.Quiz.DefaultLanguage,
		CORSOrigins:     cfg.Server.CORSOrigins,
	}, lg)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	janitor := service.NewJanitor(nil, bank, service.JanitorConfig{
		ReloadSchedule: cfg.Questions.ReloadSchedule,
	}, lg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return janitor.Start(gctx) })
	g.Go(func() error {
		lg.Info("question api listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Error("server stopped with error", zap.Error(err))
	}
	lg.Info("server stopped")
}
