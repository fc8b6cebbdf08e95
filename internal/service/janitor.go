package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleSweeper drops sessions that were last used before a cutoff.
type IdleSweeper interface {
	Sweep(before time.Time) int
}

// CacheInvalidator discards cached question banks.
type CacheInvalidator interface {
	Invalidate()
}

// JanitorConfig holds the cron schedules. An empty ReloadSchedule disables
// bank reloads.
type JanitorConfig struct {
	IdleTTL        time.Duration
	SweepSchedule  string
	ReloadSchedule string
}

// Janitor runs periodic housekeeping for long-lived hosts.
type Janitor struct {
	sweeper IdleSweeper
	cache   CacheInvalidator
	cfg     JanitorConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewJanitor creates a janitor. cache may be nil.
func NewJanitor(sweeper IdleSweeper, cache CacheInvalidator, cfg JanitorConfig, logger *zap.Logger) *Janitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Janitor{
		sweeper: sweeper,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Start schedules the jobs and blocks until ctx is done.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if err := j.register(c); err != nil {
		return err
	}

	c.Start()
	j.logger.Info("janitor started",
		zap.String("sweep_schedule", j.cfg.SweepSchedule),
		zap.String("reload_schedule", j.cfg.ReloadSchedule),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("janitor stopped")
	return nil
}

func (j *Janitor) register(c *cron.Cron) error {
	if j.sweeper != nil && j.cfg.SweepSchedule != "" {
		if _, err := c.AddFunc(j.cfg.SweepSchedule, j.SweepIdle); err != nil {
			return fmt.Errorf("add sweep job: %w", err)
		}
	}

	if j.cache != nil && j.cfg.ReloadSchedule != "" {
		if _, err := c.AddFunc(j.cfg.ReloadSchedule, j.ReloadBank); err != nil {
			return fmt.Errorf("add reload job: %w", err)
		}
	}

	return nil
}

// SweepIdle removes sessions idle for longer than the configured TTL.
func (j *Janitor) SweepIdle() {
	if j.sweeper == nil || j.cfg.IdleTTL <= 0 {
		return
	}

	cutoff := j.now().Add(-j.cfg.IdleTTL)
	removed := j.sweeper.Sweep(cutoff)
	if removed > 0 {
		j.logger.Info("idle sessions removed", zap.Int("count", removed))
	}
}

// ReloadBank drops the bank cache so the next session re-reads the files.
func (j *Janitor) ReloadBank() {
	if j.cache == nil {
		return
	}
	j.cache.Invalidate()
	j.logger.Info("question bank cache invalidated")
}
