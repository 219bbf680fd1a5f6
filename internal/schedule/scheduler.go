// Package schedule triggers the daily crawl at a fixed UTC time.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner pinned to UTC.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a stopped scheduler.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: logger.With("component", "scheduler"),
	}
}

// AddDaily registers job to run every day at hour:minute UTC.
func (s *Scheduler) AddDaily(hour, minute int, job func()) error {
	spec := dailySpec(hour, minute)
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("adding daily job: %w", err)
	}
	s.logger.Info("daily job registered", "hour", hour, "minute", minute)
	return nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Shutdown stops scheduling new runs and waits for an in-flight job to
// finish, bounded by ctx.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.logger.Info("scheduler stopping")
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dailySpec builds the cron expression for a daily hour:minute trigger.
func dailySpec(hour, minute int) string {
	return fmt.Sprintf("%d %d * * *", minute, hour)
}
