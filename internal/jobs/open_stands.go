// Package jobs runs periodic background work on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

type openCounter interface {
	CountOpen(ctx context.Context) (int, error)
}

// OpenStandsRefresher keeps a gauge of currently open stands up to date
type OpenStandsRefresher struct {
	stands openCounter
	gauge  prometheus.Gauge
	logger *slog.Logger
	cron   *cron.Cron
}

func NewOpenStandsRefresher(stands openCounter, gauge prometheus.Gauge, logger *slog.Logger) *OpenStandsRefresher {
	logger = logger.With("component", "open_stands_refresher")
	cl := cronLogger{logger}
	return &OpenStandsRefresher{
		stands: stands,
		gauge:  gauge,
		logger: logger,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// Refresh recomputes the gauge once
func (r *OpenStandsRefresher) Refresh(ctx context.Context) error {
	count, err := r.stands.CountOpen(ctx)
	if err != nil {
		return fmt.Errorf("count open stands: %w", err)
	}
	r.gauge.Set(float64(count))
	r.logger.DebugContext(ctx, "open stands refreshed", "open", count)
	return nil
}

// Start refreshes immediately, then on every tick of schedule (standard cron
// syntax or descriptors such as "@every 1m") until ctx is done.
func (r *OpenStandsRefresher) Start(ctx context.Context, schedule string) error {
	_, err := r.cron.AddFunc(schedule, func() {
		if err := r.Refresh(ctx); err != nil {
			r.logger.ErrorContext(ctx, "open stands refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	if err := r.Refresh(ctx); err != nil {
		r.logger.ErrorContext(ctx, "initial open stands refresh failed", "error", err)
	}
	r.cron.Start()

	go func() {
		<-ctx.Done()
		<-r.cron.Stop().Done()
	}()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish
func (r *OpenStandsRefresher) Stop() {
	<-r.cron.Stop().Done()
}

// cronLogger adapts slog to cron.Logger
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
