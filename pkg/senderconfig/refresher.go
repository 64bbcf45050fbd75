package senderconfig

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher refreshes a Cache on a cron schedule so requests rarely wait
// for the source.
type Refresher struct {
	cron   *cron.Cron
	cache  *Cache
	logger *slog.Logger
}

// NewRefresher validates schedule (standard five-field cron syntax or
// descriptors such as "@every 4m").
func NewRefresher(c *Cache, schedule string, l *slog.Logger) (*Refresher, error) {
	if l == nil {
		l = c.logger
	}
	r := &Refresher{
		cache:  c,
		logger: l,
	}
	r.cron = cron.New(cron.WithChain(
		cron.Recover(cronLogger{l}),
		cron.SkipIfStillRunning(cronLogger{l}),
	))
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, err
	}
	return r, nil
}

// Start warms the cache and starts the schedule. A failed warm-up is logged,
// not returned.
func (r *Refresher) Start(ctx context.Context) error {
	if err := r.cache.Refresh(ctx); err != nil {
		r.logger.WarnContext(ctx, "initial sender config refresh failed", slog.Any("error", err))
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running refresh or ctx.
func (r *Refresher) Stop(ctx context.Context) error {
	select {
	case <-r.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Refresher) run() {
	ctx := context.Background()
	if err := r.cache.Refresh(ctx); err != nil {
		r.logger.ErrorContext(ctx, "scheduled sender config refresh failed",
			slog.Any("error", err),
			slog.String("state", r.cache.State().String()),
		)
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug("cron: "+msg, kv...)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error("cron: "+msg, append(kv, slog.Any("error", err))...)
}
