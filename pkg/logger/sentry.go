package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// flushWait bounds Flush when ctx has no deadline.
const flushWait = 2 * time.Second

// SentryConfig configures NewWithSentry. DSN and Environment come from the
// environment; the levels are set by the caller.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// Level filters what is written to stdout.
	Level slog.Level
	// MinLevel is the lowest level kept as a Sentry log entry.
	// Error records always become Sentry issues.
	MinLevel slog.Level
}

// NewWithSentry logs JSON to stdout and, when DSN is set, to Sentry as well.
// A Sentry init failure is reported on stdout and the logger keeps working
// without it.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level})

	if cfg.DSN != "" {
		sh, err := sentryHandler(cfg)
		if err != nil {
			slog.New(handler).Error("sentry disabled", slog.String("error", err.Error()))
		} else {
			handler = newMultiHandler(handler, sh)
		}
	}

	return slog.New(NewLogHandlerDecorator(handler, extractors...))
}

func sentryHandler(cfg SentryConfig) (slog.Handler, error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   levelsFrom(cfg.MinLevel),
	}.NewSentryHandler(context.Background()), nil
}

// levelsFrom lists the standard levels at or above lowest.
func levelsFrom(lowest slog.Level) []slog.Level {
	var out []slog.Level
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= lowest {
			out = append(out, l)
		}
	}
	return out
}

// Flush waits for queued Sentry events, up to ctx's deadline or flushWait.
// It has the shutdown-hook signature and is a no-op without Sentry.
func Flush(ctx context.Context) error {
	wait := flushWait
	if deadline, ok := ctx.Deadline(); ok {
		wait = max(time.Until(deadline), 0)
	}
	sentry.Flush(wait)
	return nil
}
