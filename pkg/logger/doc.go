// Package logger provides structured logging with context extraction and Sentry integration.
//
// It wraps log/slog with two additions: context extractors that inject
// request-scoped attributes on every call, and optional Sentry reporting that
// degrades to stdout-only logging when no DSN is configured.
//
// # Basic Usage
//
//	log := logger.New(logger.ParseLevel(os.Getenv("LOG_LEVEL")),
//		middlewares.RequestIDExtractor(),
//	)
//
//	log.InfoContext(ctx, "bulk email completed", slog.Int("total", 3))
//	// {"level":"INFO","msg":"bulk email completed","total":3,"request_id":"..."}
//
// # Sentry Integration
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		Level:       slog.LevelInfo,
//		MinLevel:    slog.LevelWarn,
//	}, middlewares.RequestIDExtractor())
//	defer logger.Flush(ctx)
//
// Errors create Sentry issues; records at or above MinLevel are kept as Sentry logs.
// An empty DSN, or a failed Sentry init, keeps the stdout handler only.
//
// # Context Extractors
//
// A ContextExtractor returns an attribute and whether it should be added:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run per log call so values such as request IDs are always current.
// LogHandlerDecorator can wrap any slog.Handler to add the same behavior.
package logger
