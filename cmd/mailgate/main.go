// Command mailgate runs the email gateway HTTP service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/mailgate"
	"github.com/dmitrymomot/mailgate/handlers"
	"github.com/dmitrymomot/mailgate/internal/config"
	"github.com/dmitrymomot/mailgate/middlewares"
	"github.com/dmitrymomot/mailgate/pkg/apikey"
	"github.com/dmitrymomot/mailgate/pkg/cache"
	"github.com/dmitrymomot/mailgate/pkg/logger"
	"github.com/dmitrymomot/mailgate/pkg/mailer"
	"github.com/dmitrymomot/mailgate/pkg/mailer/resend"
	"github.com/dmitrymomot/mailgate/pkg/mailer/ses"
	"github.com/dmitrymomot/mailgate/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailgate/pkg/redis"
	"github.com/dmitrymomot/mailgate/pkg/senderconfig"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Sentry, middlewares.RequestIDExtractor()).With("app", "mailgate")

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server error", "error", err)
		_ = logger.Flush(context.Background())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var (
		startup  []mailgate.RunOption
		shutdown []mailgate.RunOption
		ready    []mailgate.HealthOption
	)

	cacheOpts := append(cfg.SenderConfigOptions(), senderconfig.WithLogger(log))

	if cfg.RedisURL != "" {
		client, err := redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		store := cache.NewRedis[senderconfig.Snapshot](client, cache.JSON[senderconfig.Snapshot]{},
			cache.WithPrefix("mailgate:"))
		cacheOpts = append(cacheOpts, senderconfig.WithSharedStore(store))
		ready = append(ready, mailgate.WithReadinessCheck("redis", redis.Healthcheck(client)))
		shutdown = append(shutdown, mailgate.ShutdownHook(redis.Shutdown(client)))
	}

	source := senderSource(cfg, log)
	names := senderconfig.New(source, cacheOpts...)
	ready = append(ready, mailgate.WithReadinessCheck("sender_config", names.Healthcheck()))

	if cfg.ConfigRefreshSchedule != "" {
		refresher, err := senderconfig.NewRefresher(names, cfg.ConfigRefreshSchedule, log)
		if err != nil {
			return fmt.Errorf("sender config refresh schedule: %w", err)
		}
		startup = append(startup, mailgate.StartupHook(refresher.Start))
		// Stop refreshing before the shared store closes.
		shutdown = append([]mailgate.RunOption{mailgate.ShutdownHook(refresher.Stop)}, shutdown...)
	}

	sender, err := newSender(ctx, cfg)
	if err != nil {
		return err
	}

	dispatcher := mailer.NewDispatcher(sender, names, cfg.SenderAddress(),
		mailer.WithConcurrency(cfg.BulkConcurrency),
		mailer.WithBodyBuilder(mailer.NewBodyBuilder(cfg.SanitizeHTML)),
		mailer.WithLogger(log),
	)

	gate := apikey.NewGate(cfg.APIKeys...)

	appOpts := []mailgate.Option{
		mailgate.WithLogger(log),
		mailgate.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.Recover(),
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.CORSOrigins...)),
		),
		mailgate.WithHandlers(handlers.NewEmail(dispatcher, gate,
			handlers.Status{
				Transport:    cfg.Transport,
				SMTPHost:     cfg.SMTP.Host,
				SMTPPort:     cfg.SMTP.Port,
				SMTPSecure:   cfg.SMTP.Secure,
				SenderConfig: names,
			},
			handlers.WithPrefix(cfg.RoutePrefix),
			handlers.WithTimeout(cfg.RequestTimeout),
		)),
		mailgate.WithHealthChecks(ready...),
	}
	if cfg.TrustProxy {
		appOpts = append(appOpts, mailgate.WithTrustProxy())
	}
	app := mailgate.New(appOpts...)

	runOpts := []mailgate.RunOption{
		mailgate.WithContext(ctx),
		mailgate.ShutdownTimeout(cfg.ShutdownTimeout),
	}
	runOpts = append(runOpts, startup...)
	runOpts = append(runOpts, shutdown...)
	runOpts = append(runOpts, mailgate.ShutdownHook(logger.Flush))

	log.Info("starting server",
		"addr", cfg.Address,
		"transport", cfg.Transport,
		"api_keys", gate.Len(),
		"shared_cache", cfg.RedisURL != "",
	)
	return app.Run(cfg.Address, runOpts...)
}

// senderSource returns the remote config source, or a fixed name when no
// CONFIG_API_URL is set.
func senderSource(cfg config.Config, log *slog.Logger) senderconfig.Source {
	if cfg.ConfigAPIURL == "" {
		log.Info("sender config source not configured, using FROM_NAME", "from_name", cfg.FromName)
		return senderconfig.SourceFunc(func(context.Context) (string, error) {
			return cfg.FromName, nil
		})
	}
	return senderconfig.NewHTTPSource(cfg.ConfigAPIURL, cfg.ConfigAPIKey)
}

func newSender(ctx context.Context, cfg config.Config) (mailer.Sender, error) {
	switch cfg.Transport {
	case config.TransportResend:
		s, err := resend.New(cfg.Resend)
		if err != nil {
			return nil, fmt.Errorf("resend transport: %w", err)
		}
		return s, nil
	case config.TransportSES:
		client, err := ses.NewClient(ctx, cfg.SES)
		if err != nil {
			return nil, fmt.Errorf("ses transport: %w", err)
		}
		return ses.New(client, cfg.SES), nil
	default:
		s, err := smtp.New(cfg.SMTP)
		if err != nil {
			return nil, fmt.Errorf("smtp transport: %w", err)
		}
		return s, nil
	}
}
