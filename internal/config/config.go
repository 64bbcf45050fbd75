// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/mailgate/pkg/logger"
	"github.com/dmitrymomot/mailgate/pkg/mailer/resend"
	"github.com/dmitrymomot/mailgate/pkg/mailer/ses"
	"github.com/dmitrymomot/mailgate/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailgate/pkg/senderconfig"
)

// Transport names accepted by MAIL_TRANSPORT.
const (
	TransportSMTP   = "smtp"
	TransportResend = "resend"
	TransportSES    = "ses"
)

var (
	ErrNoAPIKeys        = errors.New("config: API_KEYS must list at least one key")
	ErrNoSenderAddress  = errors.New("config: SMTP_FROM or SMTP_USER must be set")
	ErrUnknownTransport = errors.New("config: unknown MAIL_TRANSPORT")
)

// Config is the full service configuration.
type Config struct {
	Address  string   `env:"ADDRESS" envDefault:":3000"`
	LogLevel string   `env:"LOG_LEVEL" envDefault:"info"`
	APIKeys  []string `env:"API_KEYS" envSeparator:","`
	// RoutePrefix mounts the email routes under a path, e.g. "/api/email".
	RoutePrefix string `env:"ROUTE_PREFIX"`

	ConfigAPIURL string `env:"CONFIG_API_URL"`
	ConfigAPIKey string `env:"CONFIG_API_KEY"`
	// Millisecond values, matching the variables existing deployments already set.
	ConfigCacheTTL     int64         `env:"CONFIG_CACHE_TTL" envDefault:"300000"`
	ConfigFetchTimeout int64         `env:"CONFIG_FETCH_TIMEOUT" envDefault:"3000"`
	ConfigMaxStale     time.Duration `env:"CONFIG_MAX_STALE" envDefault:"0s"`
	// ConfigRefreshSchedule is a cron spec; empty disables background refresh.
	ConfigRefreshSchedule string `env:"CONFIG_REFRESH_SCHEDULE"`
	FromName              string `env:"FROM_NAME" envDefault:"Default App Name"`

	Transport   string `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	SenderEmail string `env:"SMTP_FROM"`
	SMTP        smtp.Config
	Resend      resend.Config
	SES         ses.Config

	BulkConcurrency int  `env:"BULK_CONCURRENCY" envDefault:"1"`
	SanitizeHTML    bool `env:"SANITIZE_HTML" envDefault:"false"`

	RedisURL string `env:"REDIS_URL"`
	Sentry   logger.SentryConfig

	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	TrustProxy      bool          `env:"TRUST_PROXY" envDefault:"false"`
	// RequestTimeout bounds /send and /status; bulk sends are not bounded.
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads files (".env" when none are given) into the environment
// without overriding variables already set, then parses and validates Config.
// Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	keys := c.APIKeys[:0]
	for _, k := range c.APIKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	c.APIKeys = keys
	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	c.Sentry.Level = c.Level()
	c.Sentry.MinLevel = slog.LevelError
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if len(c.APIKeys) == 0 {
		errs = append(errs, ErrNoAPIKeys)
	}
	switch c.Transport {
	case TransportSMTP, TransportResend, TransportSES:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownTransport, c.Transport))
	}
	if c.SenderAddress() == "" {
		errs = append(errs, ErrNoSenderAddress)
	}
	return errors.Join(errs...)
}

// Level is the parsed LOG_LEVEL.
func (c Config) Level() slog.Level {
	return logger.ParseLevel(c.LogLevel)
}

// SenderAddress is the envelope sender, SMTP_FROM falling back to SMTP_USER.
func (c Config) SenderAddress() string {
	if c.SenderEmail != "" {
		return c.SenderEmail
	}
	return c.SMTP.Username
}

// SenderConfigOptions translates the CONFIG_* variables into cache options.
func (c Config) SenderConfigOptions() []senderconfig.Option {
	return []senderconfig.Option{
		senderconfig.WithFallback(c.FromName),
		senderconfig.WithTTL(time.Duration(c.ConfigCacheTTL) * time.Millisecond),
		senderconfig.WithFetchTimeout(time.Duration(c.ConfigFetchTimeout) * time.Millisecond),
		senderconfig.WithMaxStale(c.ConfigMaxStale),
	}
}
