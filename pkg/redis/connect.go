package redis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures the client created by Open.
type Option func(*options)

type options struct {
	poolSize      int
	timeout       time.Duration
	retryAttempts int
	retryInterval time.Duration
	logger        *slog.Logger
}

func defaultOptions() *options {
	return &options{
		poolSize:      10,
		timeout:       3 * time.Second,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		logger:        slog.New(slog.DiscardHandler),
	}
}

// WithPoolSize caps the number of pooled connections. Default: 10.
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithTimeout sets dial, read and write timeouts. Default: 3s.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRetry sets how many times Open pings before giving up, and the linear
// backoff step between attempts. Default: 3 attempts, 2s.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithLogger reports failed connection attempts.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Open parses a redis:// or rediss:// URL and returns a client that answered PING.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrMissingURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrInvalidURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	ro.PoolSize = o.poolSize
	ro.DialTimeout = o.timeout
	ro.ReadTimeout = o.timeout
	ro.WriteTimeout = o.timeout

	return connect(ctx, ro, o)
}

func connect(ctx context.Context, ro *redis.Options, o *options) (redis.UniversalClient, error) {
	var lastErr error
	for attempt := range max(o.retryAttempts, 1) {
		client := redis.NewClient(ro)
		lastErr = client.Ping(ctx).Err()
		if lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		o.logger.WarnContext(ctx, "redis ping failed",
			slog.Int("attempt", attempt+1),
			slog.String("addr", ro.Addr),
			slog.Any("error", lastErr),
		)

		if err := wait(ctx, time.Duration(attempt+1)*o.retryInterval); err != nil {
			return nil, errors.Join(ErrUnreachable, err)
		}
	}
	return nil, errors.Join(ErrUnreachable, lastErr)
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
