package senderconfig

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailgate/pkg/cache"
	"github.com/dmitrymomot/mailgate/pkg/logger"
)

const (
	DefaultFromName     = "Default App Name"
	DefaultTTL          = 5 * time.Minute
	DefaultFetchTimeout = 3 * time.Second

	sharedKey = "sender-config"
)

// Option configures a Cache.
type Option func(*Cache)

// WithFallback sets the name served while no snapshot is available.
func WithFallback(name string) Option {
	return func(c *Cache) {
		if name != "" {
			c.fallback = name
		}
	}
}

// WithTTL sets how long a snapshot is considered fresh.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithFetchTimeout bounds a single source fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxStale caps the age of a snapshot served after a failed fetch.
// Zero keeps serving the last snapshot indefinitely.
func WithMaxStale(d time.Duration) Option {
	return func(c *Cache) {
		c.maxStale = max(d, 0)
	}
}

// WithSharedStore makes replicas share fetched snapshots.
func WithSharedStore(store cache.Cache[Snapshot]) Option {
	return func(c *Cache) {
		c.store = store
	}
}

// WithLogger sets the logger for fetch failures and refreshes.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

func defaults(source Source) *Cache {
	return &Cache{
		source:   source,
		fallback: DefaultFromName,
		ttl:      DefaultTTL,
		timeout:  DefaultFetchTimeout,
		logger:   logger.NewNope(),
		now:      time.Now,
	}
}
