package senderconfig

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/mailgate/pkg/cache"
)

// Source fetches the sender display name from the configuration service.
type Source interface {
	FetchFromName(ctx context.Context) (string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (string, error)

func (f SourceFunc) FetchFromName(ctx context.Context) (string, error) { return f(ctx) }

// Cache resolves the sender display name. It serves a fresh snapshot without
// I/O, refetches once the TTL has passed, and falls back to the previous
// snapshot or the configured default when the source is unavailable.
type Cache struct {
	source   Source
	fallback string
	ttl      time.Duration
	timeout  time.Duration
	maxStale time.Duration
	store    cache.Cache[Snapshot]
	logger   *slog.Logger
	now      func() time.Time

	snap  atomic.Pointer[Snapshot]
	group singleflight.Group
}

// New creates a Cache. A nil source makes Resolve always return the fallback.
func New(source Source, opts ...Option) *Cache {
	c := defaults(source)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the sender display name. It never fails.
// Concurrent callers that miss the cache share one fetch.
func (c *Cache) Resolve(ctx context.Context) string {
	if s := c.snap.Load(); s != nil && c.fresh(s) {
		return s.FromName
	}

	name, _, _ := c.group.Do(sharedKey, func() (any, error) {
		if s := c.snap.Load(); s != nil && c.fresh(s) {
			return s.FromName, nil
		}
		if s, ok := c.adoptShared(ctx); ok {
			return s.FromName, nil
		}
		s, err := c.fetch(ctx)
		if err != nil {
			return c.fallbackName(ctx, err), nil
		}
		return s.FromName, nil
	})
	return name.(string)
}

// Refresh fetches from the source unconditionally. The snapshot is replaced
// only when the fetch succeeds.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err := c.fetch(ctx)
	return err
}

// State reports what Resolve would serve right now without fetching.
func (c *Cache) State() State {
	s := c.snap.Load()
	switch {
	case s == nil:
		return StateUnset
	case c.fresh(s):
		return StateFresh
	case c.servable(s):
		return StateStale
	default:
		return StateUnset
	}
}

// Snapshot returns the current snapshot, if any.
func (c *Cache) Snapshot() (Snapshot, bool) {
	if s := c.snap.Load(); s != nil {
		return *s, true
	}
	return Snapshot{}, false
}

// Healthcheck fails only when no snapshot can be served and the source is
// unreachable.
func (c *Cache) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if c.State() != StateUnset {
			return nil
		}
		return c.Refresh(ctx)
	}
}

func (c *Cache) fresh(s *Snapshot) bool {
	return s.Age(c.now()) < c.ttl
}

func (c *Cache) servable(s *Snapshot) bool {
	return c.maxStale == 0 || s.Age(c.now()) <= c.maxStale
}

func (c *Cache) fetch(ctx context.Context) (*Snapshot, error) {
	if c.source == nil {
		return nil, ErrNoSource
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	name, err := c.source.FetchFromName(ctx)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyFromName
	}

	s := &Snapshot{FromName: name, FetchedAt: c.now()}
	c.snap.Store(s)

	if c.store != nil {
		if err := c.store.Set(ctx, sharedKey, *s, c.ttl); err != nil {
			c.logger.WarnContext(ctx, "failed to share sender config snapshot", slog.Any("error", err))
		}
	}

	c.logger.DebugContext(ctx, "sender config refreshed", slog.String("from_name", name))
	return s, nil
}

func (c *Cache) adoptShared(ctx context.Context) (*Snapshot, bool) {
	if c.store == nil {
		return nil, false
	}

	s, err := c.store.Get(ctx, sharedKey)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			c.logger.WarnContext(ctx, "failed to read shared sender config snapshot", slog.Any("error", err))
		}
		return nil, false
	}
	if s.FromName == "" || !c.fresh(&s) {
		return nil, false
	}

	// Keep a newer local snapshot if another goroutine stored one meanwhile.
	if cur := c.snap.Load(); cur != nil && cur.FetchedAt.After(s.FetchedAt) {
		return cur, true
	}
	c.snap.Store(&s)
	return &s, true
}

func (c *Cache) fallbackName(ctx context.Context, err error) string {
	if s := c.snap.Load(); s != nil && c.servable(s) {
		c.logger.ErrorContext(ctx, "failed to fetch sender config, serving stale snapshot",
			slog.Any("error", err),
			slog.Duration("age", s.Age(c.now())),
		)
		return s.FromName
	}

	if errors.Is(err, ErrNoSource) {
		return c.fallback
	}
	c.logger.ErrorContext(ctx, "failed to fetch sender config, serving default",
		slog.Any("error", err),
		slog.String("from_name", c.fallback),
	)
	return c.fallback
}
