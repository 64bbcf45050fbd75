package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores values in Redis so that several service replicas can share them.
// The client lifecycle belongs to the caller (see pkg/redis).
type Redis[V any] struct {
	client    redis.UniversalClient
	marshaler Marshaler[V]
	opts      *options
}

// NewRedis wraps client. A nil Marshaler selects JSON.
//
//	store := cache.NewRedis[senderconfig.Snapshot](client, nil,
//	    cache.WithPrefix("mailgate:sender"),
//	)
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...Option) *Redis[V] {
	if m == nil {
		m = JSON[V]{}
	}
	return &Redis[V]{
		client:    client,
		marshaler: m,
		opts:      newOptions(opts),
	}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.opts.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	return r.marshaler.Unmarshal(data)
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}
	// Redis treats 0 as "no expiration".
	return r.client.Set(ctx, r.opts.key(key), data, max(r.opts.ttl(ttl), 0)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.opts.key(key)).Err()
}

// Close is a no-op; shut the client down with redis.Shutdown.
func (r *Redis[V]) Close() error { return nil }

var _ Cache[any] = (*Redis[any])(nil)
