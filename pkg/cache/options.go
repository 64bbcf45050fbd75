package cache

import "time"

const defaultTTL = 5 * time.Minute

// Option configures a Memory or Redis store.
type Option func(*options)

type options struct {
	prefix     string
	defaultTTL time.Duration
	now        func() time.Time
}

func newOptions(opts []Option) *options {
	o := &options{
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDefaultTTL sets the expiration used when Set receives a zero TTL.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		if d != 0 {
			o.defaultTTL = d
		}
	}
}

// WithPrefix namespaces keys as "{prefix}:{key}".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithClock overrides the time source of the Memory store.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func (o *options) key(key string) string {
	if o.prefix == "" {
		return key
	}
	return o.prefix + ":" + key
}

func (o *options) ttl(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return o.defaultTTL
	}
	return ttl
}
