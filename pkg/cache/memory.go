package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// Memory is a process-local store. Expired entries are dropped lazily on read.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[V]
	opts    *options
	closed  bool
}

// NewMemory creates an empty in-process store.
func NewMemory[V any](opts ...Option) *Memory[V] {
	return &Memory[V]{
		entries: make(map[string]memoryEntry[V]),
		opts:    newOptions(opts),
	}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V
	key = m.opts.key(key)

	m.mu.RLock()
	e, ok := m.entries[key]
	closed := m.closed
	m.mu.RUnlock()

	if closed {
		return zero, ErrClosed
	}
	if !ok {
		return zero, ErrNotFound
	}
	if !e.expiresAt.IsZero() && !m.opts.now().Before(e.expiresAt) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	e := memoryEntry[V]{value: value}
	if ttl = m.opts.ttl(ttl); ttl > 0 {
		e.expiresAt = m.opts.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.entries[m.opts.key(key)] = e
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.entries, m.opts.key(key))
	return nil
}

// Close drops every entry. Further calls return ErrClosed.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	clear(m.entries)
	return nil
}

var _ Cache[any] = (*Memory[any])(nil)
