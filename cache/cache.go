// Package cache memoizes concept-style search results by key.
//
// Values are opaque byte payloads; the compute package stores CBOR-encoded
// results. Backends must be safe for concurrent use.
package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/phi/am"
	"github.com/teranos/phi/errors"
)

// Cache stores encoded search results.
type Cache interface {
	// Get returns the payload stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores payload under key, replacing any previous value.
	Put(ctx context.Context, key string, payload []byte) error
	// Flush removes every entry. Flushing an empty cache is a no-op.
	Flush(ctx context.Context) error
}

// Stats counts cache traffic.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Memory is an in-process Cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
	hits    int64
	misses  int64
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.entries[key]
	if !ok {
		m.misses++
		return nil, false, nil
	}
	m.hits++
	return clone(payload), true, nil
}

// Put implements Cache.
func (m *Memory) Put(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = clone(payload)
	return nil
}

// Flush implements Cache.
func (m *Memory) Flush(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}

// Stats returns a snapshot of the cache counters.
func (m *Memory) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{Hits: m.hits, Misses: m.misses, Entries: len(m.entries)}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

// Open builds the cache selected by cfg. It returns a nil Cache when caching
// is disabled. The returned close function is never nil.
func Open(cfg am.CacheConfig, log *zap.SugaredLogger) (Cache, func() error, error) {
	noop := func() error { return nil }
	if !cfg.Enabled {
		return nil, noop, nil
	}
	switch cfg.Backend {
	case am.CacheBackendMemory, "":
		return NewMemory(), noop, nil
	case am.CacheBackendSQLite:
		path := cfg.Path
		if path == "" {
			path = am.DefaultCachePath
		}
		c, err := OpenSQLite(path, log)
		if err != nil {
			return nil, noop, err
		}
		return c, c.Close, nil
	default:
		return nil, noop, errors.NewInvalidRequestError("unknown cache backend %q", cfg.Backend)
	}
}
