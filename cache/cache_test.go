package cache

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/phi/am"
	"github.com/teranos/phi/errors"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	// Flushing an empty cache is a no-op
	require.NoError(t, m.Flush(ctx))

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte{1, 2, 3}
	require.NoError(t, m.Put(ctx, "k", payload))
	payload[0] = 9 // stored copy is independent

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)

	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1}, m.Stats())

	require.NoError(t, m.Flush(ctx))
	require.NoError(t, m.Flush(ctx))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestLoader_ComputesOnce(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	l := NewLoader(mem, zaptest.NewLogger(t).Sugar())

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("phi"), nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]byte, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload, _, err := l.Load(ctx, "key", compute)
			assert.NoError(t, err)
			results[i] = payload
		}(i)
	}
	// Let the callers pile up on the in-flight computation
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(callers))
	for _, r := range results {
		assert.Equal(t, []byte("phi"), r)
	}

	// Later loads are plain hits
	before := calls.Load()
	payload, hit, err := l.Load(ctx, "key", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("phi"), payload)
	assert.Equal(t, before, calls.Load())
}

func TestLoader_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	l := NewLoader(NewMemory(), zaptest.NewLogger(t).Sugar())

	boom := errors.New("worker exited")
	_, _, err := l.Load(ctx, "key", func(context.Context) ([]byte, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	payload, hit, err := l.Load(ctx, "key", func(context.Context) ([]byte, error) { return []byte("ok"), nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []byte("ok"), payload)

	require.NoError(t, l.Flush(ctx))
	_, ok, _ := l.Cache().Get(ctx, "key")
	assert.False(t, ok)
}

func TestOpen(t *testing.T) {
	log := zaptest.NewLogger(t).Sugar()

	c, closeFn, err := Open(am.CacheConfig{Enabled: false}, log)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, closeFn())

	c, closeFn, err = Open(am.CacheConfig{Enabled: true, Backend: am.CacheBackendMemory}, log)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "cache.db")
	c, closeFn, err = Open(am.CacheConfig{Enabled: true, Backend: am.CacheBackendSQLite, Path: path}, log)
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, c)
	assert.NoError(t, closeFn())

	_, _, err = Open(am.CacheConfig{Enabled: true, Backend: "redis"}, log)
	assert.True(t, errors.IsInvalidRequestError(err))
}
