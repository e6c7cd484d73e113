package cache

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/logger"
)

// Loader fronts a Cache so that concurrent misses on one key run the
// computation once. A lost race between two keys only costs a recompute.
type Loader struct {
	cache  Cache
	group  singleflight.Group
	logger *zap.SugaredLogger
}

// NewLoader wraps c. A nil log falls back to the "cache" component logger.
func NewLoader(c Cache, log *zap.SugaredLogger) *Loader {
	if log == nil {
		log = logger.ComponentLogger("cache")
	}
	return &Loader{cache: c, logger: log}
}

// Cache returns the wrapped cache.
func (l *Loader) Cache() Cache { return l.cache }

// Load returns the payload under key, computing and storing it on a miss.
// hit reports whether the payload came from the cache, including when it
// was produced by a concurrent caller for the same key.
func (l *Loader) Load(ctx context.Context, key string, compute func(context.Context) ([]byte, error)) (payload []byte, hit bool, err error) {
	if payload, ok, err := l.cache.Get(ctx, key); err != nil {
		return nil, false, errors.Wrapf(err, "cache get %s", key)
	} else if ok {
		l.logger.Debugw("Cache hit", logger.FieldCacheKey, key, logger.FieldHit, true)
		return payload, true, nil
	}

	v, err, shared := l.group.Do(key, func() (any, error) {
		payload, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if err := l.cache.Put(ctx, key, payload); err != nil {
			// The result is still valid; the next caller recomputes
			l.logger.Warnw("Cache put failed", logger.FieldCacheKey, key, logger.FieldError, err)
		}
		return payload, nil
	})
	if err != nil {
		return nil, false, err
	}

	l.logger.Debugw("Cache miss", logger.FieldCacheKey, key, logger.FieldHit, shared)
	return clone(v.([]byte)), shared, nil
}

// Flush empties the wrapped cache.
func (l *Loader) Flush(ctx context.Context) error {
	if err := l.cache.Flush(ctx); err != nil {
		return errors.Wrap(err, "cache flush")
	}
	return nil
}
