package cache

import (
	"context"
	"database/sql"

	"github.com/Masterminds/semver/v3"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/teranos/phi/db"
	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/logger"
)

// FormatVersion is the payload format written by this build. Rows written by
// a format outside FormatConstraint are treated as misses and overwritten on
// the next Put. The file-level format is recorded in cache_meta so a whole
// stale cache is purged on open.
const (
	FormatVersion    = "1.0.0"
	FormatConstraint = "^1"
)

const (
	selectEntrySQL = `SELECT format, payload FROM bigmip_cache WHERE cache_key = ?`
	upsertEntrySQL = `INSERT INTO bigmip_cache (cache_key, format, payload) VALUES (?, ?, ?)
ON CONFLICT(cache_key) DO UPDATE SET format = excluded.format, payload = excluded.payload, created_at = CURRENT_TIMESTAMP`
	deleteAllSQL  = `DELETE FROM bigmip_cache`
	countEntrySQL = `SELECT COUNT(*) FROM bigmip_cache`
)

// SQLite is a Cache persisted in the bigmip_cache table, with zstd-compressed
// payloads.
type SQLite struct {
	db         *sql.DB
	ownsDB     bool
	constraint *semver.Constraints
	encoder    *zstd.Encoder
	decoder    *zstd.Decoder
	logger     *zap.SugaredLogger
}

// OpenSQLite opens (creating and migrating if needed) the cache file at path.
func OpenSQLite(path string, log *zap.SugaredLogger) (*SQLite, error) {
	sqlDB, err := db.OpenWithMigrations(path, log)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite cache")
	}
	c, err := NewSQLite(sqlDB, log)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	c.ownsDB = true
	if _, err := c.Reconcile(context.Background()); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Reconcile compares the format recorded in cache_meta with FormatConstraint.
// An incompatible file is flushed. Either way the current FormatVersion is
// recorded. It reports whether entries were purged.
func (c *SQLite) Reconcile(ctx context.Context) (purged bool, err error) {
	recorded, ok, err := db.GetMeta(ctx, c.db, db.MetaCacheFormat)
	if err != nil {
		return false, err
	}
	if ok && !c.compatible(recorded) {
		c.logger.Warnw("Purging cache written by an incompatible format",
			"format", recorded, "want", FormatConstraint)
		if err := c.Flush(ctx); err != nil {
			return false, err
		}
		purged = true
	}
	if !ok || recorded != FormatVersion {
		if err := db.SetMeta(ctx, c.db, db.MetaCacheFormat, FormatVersion); err != nil {
			return purged, err
		}
	}
	return purged, nil
}

// NewSQLite uses an already migrated database. The caller keeps ownership of
// sqlDB.
func NewSQLite(sqlDB *sql.DB, log *zap.SugaredLogger) (*SQLite, error) {
	if log == nil {
		log = logger.ComponentLogger("cache")
	}
	constraint, err := semver.NewConstraint(FormatConstraint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid cache format constraint %s", FormatConstraint)
	}
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, errors.Wrap(err, "create zstd encoder")
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, errors.Wrap(err, "create zstd decoder")
	}
	return &SQLite{
		db:         sqlDB,
		constraint: constraint,
		encoder:    encoder,
		decoder:    decoder,
		logger:     log,
	}, nil
}

// Get implements Cache.
func (c *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var format string
	var compressed []byte
	err := c.db.QueryRowContext(ctx, selectEntrySQL, key).Scan(&format, &compressed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "query cache entry %s", key)
	}

	if !c.compatible(format) {
		c.logger.Debugw("Ignoring cache entry with incompatible format",
			logger.FieldCacheKey, key, "format", format, "want", FormatConstraint)
		return nil, false, nil
	}

	payload, err := c.decoder.DecodeAll(compressed, nil)
	if err != nil {
		c.logger.Warnw("Ignoring corrupt cache entry", logger.FieldCacheKey, key, logger.FieldError, err)
		return nil, false, nil
	}
	return payload, true, nil
}

func (c *SQLite) compatible(format string) bool {
	v, err := semver.NewVersion(format)
	if err != nil {
		return false
	}
	return c.constraint.Check(v)
}

// Put implements Cache.
func (c *SQLite) Put(ctx context.Context, key string, payload []byte) error {
	compressed := c.encoder.EncodeAll(payload, nil)
	if _, err := c.db.ExecContext(ctx, upsertEntrySQL, key, FormatVersion, compressed); err != nil {
		if db.IsDatabaseClosed(err) {
			return errors.Wrap(db.ErrDatabaseClosed, "store cache entry")
		}
		return errors.Wrapf(err, "store cache entry %s", key)
	}
	return nil
}

// Flush implements Cache.
func (c *SQLite) Flush(ctx context.Context) error {
	res, err := c.db.ExecContext(ctx, deleteAllSQL)
	if err != nil {
		return errors.Wrap(err, "flush cache")
	}
	if n, err := res.RowsAffected(); err == nil {
		c.logger.Infow("Cache flushed", "entries", n)
	}
	return nil
}

// Len returns the number of stored entries.
func (c *SQLite) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, countEntrySQL).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count cache entries")
	}
	return n, nil
}

// Close releases the codec and, when opened with OpenSQLite, the database.
func (c *SQLite) Close() error {
	c.decoder.Close()
	if err := c.encoder.Close(); err != nil {
		return errors.Wrap(err, "close zstd encoder")
	}
	if c.ownsDB {
		return c.db.Close()
	}
	return nil
}
