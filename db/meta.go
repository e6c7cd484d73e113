package db

import (
	"context"
	"database/sql"

	"github.com/teranos/phi/errors"
)

// MetaCacheFormat holds the payload format version the cache rows were
// written with.
const MetaCacheFormat = "bigmip_format"

const (
	selectMetaSQL = `SELECT value FROM cache_meta WHERE key = ?`
	upsertMetaSQL = `INSERT INTO cache_meta (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
)

// GetMeta reads a cache_meta value. ok is false when the key is unset.
func GetMeta(ctx context.Context, db *sql.DB, key string) (value string, ok bool, err error) {
	err = db.QueryRowContext(ctx, selectMetaSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "read cache meta %s", key)
	}
	return value, true, nil
}

// SetMeta stores a cache_meta value, replacing any previous one.
func SetMeta(ctx context.Context, db *sql.DB, key, value string) error {
	if _, err := db.ExecContext(ctx, upsertMetaSQL, key, value); err != nil {
		if IsDatabaseClosed(err) {
			return errors.Wrapf(ErrDatabaseClosed, "write cache meta %s", key)
		}
		return errors.Wrapf(err, "write cache meta %s", key)
	}
	return nil
}
