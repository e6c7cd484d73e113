package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpenWithMigrations(t *testing.T) {
	t.Run("creates the cache schema", func(t *testing.T) {
		db, err := OpenWithMigrations(filepath.Join(t.TempDir(), "test.db"), zaptest.NewLogger(t).Sugar())
		require.NoError(t, err)
		defer db.Close()

		for _, table := range []string{"schema_migrations", "bigmip_cache", "cache_meta"} {
			var n int
			err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&n)
			require.NoError(t, err)
			assert.Equal(t, 1, n, table)
		}

		var applied int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
		assert.Equal(t, 3, applied)

		version, err := SchemaVersion(context.Background(), db)
		require.NoError(t, err)
		assert.Equal(t, "002", version)
	})

	t.Run("open errors carry stack traces", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores directory permissions")
		}
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "test.db")

		first, err := Open(dbPath, nil)
		require.NoError(t, err)
		first.Close()

		require.NoError(t, os.Chmod(tmpDir, 0555))
		defer os.Chmod(tmpDir, 0755)

		db, err := OpenWithMigrations(filepath.Join(tmpDir, "other.db"), nil)
		require.Error(t, err)
		assert.Nil(t, db)

		detailed := fmt.Sprintf("%+v", err)
		assert.Contains(t, detailed, "connection.go")
	})
}

func TestMigrate(t *testing.T) {
	t.Run("is idempotent", func(t *testing.T) {
		db, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
		require.NoError(t, err)
		defer db.Close()

		version, err := SchemaVersion(context.Background(), db)
		require.NoError(t, err)
		assert.Empty(t, version, "fresh database has no schema")

		require.NoError(t, Migrate(db, nil))
		require.NoError(t, Migrate(db, zaptest.NewLogger(t).Sugar()), "running migrations multiple times should be safe")

		var applied int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
		assert.Equal(t, 3, applied)
	})

	t.Run("resumes a partially migrated database", func(t *testing.T) {
		db, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
		require.NoError(t, err)
		defer db.Close()

		all, err := Migrations()
		require.NoError(t, err)
		for _, m := range all[:2] {
			require.NoError(t, apply(context.Background(), db, m))
		}
		version, err := SchemaVersion(context.Background(), db)
		require.NoError(t, err)
		assert.Equal(t, "001", version)

		require.NoError(t, Migrate(db, nil))
		version, err = SchemaVersion(context.Background(), db)
		require.NoError(t, err)
		assert.Equal(t, "002", version)
	})

	t.Run("closed database fails", func(t *testing.T) {
		db, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
		require.NoError(t, err)
		db.Close()

		assert.Error(t, Migrate(db, nil))
	})
}

func TestMigrations(t *testing.T) {
	all, err := Migrations()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, Migration{Version: "000", File: "000_create_schema_migrations.sql"}, all[0])
	assert.Equal(t, "001", all[1].Version)
	assert.Equal(t, "002_create_cache_meta.sql", all[2].File)
}

func TestMeta(t *testing.T) {
	ctx := context.Background()
	db, err := OpenWithMigrations(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)

	_, ok, err := GetMeta(ctx, db, MetaCacheFormat)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetMeta(ctx, db, MetaCacheFormat, "1.0.0"))
	require.NoError(t, SetMeta(ctx, db, MetaCacheFormat, "1.1.0"))
	value, ok, err := GetMeta(ctx, db, MetaCacheFormat)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1.1.0", value)

	db.Close()
	err = SetMeta(ctx, db, MetaCacheFormat, "1.2.0")
	require.Error(t, err)
	assert.True(t, IsDatabaseClosed(err))
}
