package db

import (
	"context"
	"database/sql"
	"embed"
	"path"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/logger"
)

//go:embed sqlite/migrations/*.sql
var migrationFS embed.FS

const migrationDir = "sqlite/migrations"

const (
	migrationTableSQL = `SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations')`
	appliedSQL        = `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)`
	recordSQL         = `INSERT INTO schema_migrations (version) VALUES (?)`
	schemaVersionSQL  = `SELECT COALESCE(MAX(version), '') FROM schema_migrations`
)

var migrationName = regexp.MustCompile(`^(\d{3})_[a-z0-9_]+\.sql$`)

// Migration is one embedded schema file of the cache database.
type Migration struct {
	Version string // three-digit prefix, e.g. "001"
	File    string
}

// Migrations lists the embedded migrations in apply order. Version 000 must
// exist because it creates schema_migrations.
func Migrations() ([]Migration, error) {
	entries, err := migrationFS.ReadDir(migrationDir)
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}

	var out []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		m := migrationName.FindStringSubmatch(entry.Name())
		if m == nil {
			return nil, errors.AssertionFailedf("malformed migration file name %q", entry.Name())
		}
		out = append(out, Migration{Version: m[1], File: entry.Name()})
	}
	slices.SortFunc(out, func(a, b Migration) int { return strings.Compare(a.Version, b.Version) })

	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, errors.AssertionFailedf("duplicate migration version %s: %s and %s",
				out[i].Version, out[i-1].File, out[i].File)
		}
	}
	if len(out) == 0 || out[0].Version != "000" {
		return nil, errors.AssertionFailedf("migration 000 creating schema_migrations is missing")
	}
	return out, nil
}

// SchemaVersion returns the highest applied migration version, or "" when
// the database has never been migrated.
func SchemaVersion(ctx context.Context, db *sql.DB) (string, error) {
	var exists bool
	if err := db.QueryRowContext(ctx, migrationTableSQL).Scan(&exists); err != nil {
		return "", errors.Wrap(err, "check schema_migrations")
	}
	if !exists {
		return "", nil
	}
	var version string
	if err := db.QueryRowContext(ctx, schemaVersionSQL).Scan(&version); err != nil {
		return "", errors.Wrap(err, "read schema version")
	}
	return version, nil
}

// Migrate brings the cache schema up to date. Each migration runs in its own
// transaction together with its schema_migrations row. A nil logger is
// silent.
func Migrate(db *sql.DB, log *zap.SugaredLogger) error {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctx := context.Background()

	all, err := Migrations()
	if err != nil {
		return err
	}
	current, err := SchemaVersion(ctx, db)
	if err != nil {
		return err
	}

	applied := 0
	for _, m := range all {
		done, err := isApplied(ctx, db, current, m)
		if err != nil {
			return err
		}
		if done {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return err
		}
		log.Infow("Applied cache migration",
			logger.FieldMigration, m.File,
			logger.FieldSchemaVersion, m.Version,
		)
		applied++
	}

	version, err := SchemaVersion(ctx, db)
	if err != nil {
		return err
	}
	log.Debugw("Cache schema up to date",
		logger.FieldSchemaVersion, version,
		"applied", applied,
	)
	return nil
}

// isApplied checks schema_migrations; before 000 has run the table does not
// exist and nothing is applied.
func isApplied(ctx context.Context, db *sql.DB, current string, m Migration) (bool, error) {
	if current == "" && m.Version == "000" {
		return false, nil
	}
	var exists bool
	if err := db.QueryRowContext(ctx, appliedSQL, m.Version).Scan(&exists); err != nil {
		return false, errors.Wrapf(err, "check migration %s", m.File)
	}
	return exists, nil
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	body, err := migrationFS.ReadFile(path.Join(migrationDir, m.File))
	if err != nil {
		return errors.Wrapf(err, "read %s", m.File)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "begin tx for %s", m.File)
	}
	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "execute %s", m.File)
	}
	if _, err := tx.ExecContext(ctx, recordSQL, m.Version); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "record %s", m.File)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit %s", m.File)
	}
	return nil
}
