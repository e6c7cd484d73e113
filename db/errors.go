package db

import (
	"database/sql"
	"strings"

	"github.com/teranos/phi/errors"
)

// ErrDatabaseClosed marks cache work attempted after the database closed,
// e.g. a search finishing its Put while the CLI is shutting down.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err means the cache database is gone:
// ErrDatabaseClosed, sql.ErrConnDone, or the driver's "database is closed"
// message, which database/sql returns unwrapped.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
