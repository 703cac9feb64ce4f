package repositories

import (
	"database/sql"
	"errors"
)

// Sentinel errors shared by all repositories. Services match on these with
// errors.Is; the wrapped driver error stays available for logging.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError wraps unexpected driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when a write violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrFieldNotEditable is returned when a bulk edit names a column outside
	// the whitelist.
	ErrFieldNotEditable = errors.New("field is not bulk-editable")
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, so repository writes
// can run standalone or inside a transaction.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// scanner is satisfied by *sql.Row and *sql.Rows, letting each repository
// share one row-scanning helper between single- and multi-row queries.
type scanner interface {
	Scan(dest ...interface{}) error
}
