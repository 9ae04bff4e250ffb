package db

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/rotisserie/eris"
)

// Queryer is the subset of database/sql needed by the store operations.
// It is satisfied by both *sql.DB and *sql.Tx, so callers can run a group
// of mutations atomically inside one transaction.
type Queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// InitDB opens the sqlite database at the given path, configures it, and
// applies any pending migrations.
func InitDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open database: %s", dbPath)
	}

	// Single-writer model; the busy timeout covers the reporting reads that
	// may race a transition from another goroutine of the same process.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "failed to set busy timeout")
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "failed to enable foreign keys")
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "failed to ping database")
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "failed to run migrations")
	}

	return db, nil
}
