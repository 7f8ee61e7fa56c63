// Package sqlite provides the embedded, file-backed stores for the News and
// Video feed workers. Adapted from the project's Postgres repository layer
// (internal/infra/db, internal/infra/adapter/persistence/sqlite), switched
// from pgx/Postgres to modernc.org/sqlite (pure Go, no cgo) with WAL
// journaling, matching the "embedded SQL store" requirement the Postgres
// store could not satisfy.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (creating if necessary) a SQLite database file at path, enables
// WAL journaling, and returns a connection pool sized for a single-writer,
// few-reader embedded workload.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL on %s: %w", path, err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout=60000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout on %s: %w", path, err)
	}
	db.SetMaxOpenConns(4)
	return db, nil
}
