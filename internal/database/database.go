// Package database sets up/opens the run-history database.
package database

import (
	"database/sql"
	"fmt"

	// Package sqlite3 provides interface to SQLite3 databases.
	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

// Database holds the run-history database instance for clipcomp.
type Database struct {
	DB *sql.DB
}

// InitDB opens (creating if needed) the run-history database at path.
func InitDB(path string) (*Database, error) {
	d := new(Database)

	var err error
	d.DB, err = sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}

	// Durable single-writer settings: one run at a time owns this file.
	if _, err := d.DB.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := d.DB.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}

	if err := d.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Close closes the underlying database handle.
func (d *Database) Close() error {
	return d.DB.Close()
}

// initTables initializes the SQL tables.
func (d *Database) initTables() error {
	const createRuns = `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		compilation_number INTEGER NOT NULL,
		video_id TEXT NOT NULL,
		clip_count INTEGER NOT NULL,
		duration REAL NOT NULL,
		published_at TIMESTAMP NOT NULL
	);`

	if _, err := d.DB.Exec(createRuns); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}
