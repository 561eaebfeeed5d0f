package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the user_version of a fully migrated history file.
//
//	0 - runs and evaluations
//	1 - runs.problem_hash
const schemaVersion = 1

// migrations[v] upgrades a history file from version v to v+1.
var migrations = []func(*sql.DB) error{
	addProblemHash,
}

// Store is an optimization history file: runs of a problem and the
// evaluations recorded for each run.
type Store struct {
	db *sql.DB
}

// Open opens the history file at path, creating it if needed, and brings
// its schema up to date.
//
// One connection is kept open; SQLite allows a single writer and the CLI
// never needs more.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := configure(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the history file.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// configure sets WAL journaling, NORMAL sync, a 5s busy timeout and
// foreign key enforcement.
func configure(db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("configure history: %q: %w", pragma, err)
		}
	}
	return nil
}

// migrate creates the base tables and applies every migration newer than
// the file's user_version.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create history tables: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read history version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("history version %d is newer than supported version %d", version, schemaVersion)
	}

	for v := version; v < schemaVersion; v++ {
		if err := migrations[v](db); err != nil {
			return fmt.Errorf("migrate history to v%d: %w", v+1, err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			return fmt.Errorf("set history version %d: %w", v+1, err)
		}
	}
	return nil
}

// addProblemHash records which revision of a problem file a run used.
// Runs written before the column existed get an empty hash.
func addProblemHash(db *sql.DB) error {
	_, err := db.Exec(`ALTER TABLE runs ADD COLUMN problem_hash TEXT NOT NULL DEFAULT ''`)
	return err
}
