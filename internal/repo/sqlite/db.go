// Package sqlite implements the repositories on top of an embedded SQLite
// database. It backs local development and the HTTP tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		username        VARCHAR(50) NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		is_active       BOOLEAN NOT NULL DEFAULT 1,
		created_at      DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS task (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		title       TEXT NOT NULL CHECK (title <> ''),
		description TEXT,
		is_done     BOOLEAN NOT NULL DEFAULT 0,
		owner_id    INTEGER REFERENCES "user" (id),
		created_at  DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS task_owner_created_idx ON task (owner_id, created_at DESC)`,
}

// Open opens the database file at path (":memory:" for a private in-memory
// database) with foreign keys enforced. SQLite serializes writers anyway, so
// the pool is capped at one connection; this also keeps an in-memory
// database alive and shared for the lifetime of the handle.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=on"
	} else {
		dsn += "?_foreign_keys=on"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}
	return db, nil
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return repo.ErrorConflict
	}
	return err
}
