package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS "user" (
		id              BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		username        VARCHAR(50) NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		is_active       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS task (
		id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		title       TEXT NOT NULL CHECK (title <> ''),
		description TEXT,
		is_done     BOOLEAN NOT NULL DEFAULT FALSE,
		owner_id    BIGINT REFERENCES "user" (id),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS task_owner_created_idx ON task (owner_id, created_at DESC)`,
}

// Migrate создает таблицы, если их еще нет
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
	}
	return nil
}
