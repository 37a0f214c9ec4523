package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Statements are idempotent so Migrate can run on every boot. Lesson rows
// ride on their module via ON DELETE CASCADE; handlers never re-implement
// the cascade.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'student',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS modules (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		sort_order  INTEGER NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS lessons (
		id          BIGSERIAL PRIMARY KEY,
		module_id   BIGINT NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		content     TEXT NOT NULL DEFAULT '',
		youtube_url TEXT NOT NULL DEFAULT '',
		sort_order  INTEGER NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_lessons_module ON lessons (module_id, sort_order, id)`,
	`CREATE INDEX IF NOT EXISTS idx_modules_order ON modules (sort_order, id)`,
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
