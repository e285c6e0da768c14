package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are idempotent and shared between SQLite and PostgreSQL; the
// DDL sticks to the common subset of both dialects.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id         INTEGER PRIMARY KEY,
		title      TEXT NOT NULL,
		genre      TEXT NOT NULL,
		price      INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id         INTEGER PRIMARY KEY,
		game_id    INTEGER NOT NULL REFERENCES games(id),
		user_id    INTEGER NOT NULL REFERENCES users(id),
		score      INTEGER NOT NULL,
		comment    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_game_id ON reviews(game_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_user_id ON reviews(user_id)`,
}

// Migrate applies the catalog schema. Safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	return nil
}
