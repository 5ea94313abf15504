package services

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Load the postgres driver
)

// Schema creates the archive of finished games.
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	id          UUID PRIMARY KEY,
	difficulty  TEXT NOT NULL,
	ai_color    TEXT NOT NULL,
	dark        INTEGER NOT NULL,
	light       INTEGER NOT NULL,
	winner      TEXT NOT NULL,
	moves       TEXT[] NOT NULL,
	final_board TEXT NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS games_finished_at_idx ON games (finished_at DESC);
`

// InitPostgres connects to the database and checks the connection.
func InitPostgres(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return db, nil
}

// Migrate creates missing tables and indexes.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}
