package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS quiz_preferences (
		user_id       BIGINT PRIMARY KEY,
		language_code TEXT NOT NULL DEFAULT 'en',
		filter        TEXT NOT NULL DEFAULT 'all',
		max_questions INTEGER NOT NULL DEFAULT 60,
		seed          TEXT NOT NULL DEFAULT '',
		mode          TEXT NOT NULL DEFAULT 'study',
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_preferences_updated_at_idx
		ON quiz_preferences (updated_at)`,
}

// EnsureSchema creates the preference tables in one transaction.
func EnsureSchema(ctx context.Context, t *Transactor) error {
	return t.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
		return nil
	})
}
