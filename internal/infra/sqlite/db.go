package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // driver: sqlite
)

const defaultDSN = "file:quiz-trainer.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"

// Open opens a SQLite database and ensures the preference schema exists.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = defaultDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS quiz_preferences (
  user_id INTEGER PRIMARY KEY,
  language_code TEXT NOT NULL DEFAULT 'en',
  filter TEXT NOT NULL DEFAULT 'all',
  max_questions INTEGER NOT NULL DEFAULT 60,
  seed TEXT NOT NULL DEFAULT '',
  mode TEXT NOT NULL DEFAULT 'study',
  updated_at INTEGER NOT NULL
);
`
