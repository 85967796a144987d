package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

// New opens a PostgreSQL connection pool and verifies it is reachable.
// Callers own the returned handle and are responsible for closing it.
func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return db, nil
}

// Migrate creates the tables and indexes the service relies on. The unique
// indexes are load-bearing: duplicate signups and the vote-per-(user,post)
// invariant are enforced here, not in application code.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id              TEXT PRIMARY KEY,
			username        TEXT NOT NULL,
			email           TEXT NOT NULL,
			hashed_password TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_idx ON users (username)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (email)`,

		`CREATE TABLE IF NOT EXISTS votes (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			post_slug  TEXT NOT NULL,
			vote_type  TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS votes_user_post_idx ON votes (user_id, post_slug)`,
		`CREATE INDEX IF NOT EXISTS votes_post_slug_idx ON votes (post_slug)`,

		`CREATE TABLE IF NOT EXISTS comments (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			post_slug  TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS comments_post_slug_idx ON comments (post_slug)`,
		`CREATE INDEX IF NOT EXISTS comments_user_id_idx ON comments (user_id)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
