// Package store persists jobs and user-defined sources in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	dedup_key TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT,
	location TEXT,
	url TEXT,
	description TEXT,
	source TEXT,
	remote INTEGER NOT NULL DEFAULT 0,
	posted_at TEXT,
	first_seen_at TEXT NOT NULL,
	last_seen_at TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'new',
	notes TEXT,
	baseline_score INTEGER NOT NULL DEFAULT 0,
	content_hash TEXT,
	analysis TEXT,
	analysis_status TEXT NOT NULL DEFAULT 'pending',
	composite_score REAL NOT NULL DEFAULT 0,
	deleted INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
CREATE INDEX IF NOT EXISTS idx_jobs_last_seen ON jobs(last_seen_at);

CREATE TABLE IF NOT EXISTS sources (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	sender_email TEXT,
	sender_pattern TEXT,
	subject_keywords TEXT,
	category TEXT,
	parser TEXT,
	enabled INTEGER NOT NULL DEFAULT 1
);
`)
	return err
}
