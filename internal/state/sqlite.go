package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens the state database at dbPath, creating the schema if
// needed. Use ":memory:" for a store that lives only as long as the process.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS outputs (
		path TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		build_id TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		documents INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		written INTEGER NOT NULL,
		unchanged INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Output returns the recorded state of path.
func (s *SQLiteStore) Output(ctx context.Context, path string) (Output, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out Output
	var updated int64
	err := s.db.QueryRowContext(ctx,
		"SELECT path, fingerprint, build_id, updated_at FROM outputs WHERE path = ?", path,
	).Scan(&out.Path, &out.Fingerprint, &out.BuildID, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Output{}, false, nil
	}
	if err != nil {
		return Output{}, false, fmt.Errorf("query output: %w", err)
	}
	out.UpdatedAt = time.Unix(updated, 0).UTC()
	return out, true, nil
}

// RecordOutput stores or replaces the state of out.Path.
func (s *SQLiteStore) RecordOutput(ctx context.Context, out Output) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outputs (path, fingerprint, build_id, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET fingerprint = excluded.fingerprint,
			build_id = excluded.build_id, updated_at = excluded.updated_at`,
		out.Path, out.Fingerprint, out.BuildID, out.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert output: %w", err)
	}
	return nil
}

// RecordBuild stores a build summary.
func (s *SQLiteStore) RecordBuild(ctx context.Context, b Build) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO builds (id, status, started_at, duration_ms, documents, skipped, written, unchanged)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, string(b.Status), b.StartedAt.UnixMilli(), b.Duration.Milliseconds(),
		b.Documents, b.Skipped, b.Written, b.Unchanged,
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// LastBuild returns the most recently started build.
func (s *SQLiteStore) LastBuild(ctx context.Context) (Build, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b Build
	var status string
	var started, durationMS int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, status, started_at, duration_ms, documents, skipped, written, unchanged
		FROM builds ORDER BY started_at DESC, rowid DESC LIMIT 1`,
	).Scan(&b.ID, &status, &started, &durationMS, &b.Documents, &b.Skipped, &b.Written, &b.Unchanged)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, ErrBuildNotFound
	}
	if err != nil {
		return Build{}, fmt.Errorf("query build: %w", err)
	}
	b.Status = BuildStatus(status)
	b.StartedAt = time.UnixMilli(started).UTC()
	b.Duration = time.Duration(durationMS) * time.Millisecond
	return b, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
