// Package history records ingestion runs in a local SQLite database so past
// runs can be listed and inspected.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one recorded ingestion run.
type Run struct {
	ID             string
	Timestamp      time.Time
	Path           string
	Collection     string
	ChunkSize      int
	ChunkOverlap   int
	ChunkCount     int
	EmbeddingModel string
	Duration       time.Duration
	Outcome        string // "ok" or the failure description
}

// Store persists ingestion runs.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory history store (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS ingestion_runs (
    id TEXT PRIMARY KEY,
    timestamp DATETIME NOT NULL DEFAULT (datetime('now')),
    path TEXT NOT NULL,
    collection TEXT NOT NULL,
    chunk_size INTEGER NOT NULL,
    chunk_overlap INTEGER NOT NULL,
    chunk_count INTEGER NOT NULL,
    embedding_model TEXT NOT NULL DEFAULT '',
    duration_ms INTEGER NOT NULL DEFAULT 0,
    outcome TEXT NOT NULL DEFAULT 'ok'
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON ingestion_runs(timestamp);
CREATE INDEX IF NOT EXISTS idx_runs_collection ON ingestion_runs(collection);
`

// Record inserts a run and returns its generated id.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	id := run.ID
	if id == "" {
		id = uuid.NewString()
	}
	ts := run.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	outcome := run.Outcome
	if outcome == "" {
		outcome = "ok"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingestion_runs
		(id, timestamp, path, collection, chunk_size, chunk_overlap, chunk_count, embedding_model, duration_ms, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, ts.Format(time.RFC3339), run.Path, run.Collection,
		run.ChunkSize, run.ChunkOverlap, run.ChunkCount,
		run.EmbeddingModel, run.Duration.Milliseconds(), outcome,
	)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first, up to limit.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, path, collection, chunk_size, chunk_overlap, chunk_count, embedding_model, duration_ms, outcome
		FROM ingestion_runs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		var durationMS int64
		if err := rows.Scan(&r.ID, &ts, &r.Path, &r.Collection,
			&r.ChunkSize, &r.ChunkOverlap, &r.ChunkCount,
			&r.EmbeddingModel, &durationMS, &r.Outcome); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Timestamp, _ = time.Parse(time.RFC3339, ts)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var r Run
	var ts string
	var durationMS int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, path, collection, chunk_size, chunk_overlap, chunk_count, embedding_model, duration_ms, outcome
		FROM ingestion_runs WHERE id = ?`, id).
		Scan(&r.ID, &ts, &r.Path, &r.Collection,
			&r.ChunkSize, &r.ChunkOverlap, &r.ChunkCount,
			&r.EmbeddingModel, &durationMS, &r.Outcome)
	if err != nil {
		return nil, fmt.Errorf("fetching run %s: %w", id, err)
	}
	r.Timestamp, _ = time.Parse(time.RFC3339, ts)
	r.Duration = time.Duration(durationMS) * time.Millisecond
	return &r, nil
}
