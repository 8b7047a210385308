// Package store persists pipeline launch history in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("launch not found")

// Launch is one recorded start of the simulation pipeline.
type Launch struct {
	ID        string    `json:"id"`
	PID       int       `json:"pid"`
	LogPath   string    `json:"log_path"`
	StartedAt time.Time `json:"started_at"`
}

// Store is a SQLite-backed launch history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates an unopened Store.
func NewStore() *Store {
	return &Store{}
}

// Open opens the SQLite database at path. Use ":memory:" for an
// in-memory database.
func (s *Store) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordLaunch inserts a launch row. Implements pipeline.Recorder.
func (s *Store) RecordLaunch(ctx context.Context, pid int, logPath string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO launches (id, pid, log_path, started_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), pid, logPath, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record launch: %w", err)
	}
	return nil
}

// ListLaunches returns launches newest first, at most limit rows.
func (s *Store) ListLaunches(ctx context.Context, limit int) ([]Launch, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pid, log_path, started_at FROM launches ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list launches: %w", err)
	}
	defer rows.Close()

	var launches []Launch
	for rows.Next() {
		var l Launch
		if err := rows.Scan(&l.ID, &l.PID, &l.LogPath, &l.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan launch: %w", err)
		}
		launches = append(launches, l)
	}
	return launches, rows.Err()
}

// LatestLaunch returns the most recent launch, or ErrNotFound.
func (s *Store) LatestLaunch(ctx context.Context) (*Launch, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var l Launch
	err := s.db.QueryRowContext(ctx,
		`SELECT id, pid, log_path, started_at FROM launches ORDER BY started_at DESC LIMIT 1`,
	).Scan(&l.ID, &l.PID, &l.LogPath, &l.StartedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest launch: %w", err)
	}
	return &l, nil
}
