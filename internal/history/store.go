// Package history persists past diff runs in a local SQLite database so
// they can be listed and re-displayed later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/juparave/linediff/internal/util"
)

// Entry is one recorded diff run
type Entry struct {
	ID        int64
	CreatedAt time.Time
	OldName   string
	NewName   string
	Inserts   int
	Deletes   int
	Equals    int
	Rendered  string // Unified rendering captured at run time, without color.
}

// Store wraps the SQLite database holding diff history
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path and ensures
// the schema is available.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    old_name TEXT NOT NULL,
    new_name TEXT NOT NULL,
    inserts INTEGER NOT NULL,
    deletes INTEGER NOT NULL,
    equals INTEGER NOT NULL,
    rendered TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Save records a run and returns its assigned id
func (s *Store) Save(ctx context.Context, e Entry) (int64, error) {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, old_name, new_name, inserts, deletes, equals, rendered)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		createdAt, e.OldName, e.NewName, e.Inserts, e.Deletes, e.Equals, e.Rendered,
	)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}

	return res.LastInsertId()
}

// Recent returns the most recent runs, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, old_name, new_name, inserts, deletes, equals, rendered
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.OldName, &e.NewName, &e.Inserts, &e.Deletes, &e.Equals, &e.Rendered); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Get returns a single run by id
func (s *Store) Get(ctx context.Context, id int64) (Entry, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, old_name, new_name, inserts, deletes, equals, rendered
		 FROM runs WHERE id = ?`, id,
	).Scan(&e.ID, &e.CreatedAt, &e.OldName, &e.NewName, &e.Inserts, &e.Deletes, &e.Equals, &e.Rendered)
	if err == sql.ErrNoRows {
		return Entry{}, fmt.Errorf("no run with id %d", id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get run: %w", err)
	}
	return e, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
