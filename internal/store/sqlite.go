package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/workfetch/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteStore keeps the session record in a single-row SQLite table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the SQLite database and applies migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Location returns the database path.
func (s *SQLiteStore) Location() string {
	return s.path
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS session_record (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			date TEXT NOT NULL,
			start_time TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the stored record, or nil when the table is empty.
func (s *SQLiteStore) Load(ctx context.Context) (*model.SessionRecord, error) {
	var doc recordDoc
	err := s.db.QueryRowContext(ctx, `SELECT date, start_time FROM session_record WHERE id = 1`).
		Scan(&doc.Date, &doc.StartTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return decodeRecord(doc)
}

// Save replaces the stored record.
func (s *SQLiteStore) Save(ctx context.Context, rec model.SessionRecord) error {
	doc := encodeRecord(rec)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_record (id, date, start_time) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET date = excluded.date, start_time = excluded.start_time`,
		doc.Date, doc.StartTime)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear deletes the stored record.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_record`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
