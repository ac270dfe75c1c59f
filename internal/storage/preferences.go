// Package storage persists per-session dashboard preferences (saved filters,
// column layouts) in SQLite so they survive restarts.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no preference exists for a session and key.
var ErrNotFound = errors.New("preference not found")

type PreferenceStore struct {
	db *sql.DB
}

func NewPreferenceStore(dbPath string) (*PreferenceStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PreferenceStore{db: db}, nil
}

func (s *PreferenceStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the stored value for a session and key, or ErrNotFound.
func (s *PreferenceStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE session_id = ? AND key = ?`,
		sessionID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get preference: %w", err)
	}
	return value, nil
}

// Set stores or replaces the value for a session and key.
func (s *PreferenceStore) Set(ctx context.Context, sessionID, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (session_id, key, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		sessionID, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

// Delete removes the value for a session and key. Deleting a missing key is
// not an error.
func (s *PreferenceStore) Delete(ctx context.Context, sessionID, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM preferences WHERE session_id = ? AND key = ?`,
		sessionID, key)
	if err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return nil
}
