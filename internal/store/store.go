// Package store provides the SQLite-backed snapshot persistence adapter.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dayspend/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store persists JSON state snapshots keyed by name in a local SQLite file.
// It satisfies the budget.Store interface.
type Store struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the snapshot saved under name. A fresh install (no row)
// returns (nil, nil). An unreadable payload returns an error; callers fall
// back to the empty state.
func (s *Store) Load(name string) (*model.Snapshot, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM snapshots WHERE name = ?", name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %q: %w", name, err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %q: %w", name, err)
	}
	return &snap, nil
}

// Save durably persists the full snapshot under name.
func (s *Store) Save(name string, snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot %q: %w", name, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`INSERT OR REPLACE INTO snapshots (name, payload, saved_at)
		VALUES (?, ?, ?)`, name, string(payload), now)
	if err != nil {
		return fmt.Errorf("saving snapshot %q: %w", name, err)
	}
	return nil
}

// Delete removes the snapshot saved under name, if any.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec("DELETE FROM snapshots WHERE name = ?", name)
	return err
}
