// Package store persists whole-session snapshots as opaque JSON blobs in a
// sqlite table. A store failure never corrupts the in-memory session; callers
// report it and move on.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"posline/internal/domain"
)

type Store struct {
	db *sqlx.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS snapshots(
  id TEXT PRIMARY KEY,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  body TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`
	_, err := db.Exec(schema)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// Save writes a snapshot and returns its id.
func (s *Store) Save(snap Snapshot) (string, error) {
	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	id := uuid.NewString()
	if _, err := s.db.Exec(`INSERT INTO snapshots(id, body) VALUES(?, ?)`, id, string(body)); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return id, nil
}

// Load reads one snapshot back.
func (s *Store) Load(id string) (Snapshot, error) {
	var body string
	err := s.db.Get(&body, `SELECT body FROM snapshots WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return Snapshot{}, fmt.Errorf("%w: snapshot %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Latest returns the id of the most recent snapshot.
func (s *Store) Latest() (string, error) {
	var id string
	err := s.db.Get(&id, `SELECT id FROM snapshots ORDER BY created_at DESC, id LIMIT 1`)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: no snapshots", domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("latest snapshot: %w", err)
	}
	return id, nil
}
