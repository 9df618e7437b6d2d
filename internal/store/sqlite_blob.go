package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// blobSchema is created on first open. schema_info pins the store format so
// a future migration has something to key off.
const blobSchema = `
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS blobs (
    id TEXT PRIMARY KEY,
    meta TEXT NOT NULL,
    payload BLOB NOT NULL
);
`

// SQLiteBlobStore is the default on-disk blob backend.
type SQLiteBlobStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteBlobStore opens (or creates) a blob store at dsn. Use ":memory:"
// for an in-memory store or a file path for a persistent one.
func NewSQLiteBlobStore(dsn string) (*SQLiteBlobStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("blobstore: open %s: %w", dsn, err)
	}

	if _, err := db.Exec(blobSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("blobstore: create schema: %w", err)
	}

	var version int
	err = db.QueryRow(`SELECT version FROM schema_info LIMIT 1`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec(`INSERT INTO schema_info (version) VALUES (?)`, BlobSchemaVersion); err != nil {
			db.Close()
			return nil, fmt.Errorf("blobstore: write schema version: %w", err)
		}
	case err != nil:
		db.Close()
		return nil, fmt.Errorf("blobstore: read schema version: %w", err)
	}

	return &SQLiteBlobStore{db: db}, nil
}

func (s *SQLiteBlobStore) Put(blob Blob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := json.Marshal(blob.Meta)
	if err != nil {
		return fmt.Errorf("blobstore: marshal meta %s: %w", blob.Meta.ID, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO blobs (id, meta, payload) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET meta = excluded.meta, payload = excluded.payload
	`, blob.Meta.ID, string(meta), blob.Payload)
	if err != nil {
		return fmt.Errorf("blobstore: put %s: %w", blob.Meta.ID, err)
	}
	return nil
}

func (s *SQLiteBlobStore) Get(id string) (Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var meta string
	var payload []byte
	err := s.db.QueryRow(`SELECT meta, payload FROM blobs WHERE id = ?`, id).Scan(&meta, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Blob{}, ErrBlobNotFound
	}
	if err != nil {
		return Blob{}, fmt.Errorf("blobstore: get %s: %w", id, err)
	}

	var blob Blob
	if err := json.Unmarshal([]byte(meta), &blob.Meta); err != nil {
		return Blob{}, fmt.Errorf("blobstore: parse meta %s: %w", id, err)
	}
	blob.Payload = payload
	return blob, nil
}

func (s *SQLiteBlobStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM blobs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("blobstore: delete %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteBlobStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
