package store

import "sync"

// BlobSchemaVersion is written when a blob store is created on first open.
const BlobSchemaVersion = 1

// BlobStorer is the keyed payload store, keyed by file id. The catalog
// remains authoritative for existence; the blob store is a best-effort
// mirror, so callers treat write failures as degradation, not fatal errors.
type BlobStorer interface {
	Put(blob Blob) error
	Get(id string) (Blob, error)
	Delete(id string) error
	Close() error
}

// MemBlobStore is an in-memory BlobStorer used in tests and as the
// zero-dependency fallback backend.
type MemBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

// NewMemBlobStore creates an empty in-memory blob store.
func NewMemBlobStore() *MemBlobStore {
	return &MemBlobStore{blobs: make(map[string]Blob)}
}

func (s *MemBlobStore) Put(blob Blob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[blob.Meta.ID] = blob
	return nil
}

func (s *MemBlobStore) Get(id string) (Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[id]
	if !ok {
		return Blob{}, ErrBlobNotFound
	}
	return blob, nil
}

func (s *MemBlobStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, id)
	return nil
}

func (s *MemBlobStore) Close() error {
	return nil
}
