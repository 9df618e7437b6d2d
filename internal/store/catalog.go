package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/hack-pad/hackpadfs"
)

// DefaultCatalogFile is the fixed name the catalog document is stored under.
const DefaultCatalogFile = "subjects.json"

// CatalogStore persists the catalog as a single JSON document on a
// hackpadfs filesystem. Every mutation goes through a full-document
// read-modify-write; there is no partial patching and no isolation between
// racing writers (last write wins at the document level).
type CatalogStore struct {
	fs   hackpadfs.FS
	name string
}

// NewCatalogStore returns a store reading and writing the document called
// name on fsys. An empty name selects DefaultCatalogFile.
func NewCatalogStore(fsys hackpadfs.FS, name string) *CatalogStore {
	if name == "" {
		name = DefaultCatalogFile
	}
	return &CatalogStore{fs: fsys, name: name}
}

// Load reads the whole catalog document. A missing document is an empty
// catalog, not an error.
func (s *CatalogStore) Load() (Catalog, error) {
	data, err := fs.ReadFile(s.fs, s.name)
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return Catalog{Version: CatalogVersion}, nil
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", s.name, err)
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parse %s: %w", s.name, err)
	}
	if cat.Version == 0 {
		cat.Version = CatalogVersion
	}
	return cat, nil
}

// Save replaces the whole catalog document.
func (s *CatalogStore) Save(cat Catalog) error {
	cat.Version = CatalogVersion
	data, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("catalog: marshal: %w", err)
	}

	f, err := hackpadfs.Create(s.fs, s.name)
	if err != nil {
		return fmt.Errorf("catalog: create %s: %w", s.name, err)
	}
	if _, err := hackpadfs.WriteFile(f, data); err != nil {
		f.Close()
		return fmt.Errorf("catalog: write %s: %w", s.name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("catalog: close %s: %w", s.name, err)
	}
	return nil
}
