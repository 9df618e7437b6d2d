package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const blobKeyPrefix = "blob:"

// BadgerBlobStore is an alternative blob backend on a Badger key-value
// store, for hosts that prefer a pure log-structured store over SQLite.
type BadgerBlobStore struct {
	db *badger.DB
}

// NewBadgerBlobStore opens (or creates) a Badger-backed blob store at path.
func NewBadgerBlobStore(path string) (*BadgerBlobStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("blobstore: open badger %s: %w", path, err)
	}

	err = db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("meta:schemaVersion"))
		if errors.Is(err, badger.ErrKeyNotFound) {
			buf := make([]byte, 8)
			binary.BigEndian.PutUint64(buf, BlobSchemaVersion)
			return txn.Set([]byte("meta:schemaVersion"), buf)
		}
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("blobstore: init badger schema: %w", err)
	}

	return &BadgerBlobStore{db: db}, nil
}

func blobKey(id string) []byte {
	return []byte(blobKeyPrefix + id)
}

func (s *BadgerBlobStore) Put(blob Blob) error {
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("blobstore: marshal %s: %w", blob.Meta.ID, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(blobKey(blob.Meta.ID), data)
	})
	if err != nil {
		return fmt.Errorf("blobstore: put %s: %w", blob.Meta.ID, err)
	}
	return nil
}

func (s *BadgerBlobStore) Get(id string) (Blob, error) {
	var blob Blob
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blobKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrBlobNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &blob)
		})
	})
	if errors.Is(err, ErrBlobNotFound) {
		return Blob{}, err
	}
	if err != nil {
		return Blob{}, fmt.Errorf("blobstore: get %s: %w", id, err)
	}
	return blob, nil
}

func (s *BadgerBlobStore) Delete(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(blobKey(id))
	})
	if err != nil {
		return fmt.Errorf("blobstore: delete %s: %w", id, err)
	}
	return nil
}

func (s *BadgerBlobStore) Close() error {
	return s.db.Close()
}
