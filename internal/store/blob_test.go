package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blobFactory creates a blob store for testing.
// The same suite runs against every backend.
type blobFactory func(t *testing.T) (BlobStorer, error)

func memBlobFactory(t *testing.T) (BlobStorer, error) {
	return NewMemBlobStore(), nil
}

func sqliteBlobFactory(t *testing.T) (BlobStorer, error) {
	return NewSQLiteBlobStore(":memory:")
}

func badgerBlobFactory(t *testing.T) (BlobStorer, error) {
	return NewBadgerBlobStore(filepath.Join(t.TempDir(), "blobs"))
}

func runTestsForAllBlobStores(t *testing.T, testName string, testFn func(t *testing.T, blobs BlobStorer)) {
	factories := map[string]blobFactory{
		"MemBlobStore":    memBlobFactory,
		"SQLiteBlobStore": sqliteBlobFactory,
		"BadgerBlobStore": badgerBlobFactory,
	}

	for name, factory := range factories {
		t.Run(name+"/"+testName, func(t *testing.T) {
			blobs, err := factory(t)
			require.NoError(t, err, "Failed to create blob store")
			defer blobs.Close()
			testFn(t, blobs)
		})
	}
}

func testBlob(id string) Blob {
	return Blob{
		Meta: File{
			ID:        id,
			Name:      "lecture01.pdf",
			Type:      FileDocument,
			Size:      4,
			Folder:    "PDFs",
			SubjectID: 1700000000000,
		},
		Payload: []byte("%PDF"),
	}
}

func TestBlobPutAndGet(t *testing.T) {
	runTestsForAllBlobStores(t, "PutAndGet", func(t *testing.T, blobs BlobStorer) {
		blob := testBlob("file-1")
		require.NoError(t, blobs.Put(blob))

		got, err := blobs.Get("file-1")
		require.NoError(t, err)
		assert.Equal(t, blob.Meta, got.Meta)
		assert.Equal(t, blob.Payload, got.Payload)
	})
}

func TestBlobPutOverwrites(t *testing.T) {
	runTestsForAllBlobStores(t, "PutOverwrites", func(t *testing.T, blobs BlobStorer) {
		blob := testBlob("file-1")
		require.NoError(t, blobs.Put(blob))

		blob.Payload = []byte("%PDF-1.7")
		blob.Meta.Size = 8
		require.NoError(t, blobs.Put(blob))

		got, err := blobs.Get("file-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.7"), got.Payload)
		assert.Equal(t, int64(8), got.Meta.Size)
	})
}

func TestBlobGetMissing(t *testing.T) {
	runTestsForAllBlobStores(t, "GetMissing", func(t *testing.T, blobs BlobStorer) {
		_, err := blobs.Get("no-such-id")
		assert.ErrorIs(t, err, ErrBlobNotFound)
	})
}

func TestBlobDelete(t *testing.T) {
	runTestsForAllBlobStores(t, "Delete", func(t *testing.T, blobs BlobStorer) {
		require.NoError(t, blobs.Put(testBlob("file-1")))
		require.NoError(t, blobs.Delete("file-1"))

		_, err := blobs.Get("file-1")
		assert.ErrorIs(t, err, ErrBlobNotFound)

		// Deleting an absent key is not an error.
		assert.NoError(t, blobs.Delete("file-1"))
	})
}
