package organizer

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heymathi/Academic-notes-management-system/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrganizer(t *testing.T) (*Organizer, store.BlobStorer) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	blobs := store.NewMemBlobStore()
	return New(store.NewCatalogStore(fsys, ""), blobs, discardLogger()), blobs
}

func TestCreateAndResolveSubject(t *testing.T) {
	org, _ := newTestOrganizer(t)

	subject, err := org.CreateSubject("Operating Systems", "CS3500", "Dr. Rao", "Core course")
	require.NoError(t, err)
	require.NotZero(t, subject.ID)

	got, err := org.Subject(subject.ID)
	require.NoError(t, err)
	assert.Equal(t, "Operating Systems", got.Name)
	assert.Equal(t, "CS3500", got.Code)

	_, err = org.Subject(subject.ID + 1)
	assert.ErrorIs(t, err, store.ErrSubjectNotFound)
}

func TestUpsertNote(t *testing.T) {
	org, _ := newTestOrganizer(t)
	subject, err := org.CreateSubject("Networks", "", "", "")
	require.NoError(t, err)

	note, err := org.UpsertNote(subject.ID, store.Note{Title: "TCP", Body: "Three-way handshake."})
	require.NoError(t, err)
	require.NotZero(t, note.ID)

	note.Body = "Three-way handshake, then data."
	_, err = org.UpsertNote(subject.ID, note)
	require.NoError(t, err)

	got, err := org.Subject(subject.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "Three-way handshake, then data.", got.Notes[0].Body)

	_, err = org.UpsertNote(subject.ID+99, store.Note{Title: "stale"})
	assert.ErrorIs(t, err, store.ErrSubjectNotFound)
}

func TestRemoveNote(t *testing.T) {
	org, _ := newTestOrganizer(t)
	subject, err := org.CreateSubject("Networks", "", "", "")
	require.NoError(t, err)
	note, err := org.UpsertNote(subject.ID, store.Note{Title: "UDP"})
	require.NoError(t, err)

	require.NoError(t, org.RemoveNote(subject.ID, note.ID))
	assert.ErrorIs(t, org.RemoveNote(subject.ID, note.ID), store.ErrNoteNotFound)
}

func TestAddFileWritesBothStores(t *testing.T) {
	org, blobs := newTestOrganizer(t)
	subject, err := org.CreateSubject("Algorithms", "", "", "")
	require.NoError(t, err)

	payload := []byte("%PDF-1.4 fake")
	file, err := org.AddFile(subject.ID, store.File{Name: "lec1.pdf", Type: store.FileDocument, Folder: "PDFs"}, payload)
	require.NoError(t, err)
	require.NotEmpty(t, file.ID)
	assert.Equal(t, subject.ID, file.SubjectID)
	assert.Equal(t, int64(len(payload)), file.Size)

	blob, err := blobs.Get(file.ID)
	require.NoError(t, err)
	assert.Equal(t, payload, blob.Payload)

	got, err := org.Subject(subject.ID)
	require.NoError(t, err)
	require.Len(t, got.Files, 1)
	assert.Equal(t, payload, got.Files[0].Data)
	assert.Contains(t, got.Folders, "PDFs")
}

func TestAddFileDegradedMode(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	org := New(store.NewCatalogStore(fsys, ""), nil, discardLogger())

	subject, err := org.CreateSubject("History", "", "", "")
	require.NoError(t, err)

	file, err := org.AddFile(subject.ID, store.File{Name: "essay.pdf", Type: store.FileDocument}, []byte("body"))
	require.NoError(t, err, "upload must succeed without a blob store")

	payload, err := org.FilePayload(subject.ID, file.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), payload)
}

type failingBlobStore struct{ store.BlobStorer }

func (failingBlobStore) Put(store.Blob) error { return errors.New("disk full") }

func TestAddFileBlobFailureDoesNotBlockCommit(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	org := New(store.NewCatalogStore(fsys, ""), failingBlobStore{store.NewMemBlobStore()}, discardLogger())

	subject, err := org.CreateSubject("Chemistry", "", "", "")
	require.NoError(t, err)

	_, err = org.AddFile(subject.ID, store.File{Name: "lab.pdf", Type: store.FileDocument}, []byte("data"))
	require.NoError(t, err)

	got, err := org.Subject(subject.ID)
	require.NoError(t, err)
	assert.Len(t, got.Files, 1)
}

func TestFilePayloadPrefersBlobStore(t *testing.T) {
	org, blobs := newTestOrganizer(t)
	subject, err := org.CreateSubject("Physics", "", "", "")
	require.NoError(t, err)

	file, err := org.AddFile(subject.ID, store.File{Name: "notes.png", Type: store.FileImage}, []byte("img"))
	require.NoError(t, err)

	payload, err := org.FilePayload(subject.ID, file.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), payload)

	// Blob gone: the catalog's embedded copy still serves reads.
	require.NoError(t, blobs.Delete(file.ID))
	payload, err = org.FilePayload(subject.ID, file.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), payload)
}

func TestAddFilesCountsCompletions(t *testing.T) {
	org, _ := newTestOrganizer(t)
	subject, err := org.CreateSubject("Biology", "", "", "")
	require.NoError(t, err)

	added, err := org.AddFiles(subject.ID, []Upload{
		{Name: "cells.pdf", MediaType: "application/pdf", Payload: []byte("a")},
		{Name: "leaf.png", MediaType: "image/png", Payload: []byte("b")},
		{Name: "data.bin", Payload: []byte("c"), Description: "raw readings"},
	})
	require.NoError(t, err)
	require.Len(t, added, 3)

	// Ids must not collide even on a rapid batch.
	assert.NotEqual(t, added[0].ID, added[1].ID)
	assert.NotEqual(t, added[1].ID, added[2].ID)

	got, err := org.Subject(subject.ID)
	require.NoError(t, err)
	require.Len(t, got.Files, 3)
	assert.Equal(t, "PDFs", got.Files[0].Folder)
	assert.Equal(t, "Images", got.Files[1].Folder)
	assert.Equal(t, "Others", got.Files[2].Folder)
}

func TestAddFilesStaleSubject(t *testing.T) {
	org, _ := newTestOrganizer(t)
	subject, err := org.CreateSubject("Dropped", "", "", "")
	require.NoError(t, err)
	require.NoError(t, org.RemoveSubject(subject.ID))

	added, err := org.AddFiles(subject.ID, []Upload{{Name: "late.pdf", MediaType: "application/pdf"}})
	assert.Empty(t, added)
	assert.ErrorIs(t, err, store.ErrSubjectNotFound)
}

func TestRemoveFile(t *testing.T) {
	org, blobs := newTestOrganizer(t)
	subject, err := org.CreateSubject("Art", "", "", "")
	require.NoError(t, err)
	file, err := org.AddFile(subject.ID, store.File{Name: "sketch.png", Type: store.FileImage}, []byte("x"))
	require.NoError(t, err)

	require.NoError(t, org.RemoveFile(subject.ID, file.ID))

	_, err = blobs.Get(file.ID)
	assert.ErrorIs(t, err, store.ErrBlobNotFound)
	assert.ErrorIs(t, org.RemoveFile(subject.ID, file.ID), store.ErrFileNotFound)
}

func TestRemoveSubjectCascades(t *testing.T) {
	org, blobs := newTestOrganizer(t)
	keep, err := org.CreateSubject("Keep", "", "", "")
	require.NoError(t, err)
	drop, err := org.UpsertSubject(store.Subject{ID: keep.ID + 1, Name: "Drop"})
	require.NoError(t, err)

	_, err = org.UpsertNote(drop.ID, store.Note{Title: "gone"})
	require.NoError(t, err)
	file, err := org.AddFile(drop.ID, store.File{Name: "gone.pdf", Type: store.FileDocument}, []byte("y"))
	require.NoError(t, err)

	require.NoError(t, org.RemoveSubject(drop.ID))

	subjects, err := org.Subjects()
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, keep.ID, subjects[0].ID)
	for _, s := range subjects {
		assert.NotEqual(t, drop.ID, s.ID)
		for _, f := range s.Files {
			assert.NotEqual(t, drop.ID, f.SubjectID)
		}
	}

	_, err = blobs.Get(file.ID)
	assert.ErrorIs(t, err, store.ErrBlobNotFound)

	assert.ErrorIs(t, org.RemoveSubject(drop.ID), store.ErrSubjectNotFound)
}
