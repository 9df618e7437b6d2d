package store

import (
	"testing"
	"time"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogStore(t *testing.T) *CatalogStore {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	return NewCatalogStore(fsys, "")
}

func TestCatalogLoadMissingIsEmpty(t *testing.T) {
	s := newTestCatalogStore(t)

	cat, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, CatalogVersion, cat.Version)
	assert.Empty(t, cat.Subjects)
}

func TestCatalogRoundTrip(t *testing.T) {
	s := newTestCatalogStore(t)
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	cat := Catalog{
		Subjects: []Subject{
			{
				ID:        1,
				Name:      "Operating Systems",
				Code:      "CS3500",
				Professor: "Dr. Rao",
				Notes: []Note{
					{ID: 10, Title: "Scheduling", Body: "Round robin vs MLFQ.", Date: "2026-03-01", Tags: []string{"exam", "cpu"}, CreatedAt: created},
				},
				Files: []File{
					{ID: "f-1", Name: "lec1.pdf", Type: FileDocument, Size: 12, Data: []byte("hello world!"), Folder: "PDFs", SubjectID: 1, UploadedAt: created},
					{ID: "f-2", Name: "board.png", Type: FileImage, Size: 3, Data: []byte{1, 2, 3}, Folder: "", SubjectID: 1, UploadedAt: created},
				},
				Folders:   []string{"PDFs", "Week 1"},
				CreatedAt: created,
			},
			{ID: 2, Name: "Linear Algebra", CreatedAt: created},
		},
	}
	require.NoError(t, s.Save(cat))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, CatalogVersion, got.Version)
	require.Len(t, got.Subjects, 2)
	assert.Equal(t, cat.Subjects, got.Subjects)
}

func TestCatalogSaveReplacesWholeDocument(t *testing.T) {
	s := newTestCatalogStore(t)

	require.NoError(t, s.Save(Catalog{Subjects: []Subject{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}))
	require.NoError(t, s.Save(Catalog{Subjects: []Subject{{ID: 3, Name: "C"}}}))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got.Subjects, 1)
	assert.Equal(t, int64(3), got.Subjects[0].ID)
}

func TestDetectFileType(t *testing.T) {
	cases := []struct {
		mediaType string
		name      string
		want      FileType
	}{
		{"application/pdf", "notes", FileDocument},
		{"image/jpeg", "scan", FileImage},
		{"video/mp4", "lecture", FileVideo},
		{"", "slides.PDF", FileDocument},
		{"", "photo.jpeg", FileImage},
		{"", "clip.mov", FileVideo},
		{"application/zip", "archive.zip", FileUnknown},
		{"", "readme", FileUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DetectFileType(c.mediaType, c.name), "media=%q name=%q", c.mediaType, c.name)
	}
}

func TestNewFileIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewFileID()
		assert.False(t, seen[id], "duplicate file id %s", id)
		seen[id] = true
	}
}
