// Package store provides the dual persistence layer for the notes organizer:
// an authoritative catalog document holding subjects, notes, files and
// folders, and a keyed blob store holding uploaded payloads.
package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CatalogVersion is the schema version of the serialized catalog document.
const CatalogVersion = 1

// FileType is the closed set of artifact kinds the organizer understands.
// It is derived from the declared media type or the filename extension,
// never supplied by the user.
type FileType string

const (
	FileDocument FileType = "document"
	FileImage    FileType = "image"
	FileVideo    FileType = "video"
	FileUnknown  FileType = "unknown"
)

// FileTypes lists every variant, in declaration order.
func FileTypes() []FileType {
	return []FileType{FileDocument, FileImage, FileVideo, FileUnknown}
}

// Catalog is the whole persisted document: the full set of subjects with
// their nested notes, files and folders. It is always read and written as
// one unit.
type Catalog struct {
	Version  int       `json:"version"`
	Subjects []Subject `json:"subjects"`
}

// Subject owns its notes and files exclusively; deleting a subject deletes
// all of them.
type Subject struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code,omitempty"`
	Professor   string    `json:"professor,omitempty"`
	Description string    `json:"description,omitempty"`
	Notes       []Note    `json:"notes"`
	Files       []File    `json:"files"`
	Folders     []string  `json:"folders"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Note is a free-text study note owned by exactly one subject.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Date      string    `json:"date,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// File is the metadata record of an uploaded artifact. Folder is the name of
// the folder the file is assigned to; the empty string means root/unfiled.
// Data carries an embedded copy of the payload inside the catalog document,
// which keeps uploads readable even when the blob store is unavailable.
type File struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        FileType  `json:"type"`
	Size        int64     `json:"size"`
	Description string    `json:"description,omitempty"`
	Data        []byte    `json:"data,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
	Folder      string    `json:"folder"`
	SubjectID   int64     `json:"subjectId"`
}

// Blob is a blob-store entry: the file metadata plus its payload, keyed by
// the file id.
type Blob struct {
	Meta    File   `json:"meta"`
	Payload []byte `json:"payload"`
}

// NewSubjectID derives a subject id from the current time.
func NewSubjectID() int64 {
	return time.Now().UnixMilli()
}

// NewNoteID derives a note id from the current time.
func NewNoteID() int64 {
	return time.Now().UnixMilli()
}

// NewFileID combines the upload time with a random suffix so that rapid
// multi-file uploads cannot collide.
func NewFileID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

var extensionTypes = map[string]FileType{
	".pdf":  FileDocument,
	".jpg":  FileImage,
	".jpeg": FileImage,
	".png":  FileImage,
	".gif":  FileImage,
	".mp4":  FileVideo,
	".webm": FileVideo,
	".avi":  FileVideo,
	".mov":  FileVideo,
}

// DetectFileType classifies an upload from its declared media type, falling
// back to the filename extension. Anything unrecognized is FileUnknown.
func DetectFileType(mediaType, name string) FileType {
	switch {
	case mediaType == "application/pdf":
		return FileDocument
	case strings.HasPrefix(mediaType, "image/"):
		return FileImage
	case strings.HasPrefix(mediaType, "video/"):
		return FileVideo
	}
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return FileUnknown
}
