package store

import "errors"

// Sentinel errors shared across the persistence layer. A NotFound error
// means the targeted id no longer resolves and the caller must re-read
// before retrying.
var (
	ErrSubjectNotFound    = errors.New("store: subject not found")
	ErrNoteNotFound       = errors.New("store: note not found")
	ErrFileNotFound       = errors.New("store: file not found")
	ErrBlobNotFound       = errors.New("store: blob not found")
	ErrDuplicateFolder    = errors.New("store: folder already exists")
	ErrReservedFolderName = errors.New("store: folder name is reserved")
	ErrStorageUnavailable = errors.New("store: blob storage unavailable")
)
