// Package organizer coordinates every mutation of study material across the
// two stores: the authoritative catalog document and the best-effort blob
// store. Callers address subjects by id and every operation re-resolves the
// id against a freshly loaded catalog, so a stale selection surfaces as
// ErrSubjectNotFound instead of silently writing into a deleted record.
package organizer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Heymathi/Academic-notes-management-system/internal/store"
)

// Organizer is the persistence coordinator. All mutations are
// whole-document read-modify-writes of the catalog; racing logical
// operations resolve as last-write-wins at the document level, which is the
// accepted model for single-user usage. The mutex only keeps a single
// process internally consistent.
type Organizer struct {
	mu      sync.Mutex
	catalog *store.CatalogStore
	blobs   store.BlobStorer
	log     *slog.Logger
}

// Upload describes one file of a multi-file upload request.
type Upload struct {
	Name        string
	MediaType   string
	Description string
	// FolderChoice is the user's folder selection: "auto" (or empty) picks
	// the default folder for the detected type, "root" files it at the
	// top level, anything else is a folder name.
	FolderChoice string
	Payload      []byte
}

// New creates an organizer. A nil blobs puts it in catalog-only degraded
// mode: uploads still succeed, payloads live only in the catalog's embedded
// copy. The degradation is logged once here.
func New(catalog *store.CatalogStore, blobs store.BlobStorer, log *slog.Logger) *Organizer {
	if log == nil {
		log = slog.Default()
	}
	if blobs == nil {
		log.Warn("blob storage unavailable, falling back to catalog-only persistence",
			"error", store.ErrStorageUnavailable)
	}
	return &Organizer{catalog: catalog, blobs: blobs, log: log}
}

// Subjects returns every subject in the catalog.
func (o *Organizer) Subjects() ([]store.Subject, error) {
	cat, err := o.catalog.Load()
	if err != nil {
		return nil, err
	}
	return cat.Subjects, nil
}

// Subject resolves a subject id against the current catalog.
func (o *Organizer) Subject(id int64) (store.Subject, error) {
	cat, err := o.catalog.Load()
	if err != nil {
		return store.Subject{}, err
	}
	idx := findSubject(cat, id)
	if idx < 0 {
		return store.Subject{}, store.ErrSubjectNotFound
	}
	return cat.Subjects[idx], nil
}

// CreateSubject appends a new subject and persists the catalog.
func (o *Organizer) CreateSubject(name, code, professor, description string) (store.Subject, error) {
	subject := store.Subject{
		ID:          store.NewSubjectID(),
		Name:        name,
		Code:        code,
		Professor:   professor,
		Description: description,
		Notes:       []store.Note{},
		Files:       []store.File{},
		Folders:     []string{},
		CreatedAt:   time.Now(),
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	cat, err := o.catalog.Load()
	if err != nil {
		return store.Subject{}, err
	}
	cat.Subjects = append(cat.Subjects, subject)
	if err := o.catalog.Save(cat); err != nil {
		return store.Subject{}, err
	}
	return subject, nil
}

// UpsertSubject replaces the subject with the same id, or appends it when
// the id is new or unset.
func (o *Organizer) UpsertSubject(subject store.Subject) (store.Subject, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	cat, err := o.catalog.Load()
	if err != nil {
		return store.Subject{}, err
	}

	if subject.ID == 0 {
		subject.ID = store.NewSubjectID()
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now()
	}
	if idx := findSubject(cat, subject.ID); idx >= 0 {
		cat.Subjects[idx] = subject
	} else {
		cat.Subjects = append(cat.Subjects, subject)
	}

	if err := o.catalog.Save(cat); err != nil {
		return store.Subject{}, err
	}
	return subject, nil
}

// RemoveSubject deletes a subject and cascades deletion of its notes and
// files. Blob entries of the deleted files are cleaned up best-effort; the
// catalog stays authoritative either way.
func (o *Organizer) RemoveSubject(id int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	cat, err := o.catalog.Load()
	if err != nil {
		return err
	}
	idx := findSubject(cat, id)
	if idx < 0 {
		return store.ErrSubjectNotFound
	}

	removed := cat.Subjects[idx]
	cat.Subjects = append(cat.Subjects[:idx], cat.Subjects[idx+1:]...)
	if err := o.catalog.Save(cat); err != nil {
		return err
	}

	if o.blobs != nil {
		for _, f := range removed.Files {
			if err := o.blobs.Delete(f.ID); err != nil {
				o.log.Warn("blob cleanup failed", "file", f.ID, "error", err)
			}
		}
	}
	return nil
}

// UpsertNote adds a note to a subject, or replaces the note with the same
// id when it already exists.
func (o *Organizer) UpsertNote(subjectID int64, note store.Note) (store.Note, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	cat, err := o.catalog.Load()
	if err != nil {
		return store.Note{}, err
	}
	idx := findSubject(cat, subjectID)
	if idx < 0 {
		return store.Note{}, store.ErrSubjectNotFound
	}

	if note.ID == 0 {
		note.ID = store.NewNoteID()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}

	subject := &cat.Subjects[idx]
	replaced := false
	for i := range subject.Notes {
		if subject.Notes[i].ID == note.ID {
			subject.Notes[i] = note
			replaced = true
			break
		}
	}
	if !replaced {
		subject.Notes = append(subject.Notes, note)
	}

	if err := o.catalog.Save(cat); err != nil {
		return store.Note{}, err
	}
	return note, nil
}

// RemoveNote deletes one note from a subject.
func (o *Organizer) RemoveNote(subjectID, noteID int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	cat, err := o.catalog.Load()
	if err != nil {
		return err
	}
	idx := findSubject(cat, subjectID)
	if idx < 0 {
		return store.ErrSubjectNotFound
	}

	subject := &cat.Subjects[idx]
	for i := range subject.Notes {
		if subject.Notes[i].ID == noteID {
			subject.Notes = append(subject.Notes[:i], subject.Notes[i+1:]...)
			return o.catalog.Save(cat)
		}
	}
	return store.ErrNoteNotFound
}

// AddFile ingests one uploaded file: the metadata (with an embedded payload
// copy) is committed to the catalog first, then the payload is mirrored into
// the blob store. A blob write failure is logged and does not block the
// commit; the embedded copy keeps the payload retrievable.
func (o *Organizer) AddFile(subjectID int64, file store.File, payload []byte) (store.File, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.addFileLocked(subjectID, file, payload)
}

func (o *Organizer) addFileLocked(subjectID int64, file store.File, payload []byte) (store.File, error) {
	cat, err := o.catalog.Load()
	if err != nil {
		return store.File{}, err
	}
	idx := findSubject(cat, subjectID)
	if idx < 0 {
		return store.File{}, store.ErrSubjectNotFound
	}

	if file.ID == "" {
		file.ID = store.NewFileID()
	}
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	if file.Size == 0 {
		file.Size = int64(len(payload))
	}
	file.SubjectID = subjectID
	file.Data = payload

	subject := &cat.Subjects[idx]
	if file.Folder != "" && !containsFolder(subject.Folders, file.Folder) {
		subject.Folders = append(subject.Folders, file.Folder)
	}
	subject.Files = append(subject.Files, file)

	if err := o.catalog.Save(cat); err != nil {
		return store.File{}, err
	}

	if o.blobs != nil {
		if err := o.blobs.Put(store.Blob{Meta: file, Payload: payload}); err != nil {
			o.log.Warn("blob write failed, payload kept in catalog only",
				"file", file.ID, "name", file.Name, "error", err)
		}
	}
	return file, nil
}

// AddFiles ingests a batch of uploads. The uploads are independent: each one
// re-resolves the subject, and one failure does not abort the rest. The
// returned count is the number of completed uploads.
func (o *Organizer) AddFiles(subjectID int64, uploads []Upload) ([]store.File, error) {
	var added []store.File
	var errs []error

	for _, up := range uploads {
		fileType := store.DetectFileType(up.MediaType, up.Name)
		file := store.File{
			Name:        up.Name,
			Type:        fileType,
			Description: up.Description,
			Folder:      ResolveUploadFolder(up.FolderChoice, fileType),
		}

		o.mu.Lock()
		stored, err := o.addFileLocked(subjectID, file, up.Payload)
		o.mu.Unlock()
		if err != nil {
			errs = append(errs, fmt.Errorf("upload %s: %w", up.Name, err))
			continue
		}
		added = append(added, stored)
	}
	return added, errors.Join(errs...)
}

// RemoveFile deletes a file's catalog entry and best-effort removes its blob.
func (o *Organizer) RemoveFile(subjectID int64, fileID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	cat, err := o.catalog.Load()
	if err != nil {
		return err
	}
	idx := findSubject(cat, subjectID)
	if idx < 0 {
		return store.ErrSubjectNotFound
	}

	subject := &cat.Subjects[idx]
	for i := range subject.Files {
		if subject.Files[i].ID == fileID {
			subject.Files = append(subject.Files[:i], subject.Files[i+1:]...)
			if err := o.catalog.Save(cat); err != nil {
				return err
			}
			if o.blobs != nil {
				if err := o.blobs.Delete(fileID); err != nil {
					o.log.Warn("blob delete failed", "file", fileID, "error", err)
				}
			}
			return nil
		}
	}
	return store.ErrFileNotFound
}

// FilePayload fetches a file's payload, preferring the blob store and
// falling back to the catalog's embedded copy.
func (o *Organizer) FilePayload(subjectID int64, fileID string) ([]byte, error) {
	if o.blobs != nil {
		blob, err := o.blobs.Get(fileID)
		if err == nil {
			return blob.Payload, nil
		}
		if !errors.Is(err, store.ErrBlobNotFound) {
			o.log.Warn("blob read failed, falling back to catalog copy", "file", fileID, "error", err)
		}
	}

	subject, err := o.Subject(subjectID)
	if err != nil {
		return nil, err
	}
	for _, f := range subject.Files {
		if f.ID == fileID {
			return f.Data, nil
		}
	}
	return nil, store.ErrFileNotFound
}

func findSubject(cat store.Catalog, id int64) int {
	for i := range cat.Subjects {
		if cat.Subjects[i].ID == id {
			return i
		}
	}
	return -1
}

func containsFolder(folders []string, name string) bool {
	for _, f := range folders {
		if f == name {
			return true
		}
	}
	return false
}
