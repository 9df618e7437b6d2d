package organizer

import (
	"sort"

	"github.com/Heymathi/Academic-notes-management-system/internal/store"
)

// Folder choice values understood by uploads. "root" (or the empty string
// on a file record) means unfiled; "auto" picks the default folder for the
// detected file type.
const (
	FolderChoiceAuto = "auto"
	FolderChoiceRoot = "root"
)

// UnfiledGroup is the display group files without a folder fall into.
const UnfiledGroup = "Others"

// FolderForFileType maps each file type to its default folder. Pure and
// total over the FileType set.
func FolderForFileType(t store.FileType) string {
	switch t {
	case store.FileDocument:
		return "PDFs"
	case store.FileImage:
		return "Images"
	case store.FileVideo:
		return "Videos"
	default:
		return "Others"
	}
}

// ResolveUploadFolder turns a user's folder choice into the folder name to
// store on the file record.
func ResolveUploadFolder(choice string, t store.FileType) string {
	switch choice {
	case "", FolderChoiceAuto:
		return FolderForFileType(t)
	case FolderChoiceRoot:
		return ""
	default:
		return choice
	}
}

// CreateFolder adds a named folder to a subject. Folder names are matched
// case-sensitively; creating an existing one fails with ErrDuplicateFolder.
// The reserved root name cannot be created explicitly.
func (o *Organizer) CreateFolder(subjectID int64, name string) error {
	if name == "" || name == FolderChoiceRoot {
		return store.ErrReservedFolderName
	}

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
	if containsFolder(subject.Folders, name) {
		return store.ErrDuplicateFolder
	}
	subject.Folders = append(subject.Folders, name)
	return o.catalog.Save(cat)
}

// AssignFileToFolder moves a file into a folder. The empty string or "root"
// clears the assignment. Assigning to a folder the subject does not have yet
// implicitly creates it; drag-and-drop and default-by-type uploads rely on
// this, so every folder name reachable from a file is always in the
// subject's folder set.
func (o *Organizer) AssignFileToFolder(subjectID int64, fileID, folderName string) error {
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
	var file *store.File
	for i := range subject.Files {
		if subject.Files[i].ID == fileID {
			file = &subject.Files[i]
			break
		}
	}
	if file == nil {
		return store.ErrFileNotFound
	}

	if folderName == "" || folderName == FolderChoiceRoot {
		file.Folder = ""
	} else {
		if !containsFolder(subject.Folders, folderName) {
			subject.Folders = append(subject.Folders, folderName)
		}
		file.Folder = folderName
	}
	return o.catalog.Save(cat)
}

// FilesGroupedByFolder groups a subject's files by folder name, preserving
// upload order within each group. Explicit folders appear even when empty;
// unfiled files group under UnfiledGroup, matching how they are displayed.
func FilesGroupedByFolder(subject store.Subject) map[string][]store.File {
	groups := make(map[string][]store.File)
	for _, f := range subject.Files {
		name := f.Folder
		if name == "" {
			name = UnfiledGroup
		}
		groups[name] = append(groups[name], f)
	}
	for _, name := range subject.Folders {
		if _, ok := groups[name]; !ok {
			groups[name] = []store.File{}
		}
	}
	return groups
}

// FolderNames returns the group names in lexicographic order so rendering
// is deterministic.
func FolderNames(groups map[string][]store.File) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
