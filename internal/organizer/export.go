package organizer

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/Heymathi/Academic-notes-management-system/internal/store"
)

// ExportEntry is one file of the read-only export tree consumed by the
// archive collaborator: a slash-separated path and its content.
type ExportEntry struct {
	Path    string
	Content []byte
}

// ExportTree renders a subject as a tree of names to content: a subject
// info sheet, its notes as text files, and its uploads grouped by folder.
// Packaging the tree into an archive is the collaborator's job.
func (o *Organizer) ExportTree(subjectID int64) ([]ExportEntry, error) {
	subject, err := o.Subject(subjectID)
	if err != nil {
		return nil, err
	}

	root := sanitizeName(subject.Name)
	entries := []ExportEntry{{
		Path:    path.Join(root, "Subject_Info.txt"),
		Content: []byte(renderSubjectInfo(subject)),
	}}

	for i, note := range subject.Notes {
		name := fmt.Sprintf("Note_%d_%s.txt", i+1, sanitizeName(note.Title))
		entries = append(entries, ExportEntry{
			Path:    path.Join(root, "Notes", name),
			Content: []byte(renderNote(note)),
		})
	}

	groups := FilesGroupedByFolder(subject)
	names := make([]string, 0, len(groups))
	for name, files := range groups {
		if len(files) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, folder := range names {
		for _, f := range groups[folder] {
			payload, err := o.FilePayload(subjectID, f.ID)
			if err != nil {
				o.log.Warn("export: payload unavailable, skipping file", "file", f.ID, "error", err)
				continue
			}
			entries = append(entries, ExportEntry{
				Path:    path.Join(root, "Files", folder, f.Name),
				Content: payload,
			})
		}
	}

	return entries, nil
}

func renderNote(note store.Note) string {
	tags := "No tags"
	if len(note.Tags) > 0 {
		tags = strings.Join(note.Tags, ", ")
	}
	return fmt.Sprintf("Title: %s\nDate: %s\nTags: %s\n\nContent:\n%s\n",
		note.Title, note.Date, tags, note.Body)
}

func renderSubjectInfo(subject store.Subject) string {
	var b strings.Builder
	b.WriteString("Subject Information\n===================\n\n")
	fmt.Fprintf(&b, "Name: %s\n", subject.Name)
	fmt.Fprintf(&b, "Code: %s\n", orNA(subject.Code))
	fmt.Fprintf(&b, "Professor: %s\n", orNA(subject.Professor))
	fmt.Fprintf(&b, "Description: %s\n\n", orNA(subject.Description))
	fmt.Fprintf(&b, "Created: %s\n\n", subject.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Notes: %d\n", len(subject.Notes))
	fmt.Fprintf(&b, "Total Files: %d\n", len(subject.Files))
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// sanitizeName keeps letters and digits and replaces everything else with
// underscores, so note titles and subject names are safe path segments.
func sanitizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
