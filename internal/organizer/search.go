package organizer

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/Heymathi/Academic-notes-management-system/internal/store"
)

// SearchNotes returns the notes of a subject matching every whitespace
// separated term of query, case-insensitively, across title, body and tags.
// Notes come back in stored order. An empty query matches everything.
func SearchNotes(subject store.Subject, query string) []store.Note {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return subject.Notes
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.StandardMatch,
	})
	ac := builder.Build(terms)

	var out []store.Note
	for _, note := range subject.Notes {
		haystack := note.Title + "\n" + note.Body + "\n" + strings.Join(note.Tags, "\n")
		if matchesAllTerms(ac, haystack, len(terms)) {
			out = append(out, note)
		}
	}
	return out
}

func matchesAllTerms(ac ahocorasick.AhoCorasick, haystack string, termCount int) bool {
	seen := make(map[int]bool, termCount)
	for _, m := range ac.FindAll(haystack) {
		seen[m.Pattern()] = true
		if len(seen) == termCount {
			return true
		}
	}
	return len(seen) == termCount
}
