package organizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Heymathi/Academic-notes-management-system/internal/store"
)

func searchSubject() store.Subject {
	return store.Subject{
		Notes: []store.Note{
			{ID: 1, Title: "TCP Handshake", Body: "SYN, SYN-ACK, ACK ordering.", Tags: []string{"networks"}},
			{ID: 2, Title: "Sorting", Body: "Quicksort average case.", Tags: []string{"algorithms", "exam"}},
			{ID: 3, Title: "Congestion Control", Body: "TCP Reno vs Cubic.", Tags: []string{"networks", "exam"}},
		},
	}
}

func TestSearchNotesSingleTerm(t *testing.T) {
	got := SearchNotes(searchSubject(), "tcp")
	assert.Equal(t, []int64{1, 3}, noteIDs(got))
}

func TestSearchNotesMatchesTags(t *testing.T) {
	got := SearchNotes(searchSubject(), "exam")
	assert.Equal(t, []int64{2, 3}, noteIDs(got))
}

func TestSearchNotesAllTermsRequired(t *testing.T) {
	got := SearchNotes(searchSubject(), "tcp exam")
	assert.Equal(t, []int64{3}, noteIDs(got))
}

func TestSearchNotesCaseInsensitive(t *testing.T) {
	got := SearchNotes(searchSubject(), "QUICKSORT")
	assert.Equal(t, []int64{2}, noteIDs(got))
}

func TestSearchNotesEmptyQueryReturnsAll(t *testing.T) {
	got := SearchNotes(searchSubject(), "   ")
	assert.Len(t, got, 3)
}

func TestSearchNotesNoMatch(t *testing.T) {
	assert.Empty(t, SearchNotes(searchSubject(), "thermodynamics"))
}

func noteIDs(notes []store.Note) []int64 {
	ids := make([]int64, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}
