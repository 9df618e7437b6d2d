package summarize

import (
	"strings"

	"github.com/orsinium-labs/stopwords"
)

// MaxTags caps the suggestion list for a note.
const MaxTags = 5

var english = stopwords.MustGet("en")

// SuggestTags proposes tags for a note from its title and body: normalized
// tokens with stopwords removed, ranked by frequency with title tokens
// counted twice. Ties keep first-seen order.
func SuggestTags(title, body string) []string {
	counts := make(map[string]int)
	var order []string

	score := func(text string, weight int) {
		for _, raw := range strings.Fields(strings.ToLower(text)) {
			w := nonAlnum.ReplaceAllString(raw, "")
			if len(w) < minKeywordLen || english.Contains(w) {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w] += weight
		}
	}
	score(title, 2)
	score(body, 1)

	sorted := make([]string, len(order))
	copy(sorted, order)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && counts[sorted[j]] > counts[sorted[j-1]]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	if len(sorted) > MaxTags {
		sorted = sorted[:MaxTags]
	}
	return sorted
}
