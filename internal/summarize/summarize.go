// Package summarize produces a local, offline digest of extracted text:
// a leading-sentence summary plus frequency-ranked keywords. It is the
// fallback analysis path when no remote endpoint is configured.
package summarize

import (
	"regexp"
	"strings"
)

const (
	// SummarySentences caps how many leading sentences form the summary.
	SummarySentences = 6
	// MaxKeywords caps the keyword list.
	MaxKeywords = 6
	// minKeywordLen drops short tokens before frequency ranking.
	minKeywordLen = 4

	// NoTextMessage is the terminal response when nothing was extracted.
	NoTextMessage = "No extractable text found."
)

var (
	sentenceSplit = regexp.MustCompile(`[.\n]+`)
	nonAlnum      = regexp.MustCompile(`[^a-z0-9]`)
)

// Summarize returns the first SummarySentences non-empty sentences joined
// with ". ", with a trailing "..." when sentences were cut off.
func Summarize(text string) string {
	var sentences []string
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return ""
	}

	truncated := len(sentences) > SummarySentences
	if truncated {
		sentences = sentences[:SummarySentences]
	}
	out := strings.Join(sentences, ". ")
	if truncated {
		out += "..."
	}
	return out
}

// Keywords ranks normalized tokens by frequency and returns the top
// MaxKeywords. Tokens are lowercased, stripped of non-alphanumerics, and
// dropped when shorter than minKeywordLen. Ties keep first-seen order.
func Keywords(text string) []string {
	counts := make(map[string]int)
	var order []string

	for _, raw := range strings.Fields(strings.ToLower(text)) {
		w := nonAlnum.ReplaceAllString(raw, "")
		if len(w) < minKeywordLen {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// Stable sort by descending count preserves first-seen order on ties.
	sorted := make([]string, len(order))
	copy(sorted, order)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && counts[sorted[j]] > counts[sorted[j-1]]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	if len(sorted) > MaxKeywords {
		sorted = sorted[:MaxKeywords]
	}
	return sorted
}

// Analyze renders the full local analysis block, or NoTextMessage when the
// input has no usable sentences.
func Analyze(text string) string {
	summary := Summarize(text)
	if summary == "" {
		return NoTextMessage
	}

	var b strings.Builder
	b.WriteString("Summary:\n")
	b.WriteString(summary)
	if kw := Keywords(text); len(kw) > 0 {
		b.WriteString("\n\nTop keywords: ")
		b.WriteString(strings.Join(kw, ", "))
	}
	return b.String()
}
