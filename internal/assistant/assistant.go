// Package assistant orchestrates subject analysis: extraction, then either
// local summarization or remote analysis, with progress reporting and a
// phase state machine guarding concurrent runs. It also answers simple
// study questions with canned, subject-aware replies.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Heymathi/Academic-notes-management-system/internal/analyze"
	"github.com/Heymathi/Academic-notes-management-system/internal/extract"
	"github.com/Heymathi/Academic-notes-management-system/internal/organizer"
	"github.com/Heymathi/Academic-notes-management-system/internal/progress"
	"github.com/Heymathi/Academic-notes-management-system/internal/store"
	"github.com/Heymathi/Academic-notes-management-system/internal/summarize"
)

// Phase tracks where an analysis run currently is. A new run may only
// start from Idle, Done or Failed.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseExtracting
	PhaseSummarizing
	PhaseAwaitingRemote
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExtracting:
		return "extracting"
	case PhaseSummarizing:
		return "summarizing"
	case PhaseAwaitingRemote:
		return "awaiting-remote"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrAnalysisBusy is returned when Analyze is called while a run is in
// flight.
var ErrAnalysisBusy = errors.New("assistant: analysis already in progress")

// NoTextReply is the terminal reply when extraction produced nothing.
const NoTextReply = "No text found in files; try uploading PDFs or images with text."

// Assistant drives analysis runs and canned replies for one organizer.
type Assistant struct {
	org      *organizer.Organizer
	pipeline *extract.Pipeline
	gateway  *analyze.Gateway
	rep      *progress.Reporter
	log      *slog.Logger

	mu    sync.Mutex
	phase Phase
}

// New wires an assistant. gateway may be nil or unconfigured, in which
// case every run uses local summarization; rep may be nil.
func New(org *organizer.Organizer, pipeline *extract.Pipeline, gateway *analyze.Gateway, rep *progress.Reporter, log *slog.Logger) *Assistant {
	if rep == nil {
		rep = progress.NewReporter(nil)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Assistant{
		org:      org,
		pipeline: pipeline,
		gateway:  gateway,
		rep:      rep,
		log:      log,
	}
}

// Phase returns the current analysis phase.
func (a *Assistant) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

func (a *Assistant) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.phase {
	case PhaseIdle, PhaseDone, PhaseFailed:
		a.phase = PhaseExtracting
		return nil
	default:
		return ErrAnalysisBusy
	}
}

func (a *Assistant) setPhase(p Phase) {
	a.mu.Lock()
	a.phase = p
	a.mu.Unlock()
}

// Analyze runs the full pipeline for one subject and returns the analysis
// message. The subject is resolved fresh from the catalog at the start of
// the run. Remote failure leaves the assistant in PhaseFailed but ready
// for the next run.
func (a *Assistant) Analyze(ctx context.Context, subjectID int64) (string, error) {
	if err := a.begin(); err != nil {
		return "", err
	}

	subject, err := a.org.Subject(subjectID)
	if err != nil {
		a.setPhase(PhaseFailed)
		return "", fmt.Errorf("assistant: resolve subject: %w", err)
	}

	a.rep.Show("Extracting text from files...")
	a.rep.Update(10)
	text := a.pipeline.ExtractSubject(subject, a.org, a.rep)
	a.rep.Update(50)

	if text == "" {
		a.rep.Hide()
		a.setPhase(PhaseDone)
		return NoTextReply, nil
	}

	if a.gateway == nil || !a.gateway.Configured() {
		return a.analyzeLocal(text)
	}
	return a.analyzeRemote(ctx, subject.Name, text)
}

func (a *Assistant) analyzeLocal(text string) (string, error) {
	a.setPhase(PhaseSummarizing)
	a.rep.Show("Running local summarization...")
	a.rep.Update(75)
	result := summarize.Analyze(text)
	a.rep.Update(100)
	a.rep.Hide()
	a.setPhase(PhaseDone)
	return result, nil
}

func (a *Assistant) analyzeRemote(ctx context.Context, subjectName, text string) (string, error) {
	a.setPhase(PhaseAwaitingRemote)
	a.rep.Show("Sending text to LLM for analysis...")
	a.rep.Update(60)

	result, err := a.gateway.Analyze(ctx, subjectName, text)
	if err != nil {
		a.rep.Hide()
		a.setPhase(PhaseFailed)
		a.log.Warn("remote analysis failed", "subject", subjectName, "error", err)
		return "", fmt.Errorf("assistant: remote analysis: %w", err)
	}

	a.rep.Update(80)
	a.rep.Update(100)
	a.rep.Hide()
	a.setPhase(PhaseDone)
	return result, nil
}

// SubjectOverview summarizes a subject's contents: counts, leading note
// titles and file names, and study suggestions.
func SubjectOverview(subject store.Subject) string {
	if len(subject.Notes) == 0 && len(subject.Files) == 0 {
		return "No notes or files found. Start by adding notes or uploading PDFs/images/videos."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d note(s) and %d file(s).\n", len(subject.Notes), len(subject.Files))

	if len(subject.Notes) > 0 {
		b.WriteString("Top notes:\n")
		for i, n := range subject.Notes {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "- %s\n", n.Title)
		}
	}
	if len(subject.Files) > 0 {
		b.WriteString("Top files:\n")
		for i, f := range subject.Files {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "- %s\n", f.Name)
		}
	}

	b.WriteString("\nSuggestions:\n" +
		"- Merge short notes on the same topic into one document.\n" +
		"- Use the export to keep a backup of subject data.\n" +
		"- Remove duplicate or outdated files.\n" +
		"- Tag notes with keywords for easier search.")
	return b.String()
}

// ReplyForQuery routes a free-text question to a canned reply, falling
// back to the subject overview. hasSubject distinguishes "no subject
// selected" from an empty subject.
func ReplyForQuery(query string, subject store.Subject, hasSubject bool) string {
	low := strings.ToLower(query)

	if !hasSubject {
		if strings.Contains(low, "how") || strings.Contains(low, "start") || strings.Contains(low, "help") {
			return "Select a subject and run Analyze, or ask a question like \"summarize notes\"."
		}
		return "Please select a subject to let me use its notes and files when answering."
	}

	switch {
	case strings.Contains(low, "summarize"), strings.Contains(low, "summary"):
		return SubjectOverview(subject)
	case strings.Contains(low, "clear"), strings.Contains(low, "delete"), strings.Contains(low, "remove"):
		return "To clear notes: open the subject, delete notes you no longer need, or export a backup first."
	case strings.Contains(low, "justify"), strings.Contains(low, "explain"):
		return "I can suggest why a note or file is relevant. Try asking: \"Why is [note title] important?\" after selecting the subject."
	default:
		return SubjectOverview(subject)
	}
}
