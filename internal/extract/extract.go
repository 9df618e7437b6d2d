// Package extract turns a subject's uploaded artifacts into one plain-text
// blob with per-file provenance headers, ready for summarization. Each file
// type has its own extraction strategy; a failing file is skipped, never
// fatal to the run.
package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Heymathi/Academic-notes-management-system/internal/progress"
	"github.com/Heymathi/Academic-notes-management-system/internal/store"
)

// The extraction phase owns the 10-50% slice of overall analysis progress.
const (
	phaseStart = 10
	phaseEnd   = 50
)

// PayloadSource fetches a file's payload; implemented by the organizer.
type PayloadSource interface {
	FilePayload(subjectID int64, fileID string) ([]byte, error)
}

// Extractor converts one file's payload into text. An empty result means
// the file contributes nothing, which is valid.
type Extractor interface {
	Extract(file store.File, payload []byte) (string, error)
}

// MetadataExtractor emits a file's name and description without touching
// the payload. Used for videos and unknown types.
type MetadataExtractor struct{}

func (MetadataExtractor) Extract(file store.File, _ []byte) (string, error) {
	return file.Name + ": " + file.Description, nil
}

// Pipeline dispatches files to per-type extractors. The table covers every
// FileType variant.
type Pipeline struct {
	extractors map[store.FileType]Extractor
	log        *slog.Logger
}

// NewPipeline builds a pipeline with the default extractor table: paginated
// text extraction for documents, OCR for images, metadata passthrough for
// the rest.
func NewPipeline(ocrLanguage string, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		extractors: map[store.FileType]Extractor{
			store.FileDocument: NewPDFExtractor(),
			store.FileImage:    NewOCRExtractor(ocrLanguage),
			store.FileVideo:    MetadataExtractor{},
			store.FileUnknown:  MetadataExtractor{},
		},
		log: log,
	}
}

// ExtractSubject walks the subject's files in upload order and concatenates
// every non-empty extraction result with a blank line between files. An
// empty return value means no extractable text, a valid terminal state.
// Progress is reported after each file, scaled linearly across the
// extraction phase; rep may be nil.
func (p *Pipeline) ExtractSubject(subject store.Subject, payloads PayloadSource, rep *progress.Reporter) string {
	total := len(subject.Files)
	var parts []string

	for i, file := range subject.Files {
		if rep != nil {
			rep.Show(fmt.Sprintf("Extracting text (%d/%d)...", i+1, total))
		}

		text, err := p.extractFile(subject.ID, file, payloads)
		if err != nil {
			p.log.Warn("extraction failed, skipping file", "file", file.Name, "type", file.Type, "error", err)
		} else if text != "" {
			parts = append(parts, text)
		}

		if rep != nil {
			rep.Update(phaseStart + ((i+1)*(phaseEnd-phaseStart))/total)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (p *Pipeline) extractFile(subjectID int64, file store.File, payloads PayloadSource) (string, error) {
	ext, ok := p.extractors[file.Type]
	if !ok {
		ext = MetadataExtractor{}
	}

	var payload []byte
	if needsPayload(file.Type) {
		var err error
		payload, err = payloads.FilePayload(subjectID, file.ID)
		if err != nil {
			return "", fmt.Errorf("load payload: %w", err)
		}
	}
	return safeExtract(ext, file, payload)
}

func needsPayload(t store.FileType) bool {
	return t == store.FileDocument || t == store.FileImage
}

// safeExtract converts extractor panics into per-file errors; a malformed
// document must not take down the whole run.
func safeExtract(ext Extractor, file store.File, payload []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extractor panic: %v", r)
		}
	}()
	return ext.Extract(file, payload)
}
