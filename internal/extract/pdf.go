package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Heymathi/Academic-notes-management-system/internal/store"
)

const (
	// DefaultPageCap bounds how many pages of one document are extracted.
	DefaultPageCap = 100
	// MinPageTextLen is the noise filter: pages whose trimmed text is
	// shorter are treated as blank or scanned and skipped.
	MinPageTextLen = 20
)

// PDFExtractor extracts text page by page from PDF payloads.
type PDFExtractor struct {
	PageCap      int
	MinPageChars int
}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{PageCap: DefaultPageCap, MinPageChars: MinPageTextLen}
}

func (e *PDFExtractor) Extract(file store.File, payload []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", file.Name, err)
	}

	total := reader.NumPage()
	if total > e.PageCap {
		total = e.PageCap
	}

	pages := make([]string, total)
	for n := 1; n <= total; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// One bad page does not fail the document.
			continue
		}
		pages[n-1] = text
	}

	return formatDocument(file.Name, pages, e.MinPageChars), nil
}

// formatDocument renders extracted pages with [Page N] markers under a
// Document header. A page is kept iff its trimmed text reaches minChars;
// markers are only emitted for kept pages, and a document with no kept
// pages yields nothing.
func formatDocument(name string, pages []string, minChars int) string {
	var b strings.Builder
	kept := 0
	for i, text := range pages {
		if len(strings.TrimSpace(text)) < minChars {
			continue
		}
		fmt.Fprintf(&b, "\n[Page %d]\n%s", i+1, text)
		kept++
	}
	if kept == 0 {
		return ""
	}
	return "Document: " + name + "\n" + b.String()
}
