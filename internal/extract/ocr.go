package extract

import (
	"fmt"
	"math"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/Heymathi/Academic-notes-management-system/internal/store"
)

// DefaultOCRLanguage is the fixed recognition profile.
const DefaultOCRLanguage = "eng"

// OCRExtractor runs optical character recognition on image payloads with
// automatic page segmentation.
type OCRExtractor struct {
	Language string
}

func NewOCRExtractor(language string) *OCRExtractor {
	if language == "" {
		language = DefaultOCRLanguage
	}
	return &OCRExtractor{Language: language}
}

func (e *OCRExtractor) Extract(file store.File, payload []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Language); err != nil {
		return "", fmt.Errorf("ocr %s: set language: %w", file.Name, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", fmt.Errorf("ocr %s: set segmentation: %w", file.Name, err)
	}
	if err := client.SetImageFromBytes(payload); err != nil {
		return "", fmt.Errorf("ocr %s: load image: %w", file.Name, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr %s: recognize: %w", file.Name, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	return formatImage(file.Name, meanConfidence(client), text), nil
}

// meanConfidence averages per-word recognition confidence; 0 when the
// engine reports no words.
func meanConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, box := range boxes {
		sum += box.Confidence
	}
	return sum / float64(len(boxes))
}

func formatImage(name string, confidence float64, text string) string {
	return fmt.Sprintf("Image: %s (confidence: %.0f%%)\n%s", name, math.Round(confidence), text)
}
