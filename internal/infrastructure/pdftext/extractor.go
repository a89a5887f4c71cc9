// Package pdftext extracts page-marked plain text from PDF documents.
package pdftext

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"NewspaperAnalyzer/internal/domain"
	"NewspaperAnalyzer/internal/ports"
)

// Extractor reads every page and prefixes it with "=== PAGE n ===".
type Extractor struct {
	logger *slog.Logger
}

var _ ports.TextExtractor = (*Extractor)(nil)

// NewExtractor builds an extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// PageMarker returns the header line written before page n.
func PageMarker(n int) string {
	return fmt.Sprintf("=== PAGE %d ===", n)
}

// Extract returns the text of all pages. Pages that fail to decode are
// logged and left empty; a document without any text is an error.
func (e *Extractor) Extract(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: pdf reader panicked: %v", domain.ErrExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %w", domain.ErrExtraction, err)
	}

	var (
		b     strings.Builder
		found bool
	)
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("page text not readable", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(content) != "" {
			found = true
		}

		b.WriteString(PageMarker(i))
		b.WriteString("\n")
		b.WriteString(content)
		b.WriteString("\n\n")
	}

	if !found {
		return "", fmt.Errorf("%w: no text in %d pages", domain.ErrExtraction, pages)
	}

	e.logger.Debug("pdf text extracted", "pages", pages, "chars", b.Len())
	return b.String(), nil
}
