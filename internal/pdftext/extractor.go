package pdftext

import (
	"strings"

	"fjacquet/docfields/internal/logging"
)

// Extractor concatenates the native text of every readable page.
type Extractor struct {
	reader PageReader
	logger logging.Logger
}

// NewExtractor creates an Extractor backed by reader.
func NewExtractor(reader PageReader, logger logging.Logger) *Extractor {
	return &Extractor{reader: reader, logger: logging.OrDefault(logger)}
}

// ExtractText returns the page texts of path joined by newlines in page
// order. Failed pages are skipped; an unopenable document yields "".
func (e *Extractor) ExtractText(path string) string {
	pages, err := e.reader.ReadPages(path)
	if err != nil {
		e.logger.WithError(err).Error("Failed to open PDF for text extraction",
			logging.Field{Key: logging.FieldFile, Value: path})
		return ""
	}

	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.Err != nil {
			e.logger.WithError(p.Err).Warn("Skipping unreadable page",
				logging.Field{Key: logging.FieldFile, Value: path},
				logging.Field{Key: logging.FieldPage, Value: p.Number})
			continue
		}
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}
