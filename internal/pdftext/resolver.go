package pdftext

import (
	"unicode"

	"fjacquet/docfields/internal/logging"
)

// DefaultMinCharsPerPage is the average number of non-whitespace characters
// per page below which a document is treated as scanned.
const DefaultMinCharsPerPage = 30

// Resolver decides whether a PDF's native text layer is usable.
type Resolver struct {
	reader          PageReader
	minCharsPerPage int
	logger          logging.Logger
}

// NewResolver creates a Resolver. A non-positive threshold uses DefaultMinCharsPerPage.
func NewResolver(reader PageReader, minCharsPerPage int, logger logging.Logger) *Resolver {
	if minCharsPerPage <= 0 {
		minCharsPerPage = DefaultMinCharsPerPage
	}
	return &Resolver{
		reader:          reader,
		minCharsPerPage: minCharsPerPage,
		logger:          logging.OrDefault(logger),
	}
}

// NeedsOCR reports whether the document at path should be OCR'd. Any read
// failure, or a document with no pages, counts as needing OCR.
func (r *Resolver) NeedsOCR(path string) bool {
	pages, err := r.reader.ReadPages(path)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to read text layer, assuming OCR is needed",
			logging.Field{Key: logging.FieldFile, Value: path})
		return true
	}
	if len(pages) == 0 {
		return true
	}

	total := 0
	for _, p := range pages {
		total += countNonSpace(p.Text)
	}
	avg := float64(total) / float64(len(pages))

	r.logger.Debug("Measured text layer density",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldPages, Value: len(pages)},
		logging.Field{Key: logging.FieldCount, Value: total})

	return avg < float64(r.minCharsPerPage)
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
