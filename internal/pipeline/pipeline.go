// Package pipeline wires text resolution, OCR, classification and field
// extraction into the single Extract entry point.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/docfields/internal/classifier"
	"fjacquet/docfields/internal/fields"
	"fjacquet/docfields/internal/fileutils"
	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/models"
	"fjacquet/docfields/internal/normalizer"
	"fjacquet/docfields/internal/parsererror"
	"fjacquet/docfields/internal/pdftext"

	"github.com/google/uuid"
)

// OCR is the searchable-PDF step. *ocr.Normalizer implements it.
type OCR interface {
	Enabled() bool
	Normalize(ctx context.Context, in, out string) error
}

// Pipeline extracts a normalized record from a PDF. It keeps no state
// between calls and may be used from several goroutines at once.
type Pipeline struct {
	resolver   *pdftext.Resolver
	extractor  *pdftext.Extractor
	ocr        OCR
	classifier *classifier.Classifier
	cascade    *fields.Cascade
	workDir    string
	logger     logging.Logger
}

// Options holds the collaborators of a Pipeline. Nil fields get defaults.
type Options struct {
	Reader          pdftext.PageReader
	OCR             OCR
	Classifier      *classifier.Classifier
	Cascade         *fields.Cascade
	MinCharsPerPage int
	// WorkDir receives temporary OCR output. Empty means os.TempDir().
	WorkDir string
	Logger  logging.Logger
}

// New creates a Pipeline from opts.
func New(opts Options) *Pipeline {
	logger := logging.OrDefault(opts.Logger)
	reader := opts.Reader
	if reader == nil {
		reader = pdftext.NewLedongthucReader()
	}
	cls := opts.Classifier
	if cls == nil {
		cls = classifier.New(nil)
	}
	cascade := opts.Cascade
	if cascade == nil {
		cascade = fields.NewDefault(logger)
	}
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &Pipeline{
		resolver:   pdftext.NewResolver(reader, opts.MinCharsPerPage, logger),
		extractor:  pdftext.NewExtractor(reader, logger),
		ocr:        opts.OCR,
		classifier: cls,
		cascade:    cascade,
		workDir:    workDir,
		logger:     logger,
	}
}

// Extract returns the normalized record for the PDF at path. A non-nil
// error means no record could be produced: callers substitute
// models.EmptyRecord. Panics inside extraction are returned as
// *parsererror.ParseError.
func (p *Pipeline) Extract(ctx context.Context, path string) (rec models.ExtractedRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = &parsererror.ParseError{Parser: "pipeline", Field: "extract", Value: path, Err: fmt.Errorf("panic: %v", r)}
			p.logger.WithError(err).Error("Extraction aborted",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	start := time.Now()
	text, err := p.documentText(ctx, path)
	if err != nil {
		p.logger.WithError(err).Error("Extraction failed",
			logging.Field{Key: logging.FieldFile, Value: path})
		return nil, err
	}

	rec = p.ExtractText(text)
	p.logger.Info("Extraction completed",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldDocumentType, Value: rec.String(models.KeyDocumentType)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return rec, nil
}

// ExtractText classifies text and runs the field cascade over it. Empty text
// yields the all-sentinel record for an unknown document.
func (p *Pipeline) ExtractText(text string) models.ExtractedRecord {
	docType := p.classifier.Classify(text)
	return normalizer.FromRecord(p.cascade.Extract(text, docType))
}

// Classify returns only the document type of the PDF at path.
func (p *Pipeline) Classify(ctx context.Context, path string) (models.DocumentType, error) {
	text, err := p.documentText(ctx, path)
	if err != nil {
		return models.Unknown, err
	}
	return p.classifier.Classify(text), nil
}

// documentText validates the input and returns its best available text,
// preferring an OCR'd copy when the native text layer is too sparse.
func (p *Pipeline) documentText(ctx context.Context, path string) (string, error) {
	if err := fileutils.SniffPDF(path); err != nil {
		return "", &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "PDF",
			Msg:            "file is missing, unreadable or not a PDF",
			Err:            err,
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	source := path
	if p.ocr != nil && p.ocr.Enabled() && p.resolver.NeedsOCR(path) {
		out := filepath.Join(p.workDir, uuid.NewString()+".pdf")
		defer fileutils.RemoveQuietly(out, p.logger)

		if err := p.ocr.Normalize(ctx, path, out); err != nil {
			if errors.Is(err, parsererror.ErrOCRDisabled) {
				p.logger.Debug("OCR disabled, using native text",
					logging.Field{Key: logging.FieldFile, Value: path})
			} else {
				p.logger.WithError(err).Warn("OCR failed, falling back to native text",
					logging.Field{Key: logging.FieldFile, Value: path})
			}
		} else {
			source = out
		}
	}

	text := p.extractor.ExtractText(source)
	if strings.TrimSpace(text) == "" && source != path {
		text = p.extractor.ExtractText(path)
	}
	if strings.TrimSpace(text) == "" {
		return "", &parsererror.DataExtractionError{
			FilePath:  path,
			FieldName: "text",
			Msg:       "no text extracted",
			Reason:    "text layer is empty and OCR produced nothing usable",
			Err:       parsererror.ErrNoText,
		}
	}
	return text, nil
}
