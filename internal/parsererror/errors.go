// Package parsererror defines the error taxonomy of the extraction pipeline.
// Input errors and total extraction failures surface as these types; page and
// field misses are absorbed inside the pipeline and never reach callers.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoText is returned when no text could be obtained from a document,
// neither from its native text layer nor through OCR.
var ErrNoText = errors.New("no text extracted from document")

// ErrOCRDisabled is returned by the OCR normalizer when OCR is switched off.
var ErrOCRDisabled = errors.New("ocr is disabled")

// ParseError represents an unexpected failure inside an extraction stage.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input that is missing, unreadable or not a PDF.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
	Err                  error
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// DataExtractionError represents a document that was readable but from which
// no usable content could be extracted.
type DataExtractionError struct {
	FilePath       string
	FieldName      string
	RawDataSnippet string // Optional: a snippet of the raw data where extraction failed
	Reason         string
	Msg            string
	Err            error
}

func (e *DataExtractionError) Error() string {
	if e.RawDataSnippet != "" {
		return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s. Reason: %s. Raw data snippet: '%s'",
			e.FilePath, e.FieldName, e.Msg, e.Reason, e.RawDataSnippet)
	}
	return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s. Reason: %s",
		e.FilePath, e.FieldName, e.Msg, e.Reason)
}

func (e *DataExtractionError) Unwrap() error {
	return e.Err
}

// OCRError represents a failed or timed-out OCR normalization run.
type OCRError struct {
	InputPath string
	Stderr    string
	Err       error
}

func (e *OCRError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ocr failed for '%s': %v: %s", e.InputPath, e.Err, e.Stderr)
	}
	return fmt.Sprintf("ocr failed for '%s': %v", e.InputPath, e.Err)
}

func (e *OCRError) Unwrap() error {
	return e.Err
}
