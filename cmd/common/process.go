// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/docfields/internal/fileutils"
	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/models"
)

// Extractor produces a record for a PDF on disk. *pipeline.Pipeline implements it.
type Extractor interface {
	Extract(ctx context.Context, path string) (models.ExtractedRecord, error)
}

// ExtractFile runs the extractor on inputFile. When nothing can be extracted
// it logs the cause and returns the empty record for the requested type.
func ExtractFile(ctx context.Context, ex Extractor, inputFile string, requested models.DocumentType, log logging.Logger) models.ExtractedRecord {
	log = logging.OrDefault(log)
	rec, err := ex.Extract(ctx, inputFile)
	if err != nil {
		log.WithError(err).Warn("No record extracted, writing empty structure",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(inputFile)},
			logging.Field{Key: logging.FieldDocumentType, Value: requested.String()})
		return models.EmptyRecord(requested)
	}
	return rec
}

// WriteOutput calls write with outputFile opened for writing, or with stdout
// when outputFile is empty. Parent directories are created as needed.
func WriteOutput(outputFile string, stdout io.Writer, write func(io.Writer) error, log logging.Logger) error {
	if outputFile == "" {
		return write(stdout)
	}

	log = logging.OrDefault(log)
	file, err := fileutils.CreateFile(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close output file")
		}
	}()

	if err := write(file); err != nil {
		return err
	}
	log.Info("Output written", logging.Field{Key: logging.FieldFile, Value: outputFile})
	return nil
}
