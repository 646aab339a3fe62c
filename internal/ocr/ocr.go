// Package ocr converts scanned PDFs into searchable PDFs by running an
// external OCR tool (ocrmypdf by default).
package ocr

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/parsererror"

	"golang.org/x/sync/semaphore"
)

// Config controls how the OCR tool is invoked.
type Config struct {
	Enabled       bool
	Binary        string
	Language      string
	Timeout       time.Duration
	MaxConcurrent int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		Binary:        "ocrmypdf",
		Language:      "eng",
		Timeout:       120 * time.Second,
		MaxConcurrent: 2,
	}
}

// Normalizer produces a searchable copy of a PDF. It never retries; callers
// fall back to the original document's native text when it fails.
type Normalizer struct {
	cfg    Config
	runner Runner
	sem    *semaphore.Weighted
	logger logging.Logger
}

// NewNormalizer creates a Normalizer. A nil runner uses ExecRunner.
func NewNormalizer(cfg Config, runner Runner, logger logging.Logger) *Normalizer {
	logger = logging.OrDefault(logger)
	def := DefaultConfig()
	if cfg.Binary == "" {
		cfg.Binary = def.Binary
	}
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = def.MaxConcurrent
	}
	if runner == nil {
		runner = NewExecRunner(logger)
	}
	return &Normalizer{
		cfg:    cfg,
		runner: runner,
		sem:    semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		logger: logger,
	}
}

// Enabled reports whether OCR runs at all.
func (n *Normalizer) Enabled() bool {
	return n.cfg.Enabled
}

// Args returns the command-line arguments used to OCR in into out.
func (n *Normalizer) Args(in, out string) []string {
	return []string{"-l", n.cfg.Language, "--deskew", "--optimize", "0", "--force-ocr", in, out}
}

// Normalize writes a searchable copy of in to out. Any partial output is
// removed on failure and the error is an *parsererror.OCRError.
func (n *Normalizer) Normalize(ctx context.Context, in, out string) error {
	if !n.cfg.Enabled {
		return parsererror.ErrOCRDisabled
	}

	if err := n.sem.Acquire(ctx, 1); err != nil {
		return &parsererror.OCRError{InputPath: in, Err: err}
	}
	defer n.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	start := time.Now()
	n.logger.Info("Running OCR",
		logging.Field{Key: logging.FieldInputFile, Value: in},
		logging.Field{Key: logging.FieldOutputFile, Value: out})

	_, stderr, err := n.runner.Run(ctx, n.cfg.Binary, n.Args(in, out)...)
	if err == nil {
		if _, statErr := os.Stat(out); statErr != nil {
			err = statErr
		}
	}
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			err = ctxErr
		}
		n.removePartial(out)
		return &parsererror.OCRError{
			InputPath: in,
			Stderr:    strings.TrimSpace(truncate(string(stderr), 2<<10)),
			Err:       err,
		}
	}

	n.logger.Info("OCR completed",
		logging.Field{Key: logging.FieldInputFile, Value: in},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return nil
}

func (n *Normalizer) removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		n.logger.WithError(err).Warn("Failed to remove partial OCR output",
			logging.Field{Key: logging.FieldFile, Value: path})
	}
}
