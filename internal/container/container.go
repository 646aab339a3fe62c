// Package container provides dependency injection for the application.
// It wires the extraction pipeline and its collaborators from configuration.
package container

import (
	"fmt"
	"time"

	"fjacquet/docfields/internal/batch"
	"fjacquet/docfields/internal/cache"
	"fjacquet/docfields/internal/classifier"
	"fjacquet/docfields/internal/config"
	"fjacquet/docfields/internal/fields"
	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/ocr"
	"fjacquet/docfields/internal/pdftext"
	"fjacquet/docfields/internal/pipeline"
	"fjacquet/docfields/internal/server"
	"fjacquet/docfields/internal/store"
)

// Container holds all application dependencies.
// Everything is created once in NewContainer and shared by the commands.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	ocr      *ocr.Normalizer
	cascade  *fields.Cascade
	pipeline *pipeline.Pipeline
	cache    *cache.ResultCache
}

// NewContainer creates a new dependency injection container with all
// dependencies wired from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return newContainer(cfg, logger)
}

// NewContainerWithLogger is NewContainer with an injected logger, used by tests.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return newContainer(cfg, logging.OrDefault(logger))
}

func newContainer(cfg *config.Config, logger logging.Logger) (*Container, error) {
	vocab, err := store.NewVocabularyStore(cfg.Extraction.VocabularyFile, logger).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	normalizer := ocr.NewNormalizer(ocr.Config{
		Enabled:       cfg.OCR.Enabled,
		Binary:        cfg.OCR.Binary,
		Language:      cfg.OCR.Language,
		Timeout:       time.Duration(cfg.OCR.TimeoutSeconds) * time.Second,
		MaxConcurrent: cfg.OCR.MaxConcurrent,
	}, nil, logger)

	limits := fields.DefaultThresholds()
	limits.SupplierMinLength = cfg.Extraction.SupplierMinLength
	limits.SupplierLetterRun = cfg.Extraction.SupplierLetterRun
	limits.CustomerMinLength = cfg.Extraction.CustomerMinLength
	limits.DispatchMinLength = cfg.Extraction.DispatchMinLength
	limits.MaxContacts = cfg.Extraction.MaxContacts
	cascade := fields.New(vocab.Fields, limits, logger)

	p := pipeline.New(pipeline.Options{
		Reader:          pdftext.NewLedongthucReader(),
		OCR:             normalizer,
		Classifier:      classifier.New(vocab.Rules),
		Cascade:         cascade,
		MinCharsPerPage: cfg.OCR.MinCharsPerPage,
		WorkDir:         cfg.OCR.WorkDir,
		Logger:          logger,
	})

	var resultCache *cache.ResultCache
	if cfg.Cache.Enabled {
		resultCache = cache.New(
			time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
			time.Duration(cfg.Cache.CleanupMinutes)*time.Minute,
		)
	}

	logger.Debug("Container initialized",
		logging.Field{Key: "ocr_enabled", Value: normalizer.Enabled()},
		logging.Field{Key: "cache_enabled", Value: resultCache != nil})

	return &Container{
		logger:   logger,
		config:   cfg,
		ocr:      normalizer,
		cascade:  cascade,
		pipeline: p,
		cache:    resultCache,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetPipeline returns the shared extraction pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// GetOCR returns the OCR normalizer.
func (c *Container) GetOCR() *ocr.Normalizer {
	return c.ocr
}

// GetCache returns the result cache, or nil when caching is disabled.
func (c *Container) GetCache() *cache.ResultCache {
	return c.cache
}

// NewServer creates an HTTP server backed by the container's pipeline and cache.
func (c *Container) NewServer() *server.Server {
	return server.NewServer(c.pipeline, c.cache, c.config.Server, c.logger)
}

// NewBatchProcessor creates a batch processor. Non-positive workers uses
// the configured batch worker count.
func (c *Container) NewBatchProcessor(workers int) *batch.Processor {
	if workers <= 0 {
		workers = c.config.Batch.Workers
	}
	return batch.NewProcessor(c.pipeline, workers, c.logger)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	if c.cache != nil {
		c.cache.Clear()
	}
	c.logger.Debug("Container closed")
	return nil
}
