// Package batch extracts records from many PDFs concurrently and groups the
// results by document type.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"fjacquet/docfields/internal/fileutils"
	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/models"
	"fjacquet/docfields/internal/worker"
)

// Extractor produces a record for a single PDF. *pipeline.Pipeline implements it.
type Extractor interface {
	Extract(ctx context.Context, path string) (models.ExtractedRecord, error)
}

// FileResult is the outcome for one input file. Record is always set; when
// Err is non-nil it holds the empty record.
type FileResult struct {
	File   string
	Record models.ExtractedRecord
	Err    error
}

// GetError implements worker.Result.
func (r FileResult) GetError() error {
	return r.Err
}

// Processor runs one extraction per worker.
type Processor struct {
	extractor Extractor
	pool      *worker.Pool
	logger    logging.Logger
}

// NewProcessor creates a Processor using at most workers goroutines.
func NewProcessor(extractor Extractor, workers int, logger logging.Logger) *Processor {
	return &Processor{
		extractor: extractor,
		pool:      worker.NewPool(workers),
		logger:    logging.OrDefault(logger),
	}
}

// Workers reports the concurrency limit.
func (p *Processor) Workers() int {
	return p.pool.Workers()
}

// ProcessDirectory extracts every PDF found under dir.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) ([]FileResult, error) {
	files, err := fileutils.ListPDFFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", dir)
	}
	return p.ProcessFiles(ctx, files), nil
}

// ProcessFiles extracts files concurrently and returns results in input order.
func (p *Processor) ProcessFiles(ctx context.Context, files []string) []FileResult {
	start := time.Now()
	p.logger.Info("Starting batch extraction",
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldWorkers, Value: p.pool.Workers()})

	jobs := make([]worker.Job, len(files))
	for i, f := range files {
		file := f
		jobs[i] = worker.JobFunc(func(ctx context.Context) worker.Result {
			return p.extractOne(ctx, file)
		})
	}

	raw := p.pool.Run(ctx, jobs)
	results := make([]FileResult, len(raw))
	for i, r := range raw {
		results[i] = r.(FileResult)
	}

	summary := Summarize(results)
	p.logger.Info("Batch extraction finished",
		logging.Field{Key: logging.FieldCount, Value: summary.Total},
		logging.Field{Key: "failed", Value: summary.Failed},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return results
}

func (p *Processor) extractOne(ctx context.Context, file string) FileResult {
	rec, err := p.extractor.Extract(ctx, file)
	if err != nil {
		p.logger.WithError(err).Warn("No record extracted, using empty record",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)})
		return FileResult{File: file, Record: models.EmptyRecord(models.Unknown), Err: err}
	}
	return FileResult{File: file, Record: rec}
}

// Group lists the files classified as one document type.
type Group struct {
	DocumentType string
	Files        []string
}

// GroupByDocumentType groups results by their document_type, sorted by type name.
// Files keep their input order within a group.
func GroupByDocumentType(results []FileResult) []Group {
	index := make(map[string]*Group)
	for _, r := range results {
		t := r.Record.String(models.KeyDocumentType)
		g, ok := index[t]
		if !ok {
			g = &Group{DocumentType: t}
			index[t] = g
		}
		g.Files = append(g.Files, r.File)
	}

	groups := make([]Group, 0, len(index))
	for _, g := range index {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].DocumentType < groups[j].DocumentType
	})
	return groups
}

// Summary counts batch outcomes.
type Summary struct {
	Total  int
	Failed int
	ByType map[string]int
}

// Summarize counts results per document type and failures.
func Summarize(results []FileResult) Summary {
	s := Summary{Total: len(results), ByType: make(map[string]int)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		}
		s.ByType[r.Record.String(models.KeyDocumentType)]++
	}
	return s
}
