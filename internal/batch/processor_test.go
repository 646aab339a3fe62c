package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/models"
	"fjacquet/docfields/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor classifies by file name and fails for names containing "bad".
type fakeExtractor struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (models.ExtractedRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()

	name := filepath.Base(path)
	switch {
	case strings.Contains(name, "bad"):
		return nil, parsererror.ErrNoText
	case strings.HasPrefix(name, "dc"):
		return models.EmptyRecord(models.DeliveryChallan), nil
	default:
		return models.EmptyRecord(models.Invoice), nil
	}
}

func TestProcessFiles(t *testing.T) {
	files := []string{"dc1.pdf", "inv1.pdf", "bad.pdf", "dc2.pdf"}
	extractor := &fakeExtractor{}

	results := NewProcessor(extractor, 2, logging.NewMockLogger()).ProcessFiles(context.Background(), files)

	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, files[i], r.File)
	}
	assert.Equal(t, "Delivery Challan", results[0].Record.String(models.KeyDocumentType))
	assert.ErrorIs(t, results[2].Err, parsererror.ErrNoText)
	assert.Equal(t, models.EmptyRecord(models.Unknown), results[2].Record)
	assert.Len(t, extractor.calls, 4)
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"dc1.pdf", "inv1.pdf", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0600))
	}

	results, err := NewProcessor(&fakeExtractor{}, 4, logging.NewMockLogger()).ProcessDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestProcessDirectory_NoPDFs(t *testing.T) {
	_, err := NewProcessor(&fakeExtractor{}, 1, logging.NewMockLogger()).ProcessDirectory(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestGroupByDocumentTypeAndSummarize(t *testing.T) {
	results := []FileResult{
		{File: "a.pdf", Record: models.EmptyRecord(models.Invoice)},
		{File: "b.pdf", Record: models.EmptyRecord(models.DeliveryChallan)},
		{File: "c.pdf", Record: models.EmptyRecord(models.Invoice)},
		{File: "d.pdf", Record: models.EmptyRecord(models.Unknown), Err: parsererror.ErrNoText},
	}

	groups := GroupByDocumentType(results)
	assert.Equal(t, []Group{
		{DocumentType: "Delivery Challan", Files: []string{"b.pdf"}},
		{DocumentType: "Invoice", Files: []string{"a.pdf", "c.pdf"}},
		{DocumentType: "Unknown Document", Files: []string{"d.pdf"}},
	}, groups)

	s := Summarize(results)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 2, s.ByType["Invoice"])
}
