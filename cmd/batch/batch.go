// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/docfields/cmd/common"
	"fjacquet/docfields/cmd/root"
	"fjacquet/docfields/internal/batch"
	"fjacquet/docfields/internal/export"
	"fjacquet/docfields/internal/logging"

	"github.com/spf13/cobra"
)

var (
	format  string
	workers int
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process PDFs from a directory",
	Long: `Batch process every PDF in an input directory and write all records to one file.

Files are extracted concurrently. A file that yields nothing still appears in the
output with the empty structure and its error message.

Example:
  docfields batch -i input_dir/ -o records.xlsx --format xlsx --workers 8`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&format, "format", "", "Output format (json, yaml, csv, xlsx; default from batch.format)")
	Cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent extractions (default from batch.workers)")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	if inputDir == "" {
		return fmt.Errorf("input directory must be specified with -i")
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	name := format
	if name == "" {
		name = appContainer.GetConfig().Batch.Format
	}
	f, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return Run(ctx, appContainer.NewBatchProcessor(workers), Options{
		InputDir: inputDir,
		Output:   root.SharedFlags.Output,
		Format:   f,
	}, cmd.OutOrStdout(), appContainer.GetLogger())
}

// Options are the resolved batch flags.
type Options struct {
	InputDir string
	Output   string
	Format   export.Format
}

// Run processes every PDF in opts.InputDir and writes one entry per file.
func Run(ctx context.Context, p *batch.Processor, opts Options, stdout io.Writer, log logging.Logger) error {
	log = logging.OrDefault(log)
	if opts.Format == export.FormatXLSX && opts.Output == "" {
		return fmt.Errorf("xlsx output requires -o")
	}

	results, err := p.ProcessDirectory(ctx, opts.InputDir)
	if err != nil {
		return fmt.Errorf("error during batch extraction: %w", err)
	}

	for _, g := range batch.GroupByDocumentType(results) {
		log.Info("Document group",
			logging.Field{Key: logging.FieldDocumentType, Value: g.DocumentType},
			logging.Field{Key: logging.FieldCount, Value: len(g.Files)})
	}

	entries := make([]export.Entry, len(results))
	for i, r := range results {
		entries[i] = export.Entry{File: filepath.Base(r.File), Record: r.Record}
		if r.Err != nil {
			entries[i].Error = r.Err.Error()
		}
	}

	if err := common.WriteOutput(opts.Output, stdout, func(w io.Writer) error {
		return export.WriteEntries(w, entries, opts.Format)
	}, log); err != nil {
		return err
	}

	summary := batch.Summarize(results)
	log.Info(fmt.Sprintf("Batch processing completed. %d files, %d without a record.", summary.Total, summary.Failed))
	return nil
}
