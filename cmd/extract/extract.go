// Package extract implements the single-file extract command
package extract

import (
	"context"
	"fmt"
	"io"

	"fjacquet/docfields/cmd/common"
	"fjacquet/docfields/cmd/root"
	"fjacquet/docfields/internal/export"
	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/models"

	"github.com/spf13/cobra"
)

var (
	format      string
	requestType string
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract fields from a single PDF",
	Long: `Extract structured fields from a single PDF invoice or delivery challan.

The document type is detected from its text. When nothing can be extracted the
empty structure for --type is written instead, so the output shape never changes.

Example:
  docfields extract -i invoice.pdf -o invoice.json
  docfields extract -i scan.pdf --type delivery_challan --format yaml`,
	RunE: extractFunc,
}

func init() {
	Cmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml)")
	Cmd.Flags().StringVar(&requestType, "type", "", "Document type used for the empty structure (delivery_challan, invoice, tax_invoice)")
}

func extractFunc(cmd *cobra.Command, args []string) error {
	inputFile := root.SharedFlags.Input
	if inputFile == "" {
		return fmt.Errorf("input file must be specified with -i")
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if f != export.FormatJSON && f != export.FormatYAML {
		return fmt.Errorf("extract supports json or yaml output, got %q", format)
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	return Run(cmd.Context(), appContainer.GetPipeline(), Options{
		Input:     inputFile,
		Output:    root.SharedFlags.Output,
		Format:    f,
		Requested: models.ParseRequestedType(requestType),
	}, cmd.OutOrStdout(), appContainer.GetLogger())
}

// Options are the resolved extract flags.
type Options struct {
	Input     string
	Output    string
	Format    export.Format
	Requested models.DocumentType
}

// Run extracts opts.Input and writes the record to opts.Output or stdout.
func Run(ctx context.Context, ex common.Extractor, opts Options, stdout io.Writer, log logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rec := common.ExtractFile(ctx, ex, opts.Input, opts.Requested, log)
	return common.WriteOutput(opts.Output, stdout, func(w io.Writer) error {
		return export.WriteRecord(w, rec, opts.Format)
	}, log)
}
