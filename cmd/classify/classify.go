// Package classify implements the classify command
package classify

import (
	"context"
	"fmt"
	"io"

	"fjacquet/docfields/cmd/root"
	"fjacquet/docfields/internal/fileutils"
	"fjacquet/docfields/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Print the document type of a PDF",
	Long: `Classify a PDF as a delivery challan, tax invoice or invoice without
extracting its fields.

Example:
  docfields classify -i document.pdf`,
	RunE: classifyFunc,
}

// Classifier returns the document type of a PDF. *pipeline.Pipeline implements it.
type Classifier interface {
	Classify(ctx context.Context, path string) (models.DocumentType, error)
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	inputFile := root.SharedFlags.Input
	if inputFile == "" {
		return fmt.Errorf("input file must be specified with -i")
	}
	if !fileutils.FileExists(inputFile) {
		return fmt.Errorf("input file not found: %s", inputFile)
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return Run(ctx, appContainer.GetPipeline(), inputFile, cmd.OutOrStdout())
}

// Run classifies inputFile and prints the type name.
func Run(ctx context.Context, c Classifier, inputFile string, stdout io.Writer) error {
	docType, err := c.Classify(ctx, inputFile)
	if err != nil {
		return fmt.Errorf("failed to classify %s: %w", inputFile, err)
	}
	_, err = fmt.Fprintln(stdout, docType.String())
	return err
}
