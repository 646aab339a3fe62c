// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/docfields/internal/config"
	"fjacquet/docfields/internal/container"
	"fjacquet/docfields/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.GetLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "docfields",
		Short: "A CLI tool to extract structured fields from PDF invoices and delivery challans.",
		Long: `docfields is a CLI tool that extracts structured fields from PDF invoices and
delivery challans. Scanned documents are made searchable with OCR before the
text is classified and every field is pulled out by a cascade of labelled patterns.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to docfields!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initContainer(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				if err := appContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
	}

	// SharedFlags holds the common input/output flags
	SharedFlags = CommonFlags{}

	configFile string
	logLevel   string
	logFormat  string
	noOCR      bool

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default stdout)")
	Cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $HOME/.docfields/config.yaml)")
	Cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().BoolVar(&noOCR, "no-ocr", false, "Disable the OCR fallback for scanned PDFs")
}

// initContainer loads configuration, applies flag overrides and builds the
// dependency container.
func initContainer(cmd *cobra.Command) error {
	cfg, err := config.InitializeConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlagOverrides(cfg)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	SetContainer(c)

	Log.Debug("Configuration loaded",
		logging.Field{Key: "command", Value: cmd.Name()},
		logging.Field{Key: "ocr_enabled", Value: cfg.OCR.Enabled})
	return nil
}

// applyFlagOverrides lets command-line flags win over file and environment.
func applyFlagOverrides(cfg *config.Config) {
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if noOCR {
		cfg.OCR.Enabled = false
	}
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer replaces the shared container and logger.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}
