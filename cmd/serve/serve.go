// Package serve implements the HTTP API command
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/docfields/cmd/root"
	"fjacquet/docfields/internal/logging"

	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long in-flight requests may take after a signal.
const shutdownTimeout = 30 * time.Second

var (
	host string
	port int
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the document extraction HTTP API",
	Long: `Run the document extraction HTTP API.

Routes:
  GET  /health           liveness check
  POST /extract-dc       multipart field "file", delivery challan
  POST /extract-invoice  multipart field "file", invoice

Example:
  docfields serve --host 127.0.0.1 --port 8080`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "Listen address (default from server.host)")
	Cmd.Flags().IntVar(&port, "port", 0, "Listen port (default from server.port)")
}

// Server is the lifecycle of the HTTP server. *server.Server implements it.
type Server interface {
	Start() error
	Stop(ctx context.Context) error
}

func serveFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	cfg := appContainer.GetConfig()
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		if port < 1 || port > 65535 {
			return fmt.Errorf("port must be between 1 and 65535, got: %d", port)
		}
		cfg.Server.Port = port
	}

	WarnIfOCRDisabled(appContainer.GetOCR().Enabled(), appContainer.GetLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, appContainer.NewServer(), shutdownTimeout, appContainer.GetLogger())
}

// WarnIfOCRDisabled logs that scanned uploads cannot be read without OCR.
func WarnIfOCRDisabled(ocrEnabled bool, log logging.Logger) {
	if !ocrEnabled {
		logging.OrDefault(log).Warn("OCR disabled, scanned uploads will return empty records")
	}
}

// Run starts srv and blocks until ctx is cancelled or the server fails.
// On cancellation the server is shut down within timeout.
func Run(ctx context.Context, srv Server, timeout time.Duration, log logging.Logger) error {
	log = logging.OrDefault(log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
