package serve_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"fjacquet/docfields/cmd/serve"
	"fjacquet/docfields/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer blocks in Start until Stop is called.
type fakeServer struct {
	startErr error
	stopped  chan struct{}
	started  chan struct{}
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{
		startErr: startErr,
		stopped:  make(chan struct{}),
		started:  make(chan struct{}),
	}
}

func (f *fakeServer) Start() error {
	close(f.started)
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeServer) Stop(context.Context) error {
	close(f.stopped)
	return nil
}

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serve.Cmd.Use)
	assert.Contains(t, serve.Cmd.Long, "/extract-dc")
	assert.Contains(t, serve.Cmd.Long, "/extract-invoice")
	assert.NotNil(t, serve.Cmd.Flags().Lookup("host"))
	assert.NotNil(t, serve.Cmd.Flags().Lookup("port"))
}

func TestRun_GracefulShutdown(t *testing.T) {
	srv := newFakeServer(nil)
	ctx, cancel := context.WithCancel(context.Background())
	logger := logging.NewMockLogger()

	done := make(chan error, 1)
	go func() {
		done <- serve.Run(ctx, srv, time.Second, logger)
	}()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.True(t, logger.HasEntry("INFO", "Server stopped"))
}

func TestRun_StartFailure(t *testing.T) {
	boom := errors.New("address in use")
	err := serve.Run(context.Background(), newFakeServer(boom), time.Second, logging.NewMockLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestWarnIfOCRDisabled(t *testing.T) {
	logger := logging.NewMockLogger()
	serve.WarnIfOCRDisabled(true, logger)
	assert.Empty(t, logger.GetEntriesByLevel("WARN"))

	serve.WarnIfOCRDisabled(false, logger)
	assert.True(t, logger.HasEntry("WARN", "OCR disabled, scanned uploads will return empty records"))
}
