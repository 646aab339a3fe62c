package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"fjacquet/docfields/internal/logging"
)

// Runner executes external commands. Tests substitute a stub.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct {
	logger logging.Logger
}

// NewExecRunner creates an ExecRunner.
func NewExecRunner(logger logging.Logger) *ExecRunner {
	return &ExecRunner{logger: logging.OrDefault(logger)}
}

// Run executes name with args, killing the process when ctx is done.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		r.logger.WithError(err).Error("Command failed",
			logging.Field{Key: "cmd", Value: name},
			logging.Field{Key: "args", Value: strings.Join(args, " ")},
			logging.Field{Key: logging.FieldDuration, Value: dur.Milliseconds()},
			logging.Field{Key: "stderr", Value: truncate(errb.String(), 8<<10)})
	} else {
		r.logger.Debug("Command finished",
			logging.Field{Key: "cmd", Value: name},
			logging.Field{Key: logging.FieldDuration, Value: dur.Milliseconds()},
			logging.Field{Key: "stdout_bytes", Value: out.Len()})
	}

	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
