// Package shell provides the shell command runner adapter.
package shell

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"go.trai.ch/mill/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new shell Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes the command with the inherited environment plus the given
// extra entries, capturing stdout as the command's result. Stderr is routed
// to the logger.
func (r *Runner) Run(ctx context.Context, command []string, env []string) ([]byte, error) {
	if len(command) == 0 {
		return nil, zerr.New("empty command")
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...) //nolint:gosec // user provided command
	cmd.Env = append(os.Environ(), env...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &logWriter{logger: r.logger}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return nil, zerr.With(zerr.With(zerr.Wrap(err, "command failed"),
			"command", command[0]),
			"exit_code", exitCode)
	}

	return stdout.Bytes(), nil
}

// logWriter forwards a process stream to the logger line by line.
type logWriter struct {
	logger ports.Logger
	buf    bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line, keep it buffered until the next write.
			w.buf.WriteString(line)
			break
		}
		w.logger.Warn(line[:len(line)-1])
	}
	return len(p), nil
}
