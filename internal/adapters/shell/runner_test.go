package shell_test

import (
	"context"
	"testing"

	"go.trai.ch/mill/internal/adapters/shell"
	"go.trai.ch/mill/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newRunner(t *testing.T) (*shell.Runner, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	logger := mocks.NewMockLogger(ctrl)
	return shell.NewRunner(logger), logger
}

func TestRunner_CapturesStdout(t *testing.T) {
	runner, _ := newRunner(t)

	out, err := runner.Run(context.Background(), []string{"sh", "-c", "printf hello"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "hello" {
		t.Errorf("expected stdout %q, got %q", "hello", string(out))
	}
}

func TestRunner_PassesEnvironment(t *testing.T) {
	runner, _ := newRunner(t)

	out, err := runner.Run(context.Background(),
		[]string{"sh", "-c", "printf '%s' \"$MILL_INPUT_0\""},
		[]string{"MILL_INPUT_0=42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "42" {
		t.Errorf("expected env value 42, got %q", string(out))
	}
}

func TestRunner_StderrGoesToLogger(t *testing.T) {
	runner, logger := newRunner(t)
	logger.EXPECT().Warn("something went sideways").Times(1)

	_, err := runner.Run(context.Background(),
		[]string{"sh", "-c", "echo 'something went sideways' >&2"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunner_FailureCarriesExitCode(t *testing.T) {
	runner, _ := newRunner(t)

	_, err := runner.Run(context.Background(), []string{"sh", "-c", "exit 3"}, nil)
	if err == nil {
		t.Fatal("expected error for failing command, got nil")
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if code, ok := meta["exit_code"].(int); !ok || code != 3 {
		t.Errorf("expected metadata exit_code=3, got %v", meta["exit_code"])
	}
}

func TestRunner_EmptyCommand(t *testing.T) {
	runner, _ := newRunner(t)

	if _, err := runner.Run(context.Background(), nil, nil); err == nil {
		t.Error("expected error for empty command, got nil")
	}
}

func TestRunner_ContextCancellation(t *testing.T) {
	runner, _ := newRunner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Run(ctx, []string{"sleep", "10"}, nil); err == nil {
		t.Error("expected error for cancelled context, got nil")
	}
}
