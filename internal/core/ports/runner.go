package ports

import "context"

// CommandRunner executes an external command and captures its stdout.
// The env entries are appended to the inherited environment in KEY=VALUE form.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	Run(ctx context.Context, command []string, env []string) ([]byte, error)
}
