// Package main is the entry point for the mill pipeline runner.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/mill/cmd/mill/commands"
	"go.trai.ch/mill/internal/app"
	"go.trai.ch/mill/internal/core/domain"
	_ "go.trai.ch/mill/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrPipelineFailed) {
			// Task failures were already logged by the executor.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
