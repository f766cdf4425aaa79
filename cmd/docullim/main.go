// Package main is the entry point for the docullim CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/docullim/cmd/docullim/commands"
	"go.trai.ch/docullim/internal/app"
	"go.trai.ch/docullim/internal/core/domain"
	_ "go.trai.ch/docullim/internal/wiring"
)

// Exit codes.
const (
	exitOK      = 0
	exitPartial = 1
	exitFatal   = 2
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := provider(ctx)
	if err != nil {
		// The logger is not available yet.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitFatal
	}

	cli := commands.New(components.App, components.Logger)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	err = cli.Execute(ctx)
	code := exitCode(err)
	if code == exitFatal {
		components.Logger.Error(err)
	}
	return code
}

// exitCode maps the outcome of a command to the process exit status.
// Individual generation failures were already logged as they happened.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrGenerationFailed):
		return exitPartial
	default:
		return exitFatal
	}
}
