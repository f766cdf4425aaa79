// Package commands implements the CLI commands for docullim.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/docullim/internal/app"
	"go.trai.ch/docullim/internal/build"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
)

// CLI represents the command line interface for docullim.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) (*domain.RunReport, error)
	Init(ctx context.Context, opts app.InitOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application, log ports.Logger) *CLI {
	c := &CLI{
		app:    a,
		logger: log,
	}

	rootCmd := c.newRootCmd()
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// jsonLogger is implemented by loggers that can switch to JSON output.
type jsonLogger interface {
	SetJSON(enable bool)
}

func (c *CLI) configureLogging(cmd *cobra.Command) {
	enable, _ := cmd.Flags().GetBool("log-json")
	if l, ok := c.logger.(jsonLogger); ok && enable {
		l.SetJSON(true)
	}
}
