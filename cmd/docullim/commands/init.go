package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/docullim/internal/app"
)

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Install the docullim marker module so @docullim can be imported",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			opts := app.InitOptions{Dir: ".", Force: force}
			if len(args) == 1 {
				opts.Dir = args[0]
			}
			return c.app.Init(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing marker module")
	return cmd
}
