package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/docullim/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the docstring cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return c.app.Clean(cmd.Context(), app.CleanOptions{ConfigPath: configPath})
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to the config file (default docullim.json)")
	return cmd
}
