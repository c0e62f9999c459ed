package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build every resource, then rebuild on source changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), app.BuildOptions{Flags: cmd.Flags()})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Ignore the build state for the initial build")
	return cmd
}
