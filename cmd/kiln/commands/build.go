package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [resources...]",
		Short: "Compile resources and everything they require",
		Long: "Compile the given resources, or every resource listed in kiln.yaml, " +
			"together with the resources they require.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := func() {}
			if show, _ := cmd.Flags().GetBool("progress"); show && c.progress != nil {
				stop = c.progress.Start()
			}
			reports, err := c.app.Build(cmd.Context(), args, app.BuildOptions{Flags: cmd.Flags()})
			stop()

			out := cmd.OutOrStdout()
			for _, report := range reports {
				for _, res := range report.Sorted() {
					if res.State.IsSuccessful() {
						continue
					}
					_, _ = fmt.Fprintf(out, "%s\t%s [%s]\n", res.State, res.Request.ID, report.Platform)
					for _, d := range res.Diagnostics {
						_, _ = fmt.Fprintf(out, "\t%s\n", d.Message)
					}
				}
			}
			return err
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Ignore the build state and recompile every resource")
	cmd.Flags().Bool("progress", false, "Show compile jobs in an interactive view")
	return cmd
}
