// Package commands implements the CLI commands for kiln.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
	"go.trai.ch/kiln/internal/engine/scheduler"
)

// CLI represents the command line interface for kiln.
type CLI struct {
	app      Application
	progress ProgressView
	rootCmd  *cobra.Command
}

// ProgressView renders compile jobs while a build runs.
type ProgressView interface {
	// Start begins rendering. The returned function ends the view.
	Start() (stop func())
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, targets []string, opts app.BuildOptions) ([]*scheduler.Report, error)
	Watch(ctx context.Context, opts app.BuildOptions) error
	Clean(ctx context.Context) error
	Graph(ctx context.Context, w io.Writer) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kiln",
		Short:         "An incremental resource compiler",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))

	// Setting flags share their names with the settings keys so they layer over
	// kiln.toml and the KILN_* environment.
	flags := rootCmd.PersistentFlags()
	flags.StringP("dir", "C", ".", "Directory containing kiln.yaml")
	flags.IntP("jobs", "j", 0, "Number of concurrent compile jobs (default: number of CPUs)")
	flags.StringP("platform", "p", "", "Comma-separated target platforms (default: the project's platforms)")
	flags.String("backend", "", "Build state backend: json or sqlite")
	flags.StringP("verbosity", "v", "", "Log level: debug, info, warn or error")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetDirHook sets up a PersistentPreRun function that retrieves the dir flag
// and calls the provided callback with the project directory.
func (c *CLI) SetDirHook(fn func(string)) {
	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil {
			return err
		}
		fn(dir)
		return nil
	}
}

// SetProgress sets the view shown by "build --progress".
func (c *CLI) SetProgress(p ProgressView) {
	c.progress = p
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
