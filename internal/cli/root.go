package cli

import (
	"github.com/spf13/cobra"

	"github.com/multiprof/multiprof/internal/cli/run"
	"github.com/multiprof/multiprof/internal/cli/serve"
	"github.com/multiprof/multiprof/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "multiprof",
	Short: "multiprof - profile a process with several back ends in one run",
	Long: `Run a configurable set of profilers against a live process in one pass.

multiprof executes the requested back ends in a fixed order, aggregates
their output into a single ordered payload, and ships it to a stats
collector for inspection.

Back ends (see 'multiprof options'):
- m: memory usage
- c: CPU flame graph
- h: code heat
- p: function table

Typical session:
  multiprof serve &
  multiprof run --options mc localhost:6060`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(run.NewRunCmd())
	rootCmd.AddCommand(serve.NewServeCmd())
	rootCmd.AddCommand(newOptionsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("multiprof version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
