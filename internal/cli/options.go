package cli

import (
	"github.com/spf13/cobra"

	"github.com/multiprof/multiprof/pkg/profile"
	"github.com/multiprof/multiprof/pkg/runner"
)

var optionHelp = map[profile.Option]string{
	'm': "memory usage (RSS and heap deltas)",
	'c': "CPU flame graph (folded stacks with sample counts)",
	'h': "code heat (top allocation sites by file:line)",
	'p': "function table (flat and cumulative samples)",
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List available profiler codes",
		Long: `List the profiler codes accepted by 'multiprof run --options'.

Codes combine into one configuration string (e.g. "mc"). Execution order
is fixed regardless of how the string is written; each code may appear
at most once.`,
		Run: func(cmd *cobra.Command, args []string) {
			for _, opt := range runner.Default().Options() {
				cmd.Printf("  %s  %s\n", opt, optionHelp[opt])
			}
		},
	}
}
