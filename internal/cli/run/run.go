// Package run implements the multiprof run command for profiling live processes.
package run

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/multiprof/multiprof/internal/cli/helpers"
	"github.com/multiprof/multiprof/internal/logging"
	"github.com/multiprof/multiprof/internal/procref"
	"github.com/multiprof/multiprof/internal/profilers"
	"github.com/multiprof/multiprof/pkg/collector"
	"github.com/multiprof/multiprof/pkg/profile"
	"github.com/multiprof/multiprof/pkg/runner"
)

// NewRunCmd creates the 'run' command.
func NewRunCmd() *cobra.Command {
	var (
		options      string
		configFile   string
		host         string
		port         int
		fetchSeconds int
		outputFile   string
		verbose      bool
		logLevel     string
	)

	cmd := &cobra.Command{
		Use:   "run <pid | host:port>",
		Short: "Profile a live process and ship the stats",
		Long: `Profile a live process with the requested back ends in one pass.

The target is either a PID, a listening port on localhost, or a host:port
address. CPU, heat, and function profiling need the target to expose
net/http/pprof endpoints at its address; memory profiling of a local PID
works without them.

Back ends run in a fixed order regardless of how codes are written
(see 'multiprof options'). The aggregated stats are shipped to the
collector endpoint, or written to a file with --output-file.

Examples:
  # Memory snapshot of a local process
  multiprof run --options m 12345

  # Flame graph and function table from a pprof-enabled service
  multiprof run --options cp localhost:6060

  # Everything, written to a file instead of shipped
  multiprof run --options mchp --output-file stats.json api.internal:6060`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := helpers.LoadConfig(configFile)
			if err != nil {
				return err
			}

			// Apply flag overrides
			if host != "" {
				cfg.Collector.Host = host
			}
			if port > 0 {
				cfg.Collector.Port = port
			}
			if fetchSeconds > 0 {
				cfg.Profiling.FetchSeconds = fetchSeconds
			}
			if verbose {
				cfg.Profiling.Verbose = true
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			// Reject malformed targets before any profiler runs.
			ref, err := procref.Parse(args[0])
			if err != nil {
				return err
			}

			logger := logging.NewWithComponent(logging.Config{
				Level:  cfg.Log.Level,
				Pretty: cfg.Log.Pretty,
			}, "run")

			suite := profilers.NewSuite(logger, profilers.Config{
				FetchSeconds: cfg.Profiling.FetchSeconds,
			})
			registry, err := runner.NewRegistry(
				runner.Entry{Option: 'm', New: suite.Memory},
				runner.Entry{Option: 'c', New: suite.FlameGraph},
				runner.Entry{Option: 'h', New: suite.CodeHeat},
				runner.Entry{Option: 'p', New: suite.Functions},
			)
			if err != nil {
				return err
			}

			var sender runner.Sender
			if outputFile != "" {
				sender = &fileSink{path: outputFile}
			} else {
				sender = collector.New(collector.Config{
					Host:             cfg.Collector.Host,
					Port:             cfg.Collector.Port,
					CompressionLevel: cfg.Collector.CompressionLevel,
				}, logger)
			}

			r := runner.New(registry, sender, logger, runner.Config{
				Verbose: cfg.Profiling.Verbose,
			})

			fmt.Fprintf(os.Stderr, "Profiling %s with [%s]...\n", ref, options)

			// Profile fetches block for the whole sampling window; leave
			// generous headroom past it before giving up.
			ctx, cancel := context.WithTimeout(context.Background(),
				time.Duration(cfg.Profiling.FetchSeconds+60)*time.Second)
			defer cancel()

			if _, err := r.Run(ctx, profile.NewProcess(args[0]), options); err != nil {
				return err
			}

			if outputFile != "" {
				cmd.Printf("Stats written to %s\n", outputFile)
			} else {
				cmd.Printf("Stats shipped to http://%s:%d/\n", cfg.Collector.Host, cfg.Collector.Port)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&options, "options", "o", "", "Profiler codes to run, e.g. mc (required)")
	helpers.AddConfigFlags(cmd.Flags(), &configFile, &logLevel)
	helpers.AddCollectorFlags(cmd.Flags(), &host, &port)
	cmd.Flags().IntVar(&fetchSeconds, "fetch-seconds", 0, "CPU sampling window in seconds for process targets (overrides config)")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "Write stats to a file instead of shipping them")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-profiler progress at info level")

	cmd.MarkFlagRequired("options") //nolint:errcheck

	return cmd
}

// fileSink writes sanitized stats to a local file instead of a collector.
type fileSink struct {
	path string
}

func (s *fileSink) Send(_ context.Context, stats *profile.Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}

	//nolint:gosec // G306: Stats files are not sensitive
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}
