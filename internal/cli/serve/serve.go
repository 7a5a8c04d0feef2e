// Package serve implements the multiprof serve command, a development
// collector sink.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/multiprof/multiprof/internal/cli/helpers"
	"github.com/multiprof/multiprof/internal/logging"
	"github.com/multiprof/multiprof/pkg/collector"
)

// NewServeCmd creates the 'serve' command.
func NewServeCmd() *cobra.Command {
	var (
		configFile string
		host       string
		port       int
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a development collector sink",
		Long: `Run a development collector that accepts shipped profiling stats.

The sink listens for multiprof payloads, logs a summary of each one, and
keeps the most recent stats in memory. It renders nothing and persists
nothing; use it to see what a 'multiprof run' ships.

Examples:
  multiprof serve
  multiprof serve --port 9000`,
		Args: cobra.NoArgs,
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
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := logging.NewWithComponent(logging.Config{
				Level:  cfg.Log.Level,
				Pretty: cfg.Log.Pretty,
			}, "serve")

			srv := collector.NewServer(collector.ServerConfig{
				Addr: fmt.Sprintf("%s:%d", cfg.Collector.Host, cfg.Collector.Port),
			}, logger)

			if err := srv.Start(); err != nil {
				return fmt.Errorf("failed to start collector: %w", err)
			}

			// Wait for interrupt signal
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			<-sigCh

			logger.Info().Msg("Shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			return srv.Stop(ctx)
		},
	}

	helpers.AddConfigFlags(cmd.Flags(), &configFile, &logLevel)
	helpers.AddCollectorFlags(cmd.Flags(), &host, &port)

	return cmd
}
