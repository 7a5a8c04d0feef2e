package helpers

import (
	"github.com/spf13/pflag"
)

// AddConfigFlags registers the flags shared by commands that resolve the
// layered configuration.
func AddConfigFlags(flags *pflag.FlagSet, configFile *string, logLevel *string) {
	flags.StringVar(configFile, "config", "", "Config file path (default: ~/.multiprof/config.yaml)")
	flags.StringVar(logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

// AddCollectorFlags registers the collector endpoint override flags.
// 'run' ships stats to this endpoint; 'serve' listens on it.
func AddCollectorFlags(flags *pflag.FlagSet, host *string, port *int) {
	flags.StringVar(host, "host", "", "Collector host (overrides config)")
	flags.IntVar(port, "port", 0, "Collector port (overrides config)")
}
