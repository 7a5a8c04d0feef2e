package sdk

import (
	"fmt"
	"net"
	"net/http"
	netpprof "net/http/pprof"
	"time"

	"github.com/rs/zerolog"
)

// SDK represents the multiprof attach endpoint embedded in an application.
type SDK struct {
	logger      zerolog.Logger
	serviceName string
	listener    net.Listener
	server      *http.Server
}

// Config contains SDK configuration options.
type Config struct {
	// ServiceName is the name of the service (required).
	ServiceName string

	// Addr is the address the endpoint listens on.
	// Defaults to 127.0.0.1:0 (auto-selected port).
	Addr string

	// Logger is the logger instance (optional, defaults to zerolog.Nop()).
	Logger zerolog.Logger
}

// New creates a new SDK instance and starts its attach endpoint.
func New(config Config) (*SDK, error) {
	if config.ServiceName == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if config.Addr == "" {
		config.Addr = "127.0.0.1:0"
	}

	logger := config.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}
	logger = logger.With().Str("component", "multiprof-sdk").Str("service", config.ServiceName).Logger()

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", netpprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", netpprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", netpprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", netpprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", netpprof.Trace)

	s := &SDK{
		logger:      logger,
		serviceName: config.ServiceName,
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	listener, err := net.Listen("tcp", config.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	// Start serving in background.
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("Attach endpoint error")
		}
	}()

	logger.Info().
		Str("addr", listener.Addr().String()).
		Msg("Attach endpoint started")

	return s, nil
}

// Addr returns the endpoint's listen address. Pass it to 'multiprof run'
// as the target.
func (s *SDK) Addr() string {
	return s.listener.Addr().String()
}

// Close shuts down the attach endpoint.
func (s *SDK) Close() error {
	s.logger.Info().Msg("Shutting down attach endpoint")
	return s.server.Close()
}
