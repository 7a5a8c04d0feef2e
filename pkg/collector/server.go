package collector

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/multiprof/multiprof/pkg/profile"
)

// ServerConfig contains development sink configuration options.
type ServerConfig struct {
	// Addr is the host:port to listen on. Defaults to localhost:8000.
	Addr string
}

// Server is a development sink for profiling stats. It accepts the client's
// wire format on POST /, keeps the most recent stats in memory, and logs a
// summary of every payload received. No rendering, no history.
type Server struct {
	addr     string
	codec    *Codec
	logger   zerolog.Logger
	server   *http.Server
	listener net.Listener

	mu   sync.Mutex
	last *profile.Stats
}

// NewServer creates a development sink.
func NewServer(config ServerConfig, logger zerolog.Logger) *Server {
	if config.Addr == "" {
		config.Addr = fmt.Sprintf("%s:%d", DefaultHost, DefaultPort)
	}

	s := &Server{
		addr:   config.Addr,
		codec:  NewCodec(gzip.DefaultCompression),
		logger: logger.With().Str("component", "collector-server").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleStats)
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Collector server stopped unexpectedly")
		}
	}()

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Collector server listening")
	return nil
}

// Addr returns the bound listen address. Before Start it returns the
// configured address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping collector server")
	return s.server.Shutdown(ctx)
}

// Last returns the most recently received stats, or nil when nothing has
// arrived yet.
func (s *Server) Last() *profile.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read payload")
		http.Error(w, "failed to read payload", http.StatusBadRequest)
		return
	}

	payload, err := s.codec.Decompress(body)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to decompress payload")
		http.Error(w, "failed to decompress payload", http.StatusBadRequest)
		return
	}

	stats := profile.NewStats()
	if err := json.Unmarshal(payload, stats); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to decode stats")
		http.Error(w, "failed to decode stats", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.last = stats
	s.mu.Unlock()

	options := make([]string, 0, stats.Len())
	for _, opt := range stats.Options() {
		options = append(options, opt.String())
	}
	s.logger.Info().
		Strs("profilers", options).
		Int("compressed_bytes", len(body)).
		Int("raw_bytes", len(payload)).
		Msg("Received profiling stats")

	w.WriteHeader(http.StatusOK)
}
