package collector

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/multiprof/multiprof/internal/errors"
	"github.com/multiprof/multiprof/pkg/profile"
)

// Default collector endpoint used when none is configured.
const (
	DefaultHost = "localhost"
	DefaultPort = 8000
)

// Config contains collector client configuration options.
type Config struct {
	// Host of the collector endpoint. Defaults to DefaultHost.
	Host string

	// Port of the collector endpoint. Defaults to DefaultPort.
	Port int

	// CompressionLevel for payloads. Zero selects gzip's default level.
	CompressionLevel int
}

// Client ships profiling stats to a collector over HTTP.
//
// Send blocks for the full duration of the transfer. The client never
// retries, sets no deadline of its own, and does not inspect the collector's
// response; callers control cancellation through the context.
type Client struct {
	host   string
	port   int
	codec  *Codec
	client *http.Client
	logger zerolog.Logger
}

// New creates a collector client.
func New(config Config, logger zerolog.Logger) *Client {
	if config.Host == "" {
		config.Host = DefaultHost
	}
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.CompressionLevel == 0 {
		config.CompressionLevel = gzip.DefaultCompression
	}

	return &Client{
		host:   config.Host,
		port:   config.Port,
		codec:  NewCodec(config.CompressionLevel),
		client: &http.Client{},
		logger: logger.With().Str("component", "collector-client").Logger(),
	}
}

// Endpoint returns the URL stats are posted to.
func (c *Client) Endpoint() string {
	return fmt.Sprintf("http://%s:%d/", c.host, c.port)
}

// Send serializes stats preserving section order, compresses the payload,
// and posts it to the collector in one blocking request. The body carries
// only the compressed payload; no metadata headers are added. The response
// is drained and discarded: reaching the collector is the only success
// criterion. Failures are returned as *SendError.
func (c *Client) Send(ctx context.Context, stats *profile.Stats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return &SendError{Endpoint: c.Endpoint(), Err: fmt.Errorf("failed to serialize stats: %w", err)}
	}

	body, err := c.codec.Compress(payload)
	if err != nil {
		return &SendError{Endpoint: c.Endpoint(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return &SendError{Endpoint: c.Endpoint(), Err: err}
	}

	c.logger.Debug().
		Str("endpoint", c.Endpoint()).
		Int("raw_bytes", len(payload)).
		Int("compressed_bytes", len(body)).
		Msg("Sending profiling stats")

	resp, err := c.client.Do(req)
	if err != nil {
		return &SendError{Endpoint: c.Endpoint(), Err: err}
	}
	defer errors.DeferClose(c.logger, resp.Body, "failed to close collector response body")
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
