package collector

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Codec compresses outgoing payloads and decompresses received ones.
type Codec struct {
	level int
}

// NewCodec returns a codec using the given gzip compression level.
func NewCodec(level int) *Codec {
	return &Codec{level: level}
}

// Compress gzips data at the codec's compression level.
func (c *Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("invalid compression level %d: %w", c.level, err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush compressed payload: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress expands a gzipped payload.
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read gzip header: %w", err)
	}
	defer r.Close() // nolint:errcheck

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	return out, nil
}
