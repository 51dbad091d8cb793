// Package brotli provides a snapshot codec for Brotli, using
// github.com/andybalholm/brotli.
package brotli

import (
	"bytes"
	"errors"
	"io"

	"github.com/andybalholm/brotli"
)

// DefaultLevel is the level used by the zero Codec.
const DefaultLevel = 6

// ErrTooLarge is returned when a stream would decode to more than the limit.
var ErrTooLarge = errors.New("brotli: decoded stream exceeds limit")

// Codec compresses with Brotli at Level. Levels run from 1 to 11; zero
// means DefaultLevel, and other values are clamped to that range.
type Codec struct {
	Level int
}

func (c Codec) level() int {
	switch {
	case c.Level == 0:
		return DefaultLevel
	case c.Level < 1:
		return 1
	case c.Level > brotli.BestCompression:
		return brotli.BestCompression
	}
	return c.Level
}

func (c Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, c.level())
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Codec) Decompress(data []byte, limit int) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, ErrTooLarge
	}
	return out, nil
}
