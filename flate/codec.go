// Package flate provides a snapshot codec for raw DEFLATE data, using
// github.com/klauspost/compress/flate.
package flate

import (
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/flate"
)

// ErrTooLarge is returned when a stream would decode to more than the limit.
var ErrTooLarge = errors.New("flate: decoded stream exceeds limit")

// Codec compresses with DEFLATE at Level. Levels run from 1 to 9;
// zero means flate.DefaultCompression.
type Codec struct {
	Level int
}

func (c Codec) Compress(data []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = flate.DefaultCompression
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Codec) Decompress(data []byte, limit int) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, ErrTooLarge
	}
	return out, nil
}
