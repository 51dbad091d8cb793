// Package zstd provides a snapshot codec for Zstandard, using
// github.com/klauspost/compress/zstd.
package zstd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// maxWindow bounds the history a frame header can make the decoder
// allocate.
const maxWindow = 64 << 20

// ErrTooLarge is returned when a frame would decode to more than the limit.
var ErrTooLarge = errors.New("zstd: decoded frame exceeds limit")

// Encoders and decoders are expensive to set up and allocation-free once
// warm, so they are pooled.
var encoderPool = sync.Pool{
	New: func() any {
		e, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(fmt.Sprintf("zstd: creating encoder: %v", err))
		}
		return e
	},
}

var decoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxWindow(maxWindow),
			zstd.WithDecoderMaxMemory(maxWindow),
		)
		if err != nil {
			panic(fmt.Sprintf("zstd: creating decoder: %v", err))
		}
		return d
	},
}

// Codec compresses with Zstandard. It is safe for concurrent use.
type Codec struct{}

func (Codec) Compress(data []byte) ([]byte, error) {
	e := encoderPool.Get().(*zstd.Encoder)
	defer encoderPool.Put(e)

	return e.EncodeAll(data, nil), nil
}

// Decompress decodes data as a stream and stops as soon as the output
// passes limit bytes.
func (Codec) Decompress(data []byte, limit int) ([]byte, error) {
	d := decoderPool.Get().(*zstd.Decoder)
	defer decoderPool.Put(d)

	if err := d.Reset(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	out, err := io.ReadAll(io.LimitReader(d, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, ErrTooLarge
	}
	return out, nil
}
