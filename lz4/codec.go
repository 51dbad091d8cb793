// Package lz4 provides a snapshot codec for the LZ4 block format, using
// github.com/pierrec/lz4/v4.
package lz4

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// A block is prefixed with its uncompressed size as a uvarint, then a mode
// byte. Input that LZ4 cannot shrink is stored raw.
const (
	modeRaw   = 0
	modeBlock = 1
)

// Errors returned by Decompress.
var (
	ErrCorrupt  = errors.New("lz4: corrupt block")
	ErrTooLarge = errors.New("lz4: decoded block exceeds limit")
)

var compressorPool = sync.Pool{
	New: func() any {
		return new(lz4.Compressor)
	},
}

// Codec compresses with LZ4. It is safe for concurrent use.
type Codec struct{}

func (Codec) Compress(data []byte) ([]byte, error) {
	dst := binary.AppendUvarint(nil, uint64(len(data)))
	header := len(dst)
	dst = append(dst, modeBlock)
	dst = append(dst, make([]byte, lz4.CompressBlockBound(len(data)))...)

	c := compressorPool.Get().(*lz4.Compressor)
	defer compressorPool.Put(c)

	n, err := c.CompressBlock(data, dst[header+1:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		dst = append(dst[:header], modeRaw)
		return append(dst, data...), nil
	}

	return dst[:header+1+n], nil
}

// Decompress decodes a block, refusing blocks whose size prefix is larger
// than limit.
func (Codec) Decompress(data []byte, limit int) ([]byte, error) {
	size, header := binary.Uvarint(data)
	if header <= 0 || header >= len(data) {
		return nil, ErrCorrupt
	}
	if size > uint64(limit) {
		return nil, ErrTooLarge
	}
	mode, payload := data[header], data[header+1:]

	switch mode {
	case modeRaw:
		if uint64(len(payload)) != size {
			return nil, ErrCorrupt
		}
		return append([]byte(nil), payload...), nil
	case modeBlock:
		// An LZ4 sequence expands to at most 255 bytes per input byte.
		if size > uint64(len(payload))*255 {
			return nil, ErrCorrupt
		}
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if uint64(n) != size {
			return nil, ErrCorrupt
		}
		return out, nil
	default:
		return nil, ErrCorrupt
	}
}
