package lazystr

import (
	"fmt"

	"github.com/andybalholm/lazystr/brotli"
	"github.com/andybalholm/lazystr/flate"
	"github.com/andybalholm/lazystr/lz4"
	"github.com/andybalholm/lazystr/snappy"
	"github.com/andybalholm/lazystr/zstd"
)

// A Codec compresses the body of a snapshot.
type Codec interface {
	Compress(data []byte) ([]byte, error)

	// Decompress reverses Compress. It must fail without producing
	// more than limit bytes of output if data decodes to more than that.
	Decompress(data []byte, limit int) ([]byte, error)
}

// CodecType identifies a built-in Codec. Its value is written into every
// snapshot, so existing values must not change.
type CodecType uint8

const (
	CodecNone CodecType = iota
	CodecSnappy
	CodecS2
	CodecZstd
	CodecLZ4
	CodecBrotli
	CodecFlate
)

var codecNames = [...]string{
	CodecNone:   "none",
	CodecSnappy: "snappy",
	CodecS2:     "s2",
	CodecZstd:   "zstd",
	CodecLZ4:    "lz4",
	CodecBrotli: "brotli",
	CodecFlate:  "flate",
}

func (c CodecType) String() string {
	if int(c) < len(codecNames) {
		return codecNames[c]
	}
	return fmt.Sprintf("CodecType(%d)", uint8(c))
}

// ParseCodecType returns the CodecType named name.
func ParseCodecType(name string) (CodecType, error) {
	for i, n := range codecNames {
		if n == name {
			return CodecType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

type noopCodec struct{}

func (noopCodec) Compress(data []byte) ([]byte, error) { return data, nil }

func (noopCodec) Decompress(data []byte, limit int) ([]byte, error) {
	if len(data) > limit {
		return nil, fmt.Errorf("%w: body longer than header says", ErrCorrupt)
	}
	return data, nil
}

var builtinCodecs = map[CodecType]Codec{
	CodecNone:   noopCodec{},
	CodecSnappy: snappy.Codec{},
	CodecS2:     snappy.S2Codec{},
	CodecZstd:   zstd.Codec{},
	CodecLZ4:    lz4.Codec{},
	CodecBrotli: brotli.Codec{},
	CodecFlate:  flate.Codec{},
}

// GetCodec returns the built-in Codec for t.
func GetCodec(t CodecType) (Codec, error) {
	if c, ok := builtinCodecs[t]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, t)
}
