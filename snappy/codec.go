// Package snappy provides snapshot codecs for the Snappy block format.
package snappy

import (
	"errors"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/s2"
)

// ErrTooLarge is returned when a block would decode to more than the limit.
var ErrTooLarge = errors.New("snappy: decoded block exceeds limit")

// Codec compresses with github.com/golang/snappy.
type Codec struct{}

func (Codec) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

// Decompress decodes data, refusing blocks whose preamble claims more
// than limit bytes.
func (Codec) Decompress(data []byte, limit int) ([]byte, error) {
	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, ErrTooLarge
	}
	return snappy.Decode(nil, data)
}

// S2Codec compresses with the S2 extension of Snappy from
// github.com/klauspost/compress/s2. It can decode plain Snappy blocks too.
type S2Codec struct{}

func (S2Codec) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (S2Codec) Decompress(data []byte, limit int) ([]byte, error) {
	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, ErrTooLarge
	}
	return s2.Decode(nil, data)
}
