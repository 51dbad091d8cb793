package lazystr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecNames(t *testing.T) {
	for c := CodecNone; c <= CodecFlate; c++ {
		parsed, err := ParseCodecType(c.String())
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	}

	_, err := ParseCodecType("gzip")
	require.ErrorIs(t, err, ErrUnknownCodec)
	require.Equal(t, "CodecType(42)", CodecType(42).String())
}

func TestBuiltinCodecsRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("HelloHelloHello, world. "), 100)
	for c := CodecNone; c <= CodecFlate; c++ {
		codec, err := GetCodec(c)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		if c != CodecNone {
			require.Less(t, len(compressed), len(data), "codec %s", c)
		}

		decompressed, err := codec.Decompress(compressed, len(data))
		require.NoError(t, err)
		require.Equal(t, data, decompressed, "codec %s", c)
	}

	_, err := GetCodec(CodecType(42))
	require.ErrorIs(t, err, ErrUnknownCodec)
}

func TestNoopCodecLimit(t *testing.T) {
	codec, err := GetCodec(CodecNone)
	require.NoError(t, err)

	_, err = codec.Decompress([]byte("abcdef"), 5)
	require.ErrorIs(t, err, ErrCorrupt)

	out, err := codec.Decompress([]byte("abcdef"), 6)
	require.NoError(t, err)
	require.Equal(t, []byte("abcdef"), out)
}
