package brotli

import (
	"bytes"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/require"
)

func TestEncodeHelloHello(t *testing.T) {
	hello := []byte("HelloHelloHelloHelloHelloHelloHelloHelloHelloHello, world")

	compressed, err := Codec{}.Compress(hello)
	require.NoError(t, err)

	decompressed, err := io.ReadAll(brotli.NewReader(bytes.NewReader(compressed)))
	require.NoError(t, err)
	require.Equal(t, hello, decompressed)
}

func TestLevels(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 100)
	for _, level := range []int{0, 1, 9, 11, 20} {
		compressed, err := Codec{Level: level}.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data))

		decompressed, err := Codec{}.Decompress(compressed, len(data))
		require.NoError(t, err)
		require.Equal(t, data, decompressed, "level %d", level)
	}
}

func TestDecompressTruncated(t *testing.T) {
	compressed, err := Codec{}.Compress(bytes.Repeat([]byte("xyzzy "), 500))
	require.NoError(t, err)

	_, err = Codec{}.Decompress(compressed[:len(compressed)/2], 3000)
	require.Error(t, err)
}

func TestDecompressOverLimit(t *testing.T) {
	data := bytes.Repeat([]byte{'b'}, 1<<20)
	compressed, err := Codec{}.Compress(data)
	require.NoError(t, err)

	_, err = Codec{}.Decompress(compressed, 100)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestLevelClamped(t *testing.T) {
	require.Equal(t, DefaultLevel, Codec{}.level())
	require.Equal(t, 1, Codec{Level: -5}.level())
	require.Equal(t, 1, Codec{Level: 1}.level())
	require.Equal(t, 11, Codec{Level: 20}.level())

	data := []byte("negative levels still compress")
	compressed, err := Codec{Level: -5}.Compress(data)
	require.NoError(t, err)
	decompressed, err := Codec{}.Decompress(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}
