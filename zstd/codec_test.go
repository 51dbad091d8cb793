package zstd

import (
	"bytes"
	"sync"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecMatchesReference(t *testing.T) {
	data := bytes.Repeat([]byte("HelloHelloHello, world. "), 200)

	compressed, err := Codec{}.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data))

	r, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer r.Close()
	decompressed, err := r.DecodeAll(compressed, nil)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)

	decompressed, err = Codec{}.Decompress(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data := bytes.Repeat([]byte{byte('a' + i)}, 1000+i)
			compressed, err := Codec{}.Compress(data)
			if !assert.NoError(t, err) {
				return
			}
			decompressed, err := Codec{}.Decompress(compressed, len(data))
			assert.NoError(t, err)
			assert.Equal(t, data, decompressed)
		}(i)
	}
	wg.Wait()
}

func TestDecompressGarbage(t *testing.T) {
	_, err := Codec{}.Decompress([]byte("definitely not zstd"), 1<<20)
	require.Error(t, err)
}

func TestDecompressOverLimit(t *testing.T) {
	data := bytes.Repeat([]byte{'z'}, 1<<20)
	compressed, err := Codec{}.Compress(data)
	require.NoError(t, err)

	_, err = Codec{}.Decompress(compressed, 100)
	require.ErrorIs(t, err, ErrTooLarge)

	// The pooled decoder is still usable afterwards.
	decompressed, err := Codec{}.Decompress(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}
