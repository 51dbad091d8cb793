package lazystr

import (
	"bytes"
	"testing"
)

var benchText = bytes.Repeat([]byte("Lorem ipsum dolor sit amet, consectetur adipiscing elit. "), 512)

func BenchmarkNew(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchText)))
	for i := 0; i < b.N; i++ {
		New(benchText)
	}
}

func BenchmarkCompress(b *testing.B) {
	data := bytes.Repeat([]byte("aaaabbbcc"), 4096)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	s := New([]byte{})
	s.Compress(data)
	b.ReportMetric(float64(len(data))/float64(s.EncodedLength()), "ratio")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		New([]byte{}).Compress(data)
	}
}

func BenchmarkDecode(b *testing.B) {
	s := New(benchText)
	s.Compress(bytes.Repeat([]byte("zz"), 1000))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Decode()
	}
}

func BenchmarkSnapshot(b *testing.B) {
	s := New(benchText)
	for c := CodecNone; c <= CodecFlate; c++ {
		c := c
		b.Run(c.String(), func(b *testing.B) {
			data, err := MarshalStore(s, WithCodec(c))
			if err != nil {
				b.Fatal(err)
			}
			b.ReportMetric(float64(len(benchText))/float64(len(data)), "ratio")
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				MarshalStore(s, WithCodec(c))
			}
		})
	}
}
