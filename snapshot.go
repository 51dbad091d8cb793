package lazystr

import (
	"encoding/binary"
	"fmt"

	"github.com/andybalholm/lazystr/internal/options"
	"github.com/pierrec/xxHash/xxHash32"
)

// A snapshot is a fixed header followed by a body compressed with the codec
// named in the header:
//
//	magic "LZS1" | version | element width | codec | xxHash32(body) LE32 | uvarint len(body)
//
// The body holds the step count, then take, backtrack and copy as uvarints
// and a kind byte for each step, then the encoded stream length and every
// element as the uvarint of its unsigned bit pattern.
const (
	snapshotMagic   = "LZS1"
	snapshotVersion = 1
	headerSize      = len(snapshotMagic) + 3 + 4

	// A step takes at least four bytes of body.
	minStepSize = 4
)

// Default limits for UnmarshalStore.
const (
	DefaultMaxBodySize = 64 << 20
	DefaultMaxLength   = 1 << 24
)

type marshalConfig struct {
	codec CodecType
}

// MarshalOption configures MarshalStore.
type MarshalOption = options.Option[*marshalConfig]

// WithCodec sets the codec that compresses the snapshot body.
// The default is CodecNone.
func WithCodec(t CodecType) MarshalOption {
	return options.New(func(c *marshalConfig) error {
		if _, err := GetCodec(t); err != nil {
			return err
		}
		c.codec = t
		return nil
	})
}

type unmarshalConfig struct {
	maxBodySize int
	maxLength   int
}

// UnmarshalOption configures UnmarshalStore.
type UnmarshalOption = options.Option[*unmarshalConfig]

// WithMaxBodySize limits the uncompressed size of the snapshot body, in
// bytes. The default is DefaultMaxBodySize.
func WithMaxBodySize(n int) UnmarshalOption {
	return options.NoError(func(c *unmarshalConfig) {
		c.maxBodySize = n
	})
}

// WithMaxLength limits the length of the encoded stream and of the decoded
// output, in elements. The default is DefaultMaxLength.
func WithMaxLength(n int) UnmarshalOption {
	return options.NoError(func(c *unmarshalConfig) {
		c.maxLength = n
	})
}

// elemWidth returns the size of T in bytes.
func elemWidth[T Char]() int {
	one := T(1)
	switch {
	case one<<8 == 0:
		return 1
	case one<<16 == 0:
		return 2
	default:
		return 4
	}
}

// MarshalStore returns a snapshot of s.
func MarshalStore[T Char](s *Store[T], opts ...MarshalOption) ([]byte, error) {
	cfg := &marshalConfig{codec: CodecNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	codec, err := GetCodec(cfg.codec)
	if err != nil {
		return nil, err
	}

	body := s.appendBody(nil)
	compressed, err := codec.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("lazystr: compressing snapshot with %s: %w", cfg.codec, err)
	}

	out := make([]byte, 0, headerSize+binary.MaxVarintLen64+len(compressed))
	out = append(out, snapshotMagic...)
	out = append(out, snapshotVersion, byte(elemWidth[T]()), byte(cfg.codec))
	out = binary.LittleEndian.AppendUint32(out, xxHash32.Checksum(body, 0))
	out = binary.AppendUvarint(out, uint64(len(body)))
	return append(out, compressed...), nil
}

func (s *Store[T]) appendBody(dst []byte) []byte {
	n := s.take.Len()
	dst = binary.AppendUvarint(dst, uint64(n))
	for i := 0; i < n; i++ {
		dst = binary.AppendUvarint(dst, uint64(s.take.At(i)))
		dst = binary.AppendUvarint(dst, uint64(s.backtrack.At(i)))
		dst = binary.AppendUvarint(dst, uint64(s.copies.At(i)))
		dst = append(dst, byte(s.kinds.At(i)))
	}

	n = s.encoded.Len()
	dst = binary.AppendUvarint(dst, uint64(n))
	for i := 0; i < n; i++ {
		dst = binary.AppendUvarint(dst, uint64(uint32(s.encoded.At(i))))
	}
	return dst
}

// UnmarshalStore loads a Store from a snapshot written by MarshalStore.
// The element type must have the same width as the one it was written with.
//
// The steps are checked before the Store is returned, so decoding it never
// reads outside the encoded stream or the output.
func UnmarshalStore[T Char](data []byte, opts ...UnmarshalOption) (*Store[T], error) {
	cfg := &unmarshalConfig{
		maxBodySize: DefaultMaxBodySize,
		maxLength:   DefaultMaxLength,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(data) < headerSize || string(data[:len(snapshotMagic)]) != snapshotMagic {
		return nil, ErrBadMagic
	}
	header := data[len(snapshotMagic):headerSize]
	if header[0] != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header[0])
	}
	if w := elemWidth[T](); int(header[1]) != w {
		return nil, fmt.Errorf("%w: snapshot has %d-byte elements, store has %d", ErrWidthMismatch, header[1], w)
	}
	codecType := CodecType(header[2])
	codec, err := GetCodec(codecType)
	if err != nil {
		return nil, err
	}
	sum := binary.LittleEndian.Uint32(header[3:])

	bodySize, n := binary.Uvarint(data[headerSize:])
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad body length", ErrCorrupt)
	}
	if bodySize > uint64(cfg.maxBodySize) {
		return nil, fmt.Errorf("%w: body is %d bytes, limit %d", ErrTooLarge, bodySize, cfg.maxBodySize)
	}

	// bodySize is within the limit, and the codec stops at bodySize, so a
	// payload that expands further never gets allocated.
	body, err := codec.Decompress(data[headerSize+n:], int(bodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing with %s: %v", ErrCorrupt, codecType, err)
	}
	if uint64(len(body)) != bodySize {
		return nil, fmt.Errorf("%w: body is %d bytes, header says %d", ErrCorrupt, len(body), bodySize)
	}
	if xxHash32.Checksum(body, 0) != sum {
		return nil, ErrChecksum
	}

	return parseBody[T](body, cfg)
}

func parseBody[T Char](body []byte, cfg *unmarshalConfig) (*Store[T], error) {
	r := bodyReader{buf: body}

	stepCount := r.count(len(body) / minStepSize)
	steps := make([]Step, stepCount)
	for i := range steps {
		steps[i].Take = r.count(cfg.maxLength)
		steps[i].Backtrack = r.count(cfg.maxLength)
		steps[i].Copy = r.count(cfg.maxLength)
		steps[i].Kind = StepKind(r.readByte())
	}

	elemCount := r.count(len(r.buf))
	if elemCount > cfg.maxLength {
		return nil, fmt.Errorf("%w: %d encoded elements, limit %d", ErrTooLarge, elemCount, cfg.maxLength)
	}
	maxElem := uint64(1)<<(8*elemWidth[T]()) - 1
	elems := make([]T, elemCount)
	for i := range elems {
		v := r.uvarint()
		if v > maxElem {
			r.fail("element out of range")
		}
		elems[i] = T(uint32(v))
	}

	if r.err != nil {
		return nil, r.err
	}
	if len(r.buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(r.buf))
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrCorrupt)
	}
	if err := checkSteps(steps, elems, cfg.maxLength); err != nil {
		return nil, err
	}

	s := newStore[T](Buffers[T]{})
	for _, v := range elems {
		s.encoded.PushBack(v)
	}
	for _, st := range steps {
		s.addStep(st)
	}
	return s, nil
}

// checkSteps verifies that steps can be decoded from elems by both
// Decompress and DecompressExpanded without going out of bounds, and that
// neither output grows past maxLength.
func checkSteps[T Char](steps []Step, elems []T, maxLength int) error {
	pos := 0
	plain, expanded := 0, 0

	for i, st := range steps {
		if st.Kind != StepLiteral && st.Kind != StepRuns {
			return fmt.Errorf("%w: step %d has unknown kind %d", ErrCorrupt, i, st.Kind)
		}
		if st.Take > len(elems)-pos {
			return fmt.Errorf("%w: step %d takes past the end of the stream", ErrCorrupt, i)
		}

		plain += st.Take
		if st.Kind == StepRuns {
			j := pos
			for ; j+1 < pos+st.Take; j += 2 {
				if n := int(elems[j+1]); n > 0 {
					expanded += n
				}
				if expanded > maxLength {
					break
				}
			}
			expanded += pos + st.Take - j
		} else {
			expanded += st.Take
		}
		pos += st.Take

		if st.Copy > 0 && (st.Backtrack < 1 || st.Backtrack > plain || st.Backtrack > expanded) {
			return fmt.Errorf("%w: step %d copies from outside the output", ErrCorrupt, i)
		}
		plain += st.Copy
		expanded += st.Copy

		if plain > maxLength || expanded > maxLength {
			return fmt.Errorf("%w: step %d grows the output past %d elements", ErrTooLarge, i, maxLength)
		}
	}
	return nil
}

type bodyReader struct {
	buf []byte
	err error
}

func (r *bodyReader) fail(msg string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s", ErrCorrupt, msg)
	}
}

func (r *bodyReader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf)
	if n <= 0 {
		r.fail("bad varint")
		return 0
	}
	r.buf = r.buf[n:]
	return v
}

// count reads a uvarint that must not exceed max.
func (r *bodyReader) count(max int) int {
	v := r.uvarint()
	if v > uint64(max) {
		r.fail("count out of range")
		return 0
	}
	return int(v)
}

func (r *bodyReader) readByte() byte {
	if r.err != nil {
		return 0
	}
	if len(r.buf) == 0 {
		r.fail("unexpected end of body")
		return 0
	}
	b := r.buf[0]
	r.buf = r.buf[1:]
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler, writing an
// uncompressed snapshot.
func (s *Store[T]) MarshalBinary() ([]byte, error) {
	return MarshalStore(s)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It replaces the
// contents of s with the snapshot in data. The loaded Store uses deques:
// buffers that s was given with NewWith are dropped, not written to. Use
// NewWith and Compress, or UnmarshalStore, to keep control of the buffers.
func (s *Store[T]) UnmarshalBinary(data []byte) error {
	loaded, err := UnmarshalStore[T](data)
	if err != nil {
		return err
	}
	*s = *loaded
	return nil
}
