package lazystr

import (
	"iter"
	"strings"

	"github.com/gammazero/deque"
)

// A Store is a sequence of elements kept in encoded form and decoded on
// every read.
//
// A Store is not safe for concurrent use. Reads may run in parallel with
// each other, but not with New or Compress.
type Store[T Char] struct {
	encoded   Buffer[T]
	take      Buffer[int]
	backtrack Buffer[int]
	copies    Buffer[int]
	kinds     Buffer[StepKind]

	scratch []T
}

// Buffers holds the backing buffers for a Store. They must be empty.
// A nil field is replaced by a *deque.Deque.
type Buffers[T any] struct {
	Encoded   Buffer[T]
	Take      Buffer[int]
	Backtrack Buffer[int]
	Copy      Buffer[int]
	Kinds     Buffer[StepKind]
}

// New returns a Store holding original. The elements are stored as they
// are, in a single literal step.
func New[T Char](original []T) *Store[T] {
	return NewWith(original, Buffers[T]{})
}

// NewString returns a Store holding the runes of s.
func NewString(s string) *Store[rune] {
	return New([]rune(s))
}

// NewWith is like New, but stores its data in the buffers from b.
func NewWith[T Char](original []T, b Buffers[T]) *Store[T] {
	s := newStore(b)
	for _, v := range original {
		s.encoded.PushBack(v)
	}
	s.addStep(Step{Take: len(original), Kind: StepLiteral})
	return s
}

// newStore returns a Store with no steps.
func newStore[T Char](b Buffers[T]) *Store[T] {
	s := &Store[T]{
		encoded:   b.Encoded,
		take:      b.Take,
		backtrack: b.Backtrack,
		copies:    b.Copy,
		kinds:     b.Kinds,
	}
	if s.encoded == nil {
		s.encoded = new(deque.Deque[T])
	}
	if s.take == nil {
		s.take = new(deque.Deque[int])
	}
	if s.backtrack == nil {
		s.backtrack = new(deque.Deque[int])
	}
	if s.copies == nil {
		s.copies = new(deque.Deque[int])
	}
	if s.kinds == nil {
		s.kinds = new(deque.Deque[StepKind])
	}
	return s
}

func (s *Store[T]) addStep(st Step) {
	s.take.PushBack(st.Take)
	s.backtrack.PushBack(st.Backtrack)
	s.copies.PushBack(st.Copy)
	s.kinds.PushBack(st.Kind)
}

// Compress run-length encodes original and appends it to s as a new step.
// Earlier steps are left alone.
//
// The default decoder does not expand the pairs, so after Compress the
// output of All holds the (value, count) pairs rather than the runs; use
// Expanded to get the runs back.
func (s *Store[T]) Compress(original []T) {
	pairs, _ := AppendRuns(s.scratch[:0], original)
	for _, v := range pairs {
		s.encoded.PushBack(v)
	}
	s.addStep(Step{Take: len(pairs), Kind: StepRuns})
	s.scratch = pairs[:0]
}

// EncodedLength returns the number of encoded elements plus the number of
// steps. It is a rough size measure, not a byte count.
func (s *Store[T]) EncodedLength() int {
	return s.encoded.Len() + s.copies.Len()
}

// Steps returns a copy of the reconstruction steps.
func (s *Store[T]) Steps() []Step {
	steps := make([]Step, s.take.Len())
	for i := range steps {
		steps[i] = Step{
			Take:      s.take.At(i),
			Backtrack: s.backtrack.At(i),
			Copy:      s.copies.At(i),
			Kind:      s.kinds.At(i),
		}
	}
	return steps
}

// Encoded returns a copy of the encoded stream.
func (s *Store[T]) Encoded() []T {
	out := make([]T, s.encoded.Len())
	for i := range out {
		out[i] = s.encoded.At(i)
	}
	return out
}

// Decode decodes s with Decompress and returns the result.
func (s *Store[T]) Decode() []T {
	return Decompress[T](s.encoded, s.take, s.backtrack, s.copies)
}

// All returns an iterator over the decoded contents of s. Each iteration
// decodes s again, so it sees every step added before it started.
func (s *Store[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.Decode() {
			if !yield(v) {
				return
			}
		}
	}
}

// Expanded is like All, but decodes with DecompressExpanded, so the runs
// added by Compress come back as runs.
func (s *Store[T]) Expanded() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range DecompressExpanded[T](s.encoded, s.take, s.backtrack, s.copies, s.kinds) {
			if !yield(v) {
				return
			}
		}
	}
}

// String returns the decoded contents of s, one rune per element.
func (s *Store[T]) String() string {
	var b strings.Builder
	for v := range s.All() {
		b.WriteRune(rune(v))
	}
	return b.String()
}
