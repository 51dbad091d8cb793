// Package lazystr implements a lazily decompressed string container.
//
// A Store keeps its contents as an append-only encoded stream plus a list of
// reconstruction steps. Each step says how many encoded elements to take
// verbatim, and then how far back in the already-decoded output to seek and
// how many elements to copy from there. Nothing is decoded until the Store is
// read, and every read decodes from scratch.
//
// Writes come in two flavors: the initial contents, which are stored as they
// are, and Compress passes, which append a run-length encoding of a new
// sequence as (value, count) pairs. The default decoder copies those pairs
// through unchanged; Expanded and DecompressExpanded are a separate path that
// turns them back into runs.
package lazystr

// A Step is one reconstruction instruction.
type Step struct {
	// Take is the number of elements to copy verbatim from the encoded
	// stream, continuing where the previous step stopped.
	Take int

	// Backtrack is how far back from the end of the output to start copying.
	Backtrack int

	// Copy is the number of elements to copy from that point. It may be
	// larger than Backtrack, in which case the copy overlaps its own output.
	Copy int

	Kind StepKind
}

// A StepKind records which writer produced a step.
type StepKind uint8

const (
	// StepLiteral steps hold their elements as they are.
	StepLiteral StepKind = iota

	// StepRuns steps hold (value, count) pairs from run-length encoding.
	StepRuns
)

func (k StepKind) String() string {
	switch k {
	case StepLiteral:
		return "literal"
	case StepRuns:
		return "runs"
	default:
		return "unknown"
	}
}

// Char is the set of element types that can be run-length encoded. A run
// count is stored in the element type itself, so it wraps at 256 for bytes,
// 65536 for uint16 and 1<<31 for runes.
type Char interface {
	~uint8 | ~uint16 | ~int32
}

// A Sequence is a read-only, randomly indexable list of elements.
type Sequence[T any] interface {
	At(i int) T
	Len() int
}

// A Buffer is the backing store of a Store: a Sequence that can grow at
// either end. *deque.Deque[T] from github.com/gammazero/deque satisfies it.
type Buffer[T any] interface {
	Sequence[T]
	PushBack(v T)
	PushFront(v T)
}

// Slice adapts a plain slice to the Sequence interface.
type Slice[T any] []T

func (s Slice[T]) At(i int) T { return s[i] }

func (s Slice[T]) Len() int { return len(s) }
