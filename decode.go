package lazystr

// Decompress rebuilds a sequence from an encoded stream and a list of
// steps given as three parallel sequences.
//
// For each step i, it appends the next take[i] elements of encoded to the
// output as they are, then copies copies[i] elements starting backtrack[i]
// elements before the end of the output. The copy reads what it has just
// written, so copies[i] may be larger than backtrack[i].
//
// The steps are not validated. A step that takes past the end of encoded,
// or copies from outside the output, panics.
func Decompress[T any](encoded Sequence[T], take, backtrack, copies Sequence[int]) []T {
	var out []T
	pos := 0

	for i := 0; i < take.Len(); i++ {
		for end := pos + take.At(i); pos < end; pos++ {
			out = append(out, encoded.At(pos))
		}
		out = copyBack(out, backtrack.At(i), copies.At(i))
	}

	return out
}

// DecompressExpanded is like Decompress, but elements in StepRuns steps are
// read as (value, count) pairs and each value is repeated count times.
// A pair whose count wrapped around during encoding expands to the wrapped
// length.
func DecompressExpanded[T Char](encoded Sequence[T], take, backtrack, copies Sequence[int], kinds Sequence[StepKind]) []T {
	var out []T
	pos := 0

	for i := 0; i < take.Len(); i++ {
		end := pos + take.At(i)
		if kinds.At(i) == StepRuns {
			for ; pos+1 < end; pos += 2 {
				v := encoded.At(pos)
				for n := int(encoded.At(pos + 1)); n > 0; n-- {
					out = append(out, v)
				}
			}
		}
		// Literal steps, and an unpaired trailing element in a runs step.
		for ; pos < end; pos++ {
			out = append(out, encoded.At(pos))
		}
		out = copyBack(out, backtrack.At(i), copies.At(i))
	}

	return out
}

func copyBack[T any](out []T, backtrack, n int) []T {
	start := len(out) - backtrack
	for i := 0; i < n; i++ {
		out = append(out, out[start+i])
	}
	return out
}
