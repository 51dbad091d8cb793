package lazystr

// AppendRuns run-length encodes src, appending a (value, count) pair to dst
// for each maximal run of equal elements. It returns the extended slice and
// the number of pairs appended.
//
// The count is converted to T, so a run longer than T can count wraps around.
// The final run is flushed unconditionally: an empty src still appends one
// (0, 0) pair.
func AppendRuns[T Char](dst, src []T) ([]T, int) {
	var current T
	count := 0
	runs := 0

	for i, c := range src {
		if i > 0 && c == current {
			count++
			continue
		}
		if i > 0 {
			dst = append(dst, current, T(count))
			runs++
		}
		current = c
		count = 1
	}

	dst = append(dst, current, T(count))
	return dst, runs + 1
}
