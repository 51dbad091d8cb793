package lazystr

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// AppendText appends a human-readable rendering of the steps in s to dst.
// Literal elements are written as they are, run-length pairs as {c*n}, and
// copy-backs as <copy,backtrack> symbols. Unprintable elements are written
// in U+XXXX form.
func AppendText[T Char](dst []byte, s *Store[T]) []byte {
	pos := 0
	for _, st := range s.Steps() {
		end := pos + st.Take
		if st.Kind == StepRuns {
			for ; pos+1 < end; pos += 2 {
				dst = append(dst, '{')
				dst = appendElem(dst, s.encoded.At(pos))
				dst = fmt.Appendf(dst, "*%d}", int(s.encoded.At(pos+1)))
			}
		}
		for ; pos < end; pos++ {
			dst = appendElem(dst, s.encoded.At(pos))
		}
		if st.Copy > 0 {
			dst = fmt.Appendf(dst, "<%d,%d>", st.Copy, st.Backtrack)
		}
	}
	return dst
}

func appendElem[T Char](dst []byte, v T) []byte {
	r := rune(v)
	if !utf8.ValidRune(r) || !unicode.IsPrint(r) {
		return fmt.Appendf(dst, "%U", r)
	}
	return utf8.AppendRune(dst, r)
}
