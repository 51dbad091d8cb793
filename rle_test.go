package lazystr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendRuns(t *testing.T) {
	tests := []struct {
		in    string
		pairs []rune
		runs  int
	}{
		{"", []rune{0, 0}, 1},
		{"a", []rune{'a', 1}, 1},
		{"aaabbbbc", []rune{'a', 3, 'b', 4, 'c', 1}, 3},
		{"abab", []rune{'a', 1, 'b', 1, 'a', 1, 'b', 1}, 4},
		{"zzzz", []rune{'z', 4}, 1},
	}
	for _, tt := range tests {
		pairs, runs := AppendRuns(nil, []rune(tt.in))
		require.Equal(t, tt.pairs, pairs, "input %q", tt.in)
		require.Equal(t, tt.runs, runs, "input %q", tt.in)
		require.Len(t, pairs, 2*runs)
	}
}

func TestAppendRunsExtendsDst(t *testing.T) {
	dst := []byte("prefix")
	dst, runs := AppendRuns(dst, []byte("xxy"))
	require.Equal(t, append([]byte("prefix"), 'x', 2, 'y', 1), dst)
	require.Equal(t, 2, runs)
}
