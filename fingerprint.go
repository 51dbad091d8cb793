package lazystr

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a 64-bit xxHash of the decoded contents of s, with
// each element hashed as a little-endian uint32. Stores that decode to the
// same elements have the same fingerprint, however they were built.
func (s *Store[T]) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [4]byte
	for v := range s.All() {
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		d.Write(buf[:])
	}
	return d.Sum64()
}
