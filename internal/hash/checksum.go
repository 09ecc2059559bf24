package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 digest of a compressed block.
//
// The decoder recomputes it before decompressing a block and treats any
// mismatch as corrupt data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
