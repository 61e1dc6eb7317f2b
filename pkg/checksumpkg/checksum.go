// Package checksumpkg provides the DJB2 rolling checksum shared by the
// account directory and the ledger.
//
// The checksum is deterministic and fast but not cryptographic: collisions
// are expected, the directory tolerates them with bucket chaining and the
// ledger uses the digest only as a change-detection heuristic.
package checksumpkg

import "strconv"

const seed = 5381

// Sum returns the DJB2 checksum of b: a 64-bit accumulator starting at 5381,
// multiplied by 33 and incremented by each byte, wrapping on overflow.
func Sum(b []byte) uint64 {
	h := uint64(seed)
	for _, c := range b {
		h = h*33 + uint64(c)
	}

	return h
}

// Digest returns the checksum of s rendered as a decimal string, the form
// stored in ledger blocks.
func Digest(s string) string {
	return strconv.FormatUint(Sum([]byte(s)), 10)
}

// Bucket reduces the checksum of s modulo n for hash table placement.
func Bucket(s string, n int) int {
	return int(Sum([]byte(s)) % uint64(n))
}
