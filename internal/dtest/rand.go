package dtest

import (
	"crypto/sha256"
	"math/rand/v2"
	"testing"
)

// RandForTest returns a pseudorandom source
// seeded deterministically from the test name,
// so that a failing randomized test can be reproduced by rerunning it.
func RandForTest(t *testing.T) *rand.Rand {
	// Sha256 happens to be the right size for the chacha8 seed,
	// and we are not limited by the length of any particular test name.
	seed := sha256.Sum256([]byte(t.Name()))
	return rand.New(rand.NewChaCha8(seed))
}

// RandomChunksForTest splits total into pseudorandom positive chunks,
// each no larger than maxChunk.
// The chunks always sum to exactly total.
func RandomChunksForTest(t *testing.T, total, maxChunk int) []int {
	if maxChunk <= 0 {
		panic("BUG: maxChunk must be positive")
	}

	r := RandForTest(t)

	var out []int
	for total > 0 {
		n := 1 + r.IntN(maxChunk)
		if n > total {
			n = total
		}
		out = append(out, n)
		total -= n
	}
	return out
}
