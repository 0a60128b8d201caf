package engine

import (
	"math/rand/v2"
)

// Rand is the random source threaded through board construction and mine
// placement. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewRand returns a PCG-backed source; the same seed always produces the same
// cosmetics and mine layout for the same sequence of digs.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed draws a seed from the runtime's global generator.
func RandomSeed() uint64 {
	return rand.Uint64()
}
