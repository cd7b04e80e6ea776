package core

import "math/rand/v2"

// Source is the randomness consumed by the simulation. Tests substitute
// deterministic implementations.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a uniform value in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Permutation fills dst with a uniformly random permutation of 0..len(dst)-1
// using the Fisher-Yates shuffle driven by src.
func Permutation(dst []int, src Source) {
	for i := range dst {
		dst[i] = i
	}
	for i := len(dst) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		dst[i], dst[j] = dst[j], dst[i]
	}
}

// FillSpins fills the buffer with independent ±1 values.
func FillSpins(src Source, buf []int8) {
	for i := range buf {
		if src.IntN(2) == 1 {
			buf[i] = 1
			continue
		}
		buf[i] = -1
	}
}
