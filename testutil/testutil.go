package testutil

import (
	"math/rand"
	"sync"
)

// RNG is a seeded random source for reproducible test data.
// Calls may come from several goroutines.
type RNG struct {
	mu   sync.Mutex
	src  *rand.Rand
	seed int64
}

// NewRNG returns an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		src:  rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

func (r *RNG) locked(fn func(src *rand.Rand)) {
	r.mu.Lock()
	fn(r.src)
	r.mu.Unlock()
}

// Reset rewinds the sequence to the start of the seed.
func (r *RNG) Reset() {
	r.locked(func(src *rand.Rand) { src.Seed(r.seed) })
}

// Seed reports the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (r *RNG) Intn(n int) (x int) {
	r.locked(func(src *rand.Rand) { x = src.Intn(n) })
	return x
}

// Ints returns n values drawn from [0, maxVal).
func (r *RNG) Ints(n, maxVal int) []int {
	out := make([]int, n)
	r.locked(func(src *rand.Rand) {
		for i := range out {
			out[i] = src.Intn(maxVal)
		}
	})
	return out
}

// Bools returns n booleans, each true with probability density.
func (r *RNG) Bools(n int, density float64) []bool {
	out := make([]bool, n)
	r.locked(func(src *rand.Rand) {
		for i := range out {
			out[i] = src.Float64() < density
		}
	})
	return out
}
