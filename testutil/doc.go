// Package testutil provides testing utilities for seqbuf.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG for generating element and bit
// sequences in property-style tests.
//
//	rng := testutil.NewRNG(seed)
//	values := rng.Ints(100, 256)  // 100 values in [0, 256)
//	bits := rng.Bools(100, 0.3)   // ~30% set
package testutil
