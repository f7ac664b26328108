package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInts(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Ints(64, 10)

	assert.Len(t, v, 64)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, 0)
		assert.Less(t, x, 10)
	}
}

func TestBools(t *testing.T) {
	rng := NewRNG(4711)

	assert.NotContains(t, rng.Bools(100, 0), true)
	assert.NotContains(t, rng.Bools(100, 1), false)
	assert.Len(t, rng.Bools(17, 0.5), 17)
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)

	first := rng.Ints(16, 1000)
	rng.Reset()
	second := rng.Ints(16, 1000)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(42), rng.Seed())
}
