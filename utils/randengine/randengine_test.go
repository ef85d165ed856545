package randengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kcc-smart-traffic/corridor-sim/utils/randengine"
)

func TestPTrueBoundaries(t *testing.T) {
	e := randengine.New(42)
	for i := 0; i < 1000; i++ {
		assert.False(t, e.PTrue(0))
		assert.True(t, e.PTrue(1))
	}
}

func TestPTrueFrequency(t *testing.T) {
	e := randengine.New(42)
	hits := 0
	for i := 0; i < 10000; i++ {
		if e.PTrue(0.8) {
			hits++
		}
	}
	assert.InDelta(t, 8000, hits, 300)
}

func TestDiscreteDistribution(t *testing.T) {
	e := randengine.New(42)
	// one-hot weights always pick the hot index
	for i := 0; i < 100; i++ {
		assert.Equal(t, int32(1), e.DiscreteDistribution([]float64{0, 1, 0}))
	}
	// equal weights only produce valid indices, and both of them
	seen := make(map[int32]int)
	for i := 0; i < 1000; i++ {
		idx := e.DiscreteDistribution([]float64{1, 1})
		assert.Contains(t, []int32{0, 1}, idx)
		seen[idx]++
	}
	assert.Positive(t, seen[0])
	assert.Positive(t, seen[1])
}

func TestSameSeedSameSequence(t *testing.T) {
	a, b := randengine.New(7), randengine.New(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}
