package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitforge/meridian/ids"
	"github.com/transitforge/meridian/rng"
)

func TestStreamIsDeterministicForFixedSeed(t *testing.T) {
	a := rng.NewStream(42)
	b := rng.NewStream(42)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestIntNStaysInRange(t *testing.T) {
	s := rng.NewStream(7)
	for i := 0; i < 1000; i++ {
		v := s.IntN(17)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 17)
	}
}

func TestBernoulliBoundaries(t *testing.T) {
	s := rng.NewStream(1)
	assert.False(t, s.Bernoulli(0))
	assert.True(t, s.Bernoulli(1))
}

func TestPoolSeedIsolation(t *testing.T) {
	p := rng.NewPool(8, 42)
	seen := make(map[uint64]bool)
	for i := 0; i < p.Len(); i++ {
		s := p.Borrow(ids.AgentId(i))
		v := s.Uint64()
		assert.False(t, seen[v], "stream %d collided with another agent's first output", i)
		seen[v] = true
	}
}

func TestPoolBorrowManyPreservesOrder(t *testing.T) {
	p := rng.NewPool(10, 99)
	want := []ids.AgentId{1, 3, 5, 7}
	got := p.BorrowMany(want)
	require.Len(t, got, len(want))
	for i, a := range want {
		assert.Same(t, p.Borrow(a), got[i])
	}
}

func TestAssertDistinctPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		rng.AssertDistinct([]ids.AgentId{1, 2, 2})
	})
	assert.NotPanics(t, func() {
		rng.AssertDistinct([]ids.AgentId{1, 2, 3})
	})
}

func TestGrowPreservesExistingStreams(t *testing.T) {
	p := rng.NewPool(4, 5)
	first := p.Borrow(0)
	p.Grow(8)
	assert.Same(t, first, p.Borrow(0))
	assert.Equal(t, 8, p.Len())
}
