package wakequeue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitforge/meridian/ids"
	"github.com/transitforge/meridian/wakequeue"
)

func TestDrainEmptyTickReturnsEmpty(t *testing.T) {
	q := wakequeue.New()
	assert.Empty(t, q.DrainTick(ids.Tick(5)))
}

func TestPushMaintainsAscendingOrderWithinTick(t *testing.T) {
	q := wakequeue.New()
	for _, a := range []ids.AgentId{5, 1, 3, 1, 4} {
		q.Push(ids.Tick(10), a)
	}
	got := q.DrainTick(ids.Tick(10))
	assert.Equal(t, []ids.AgentId{1, 3, 4, 5}, got) // duplicate suppressed
}

func TestDrainRemovesTheBucket(t *testing.T) {
	q := wakequeue.New()
	q.Push(ids.Tick(1), ids.AgentId(9))
	q.DrainTick(ids.Tick(1))
	assert.Empty(t, q.DrainTick(ids.Tick(1)))
}

func TestNextNonemptyTick(t *testing.T) {
	q := wakequeue.New()
	_, ok := q.NextNonemptyTick()
	assert.False(t, ok)

	q.Push(ids.Tick(7), ids.AgentId(1))
	q.Push(ids.Tick(3), ids.AgentId(2))
	tick, ok := q.NextNonemptyTick()
	require.True(t, ok)
	assert.EqualValues(t, 3, tick)
}

func TestCounters(t *testing.T) {
	q := wakequeue.New()
	q.Push(ids.Tick(1), ids.AgentId(1))
	q.Push(ids.Tick(1), ids.AgentId(2))
	q.Push(ids.Tick(2), ids.AgentId(3))
	assert.Equal(t, 3, q.TotalQueuedCount())
	assert.Equal(t, 2, q.DistinctTickCount())

	q.DrainTick(ids.Tick(1))
	assert.Equal(t, 1, q.TotalQueuedCount())
	assert.Equal(t, 1, q.DistinctTickCount())
}
