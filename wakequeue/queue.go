// Package wakequeue implements the sparse, ordered wake queue (spec.md §3
// "Wake queue", §4.4, C5): a sorted mapping from future tick to the
// ascending, duplicate-free list of agents to process at that tick.
package wakequeue

import (
	"github.com/emirpasic/gods/v2/trees/redblacktree"
	"github.com/emirpasic/gods/v2/utils"

	"github.com/transitforge/meridian/ids"
)

// Queue is backed by a red-black tree keyed by Tick, giving O(log T)
// enqueue, O(log T + k) drain, and in-order iteration for snapshot/debug
// tooling (spec.md §9 "Wake queue representation"), the concrete form of
// the abstract "sorted map" the spec describes.
type Queue struct {
	tree  *redblacktree.Tree[ids.Tick, []ids.AgentId]
	total int
}

// New builds an empty wake queue.
func New() *Queue {
	cmp := utils.Comparator[ids.Tick](func(a, b ids.Tick) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
	return &Queue{tree: redblacktree.NewWith[ids.Tick, []ids.AgentId](cmp)}
}

// Push inserts agent into the bucket for tick, maintaining ascending
// order within that bucket and suppressing a duplicate (tick, agent)
// entry at insertion time (spec.md §9: "Duplicate entries... must be
// suppressed at insertion").
func (q *Queue) Push(tick ids.Tick, agent ids.AgentId) {
	bucket, _ := q.tree.Get(tick)
	newBucket, inserted := ids.InsertAscending(bucket, agent)
	if !inserted {
		return
	}
	q.tree.Put(tick, newBucket)
	q.total++
}

// DrainTick removes and returns the ascending agent list queued for tick,
// or an empty slice if none exists. The returned slice is a snapshot: the
// caller owns it and the queue holds no more reference to it.
func (q *Queue) DrainTick(tick ids.Tick) []ids.AgentId {
	bucket, found := q.tree.Get(tick)
	if !found {
		return nil
	}
	q.tree.Remove(tick)
	q.total -= len(bucket)
	return bucket
}

// NextNonemptyTick returns the smallest tick with a non-empty bucket, if
// any.
func (q *Queue) NextNonemptyTick() (ids.Tick, bool) {
	if q.tree.Empty() {
		return 0, false
	}
	return q.tree.Left().Key, true
}

// TotalQueuedCount returns the total number of (tick, agent) entries
// currently queued across all ticks.
func (q *Queue) TotalQueuedCount() int { return q.total }

// DistinctTickCount returns the number of ticks with at least one queued
// agent.
func (q *Queue) DistinctTickCount() int { return q.tree.Size() }
