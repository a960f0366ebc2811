// Package ids defines the opaque integer identifiers shared across the
// engine: agents, nodes, edges, activities, and the absolute tick counter.
package ids

import "math"

// AgentId identifies one simulated agent. Ordering on AgentId is the
// canonical tiebreaker throughout the scheduler (wake queue drains,
// intent application order).
type AgentId uint32

// InvalidAgent is the sentinel "no agent" value.
const InvalidAgent AgentId = math.MaxUint32

// Valid reports whether the id is not the sentinel.
func (a AgentId) Valid() bool { return a != InvalidAgent }

// NodeId identifies a node in the consumed road network.
type NodeId uint32

// InvalidNode is the sentinel "no node" value.
const InvalidNode NodeId = math.MaxUint32

func (n NodeId) Valid() bool { return n != InvalidNode }

// EdgeId identifies an edge in the consumed road network.
type EdgeId uint32

// InvalidEdge is the sentinel "no edge" value.
const InvalidEdge EdgeId = math.MaxUint32

func (e EdgeId) Valid() bool { return e != InvalidEdge }

// ActivityId identifies an activity kind within a plan.
type ActivityId uint16

// InvalidActivity is the sentinel "no activity" value.
const InvalidActivity ActivityId = math.MaxUint16

func (a ActivityId) Valid() bool { return a != InvalidActivity }

// Tick is an absolute, 64-bit simulation step counter starting at 0.
type Tick uint64

// Less reports t < other; exported for use by sorted containers that want
// an explicit comparator rather than relying on operator overloading.
func (t Tick) Less(other Tick) bool { return t < other }

// AgentsAscending sorts a slice of AgentId in place, ascending, the order
// drained wake-queue buckets and intent-collection output are in
// (Invariant O1 / D3). The engine itself keeps buckets ascending through
// InsertAscending and does not call this.
func AgentsAscending(ids []AgentId) {
	// insertion sort: slices of agent ids sharing a tick are typically
	// small, so this avoids sort.Slice's overhead and allocation.
	for i := 1; i < len(ids); i++ {
		v := ids[i]
		j := i - 1
		for j >= 0 && ids[j] > v {
			ids[j+1] = ids[j]
			j--
		}
		ids[j+1] = v
	}
}

// InsertAscending inserts id into an already-ascending, duplicate-free
// slice, preserving both properties. Returns the (possibly reallocated)
// slice and whether an insertion happened (false if id was already
// present).
func InsertAscending(ids []AgentId, id AgentId) ([]AgentId, bool) {
	lo, hi := 0, len(ids)
	for lo < hi {
		mid := (lo + hi) / 2
		if ids[mid] < id {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(ids) && ids[lo] == id {
		return ids, false
	}
	ids = append(ids, InvalidAgent)
	copy(ids[lo+1:], ids[lo:])
	ids[lo] = id
	return ids, true
}
