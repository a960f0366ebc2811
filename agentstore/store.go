// Package agentstore implements the structure-of-arrays agent table
// (spec.md §3 "Agent store", §4 C3): one contiguous array per field,
// indexed by agent id, plus an application-extensible component registry.
package agentstore

import (
	"reflect"

	"github.com/transitforge/meridian/ids"
)

// Store is the SoA table of N agents. The required fields cover movement
// and activity bookkeeping; everything else is a registered component.
type Store struct {
	n int

	currentNode   []ids.NodeId
	currentEdge   []ids.EdgeId
	edgeProgress  []float32
	nextEventTick []ids.Tick
	currentActivity []ids.ActivityId
	mode          []uint8 // transport mode, mirrors network.TransportMode's underlying type

	components map[reflect.Type]component
}

// component erases the element type of one registered array so Store can
// hold heterogeneous component arrays in a single map, per spec.md §9
// "Component storage" (keyed by whatever the host language offers for
// run-time type identity — reflect.Type, in Go).
type component interface {
	grow(toLen int)
	len() int
}

// typedComponent is the concrete, type-safe backing array for one
// registered component type T.
type typedComponent[T any] struct {
	values []T
	zero   T
}

func (c *typedComponent[T]) grow(toLen int) {
	for len(c.values) < toLen {
		c.values = append(c.values, c.zero)
	}
}
func (c *typedComponent[T]) len() int { return len(c.values) }

// New builds a store for n agents: current node, current edge and current
// activity start at their Invalid sentinels (per spec.md §3 "initial
// position array default: all INVALID"), every other field at zero.
func New(n int) *Store {
	s := &Store{
		n:               n,
		currentNode:     make([]ids.NodeId, n),
		currentEdge:     make([]ids.EdgeId, n),
		edgeProgress:    make([]float32, n),
		nextEventTick:   make([]ids.Tick, n),
		currentActivity: make([]ids.ActivityId, n),
		mode:            make([]uint8, n),
		components:      make(map[reflect.Type]component),
	}
	for i := range s.currentNode {
		s.currentNode[i] = ids.InvalidNode
		s.currentEdge[i] = ids.InvalidEdge
		s.currentActivity[i] = ids.InvalidActivity
	}
	return s
}

// Len returns the number of agents (Invariant D1: every component array
// has exactly this length).
func (s *Store) Len() int { return s.n }

// Grow extends the store to n agents. Every previously registered
// component array grows to match, initialized to that component's zero
// value for the new slots (spec.md §9: "On new-agent insertion, every
// registered array grows by one default element").
func (s *Store) Grow(n int) {
	if n <= s.n {
		return
	}
	s.currentNode = growNode(s.currentNode, n, ids.InvalidNode)
	s.currentEdge = growEdge(s.currentEdge, n, ids.InvalidEdge)
	s.edgeProgress = growF32(s.edgeProgress, n, 0)
	s.nextEventTick = growTick(s.nextEventTick, n, 0)
	s.currentActivity = growActivity(s.currentActivity, n, ids.InvalidActivity)
	s.mode = growU8(s.mode, n, 0)
	for _, c := range s.components {
		c.grow(n)
	}
	s.n = n
}

func growNode(s []ids.NodeId, n int, zero ids.NodeId) []ids.NodeId {
	for len(s) < n {
		s = append(s, zero)
	}
	return s
}
func growEdge(s []ids.EdgeId, n int, zero ids.EdgeId) []ids.EdgeId {
	for len(s) < n {
		s = append(s, zero)
	}
	return s
}
func growF32(s []float32, n int, zero float32) []float32 {
	for len(s) < n {
		s = append(s, zero)
	}
	return s
}
func growTick(s []ids.Tick, n int, zero ids.Tick) []ids.Tick {
	for len(s) < n {
		s = append(s, zero)
	}
	return s
}
func growActivity(s []ids.ActivityId, n int, zero ids.ActivityId) []ids.ActivityId {
	for len(s) < n {
		s = append(s, zero)
	}
	return s
}
func growU8(s []uint8, n int, zero uint8) []uint8 {
	for len(s) < n {
		s = append(s, zero)
	}
	return s
}

// CurrentNode returns the logical position of agent a.
func (s *Store) CurrentNode(a ids.AgentId) ids.NodeId { return s.currentNode[a] }

// SetCurrentNode updates the logical position of agent a.
func (s *Store) SetCurrentNode(a ids.AgentId, node ids.NodeId) { s.currentNode[a] = node }

// CurrentActivity returns the cached activity id for agent a, as last set
// through SetCurrentActivity (InvalidActivity until then). The
// orchestrator does not write this column.
func (s *Store) CurrentActivity(a ids.AgentId) ids.ActivityId { return s.currentActivity[a] }

// SetCurrentActivity updates the cached activity id for agent a.
func (s *Store) SetCurrentActivity(a ids.AgentId, act ids.ActivityId) {
	s.currentActivity[a] = act
}

// NextEventTick returns the tick last stored through SetNextEventTick (0
// until then), for diagnostic/snapshot purposes. The wake queue is the
// source of truth for scheduling; the orchestrator does not write this
// column.
func (s *Store) NextEventTick(a ids.AgentId) ids.Tick { return s.nextEventTick[a] }

// SetNextEventTick updates the cached next-event tick for agent a.
func (s *Store) SetNextEventTick(a ids.AgentId, t ids.Tick) { s.nextEventTick[a] = t }

// TransportMode returns the transport mode last stored through
// SetTransportMode (0 until then); the orchestrator does not write this
// column when it starts a trip.
func (s *Store) TransportMode(a ids.AgentId) uint8 { return s.mode[a] }

// SetTransportMode updates the agent's transport mode.
func (s *Store) SetTransportMode(a ids.AgentId, m uint8) { s.mode[a] = m }

// CurrentNodes returns the full current-position column as a read-only
// slice, for observers and read-only behavior context.
func (s *Store) CurrentNodes() []ids.NodeId { return s.currentNode }
