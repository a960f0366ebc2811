// Package mobility implements the movement-state array, the active-route
// table, and the teleport-at-arrival model (spec.md §3 "Movement state",
// §4.5, C7).
package mobility

import (
	"github.com/transitforge/meridian/ids"
	"github.com/transitforge/meridian/network"
	"github.com/transitforge/meridian/simerr"
	"github.com/transitforge/meridian/tickclock"
)

// State is one agent's movement record (spec.md §3). When InTransit is
// false, the agent's logical position is DepartureNode and
// DestinationNode is the sentinel.
type State struct {
	InTransit       bool
	DepartureNode   ids.NodeId
	DestinationNode ids.NodeId
	DepartureTick   ids.Tick
	ArrivalTick     ids.Tick
}

// Engine owns the per-agent movement-state array and the sparse
// active-route table, plus a reference to the pluggable Router (spec.md
// §9: router is shared-immutable, movement state is mutable-in-apply-
// phase-only — two separate top-level objects).
type Engine struct {
	states []State
	routes map[ids.AgentId]network.Route
	router network.Router
}

// New builds a mobility engine for n agents, all stationary at the
// invalid node (spec.md §6 builder default: "initial-position array
// default: all INVALID").
func New(n int, router network.Router) *Engine {
	states := make([]State, n)
	for i := range states {
		states[i] = State{DepartureNode: ids.InvalidNode, DestinationNode: ids.InvalidNode}
	}
	return &Engine{states: states, routes: make(map[ids.AgentId]network.Route), router: router}
}

// Grow extends the movement-state array to cover n agents.
func (e *Engine) Grow(n int) {
	for len(e.states) < n {
		e.states = append(e.states, State{DepartureNode: ids.InvalidNode, DestinationNode: ids.InvalidNode})
	}
}

// State returns agent's movement state.
func (e *Engine) State(agent ids.AgentId) State { return e.states[agent] }

// Place initializes agent as stationary at node. Used for initial
// placement before the tick loop starts.
func (e *Engine) Place(agent ids.AgentId, node ids.NodeId, tick ids.Tick) {
	e.states[agent] = State{
		InTransit:       false,
		DepartureNode:   node,
		DestinationNode: ids.InvalidNode,
		DepartureTick:   tick,
		ArrivalTick:     tick,
	}
	delete(e.routes, agent)
}

// BeginTravel starts a trip for agent (spec.md §4.5). Fails with a
// MobilityError if the agent is already in transit; fails with whatever
// the Router returns if no route exists. On success it updates the
// movement state, stores the route, and returns the arrival tick.
func (e *Engine) BeginTravel(
	agent ids.AgentId,
	destination ids.NodeId,
	mode network.TransportMode,
	now ids.Tick,
	clock tickclock.Clock,
	net *network.Network,
) (ids.Tick, error) {
	st := e.states[agent]
	if st.InTransit {
		return 0, &simerr.MobilityError{Agent: agent, Cause: simerr.ErrAlreadyInTransit}
	}
	route, err := e.router.Route(net, st.DepartureNode, destination, mode)
	if err != nil {
		return 0, err
	}
	// Every begun trip consumes at least one tick (testable property 5),
	// even a same-node, zero-duration route: TicksForSeconds(0) reports 0
	// ticks elapsed, which would otherwise enqueue an arrival at a tick
	// already drained this phase and strand the agent in transit forever.
	ticks := clock.TicksForSeconds(float64(route.TotalTravelSecs))
	if ticks == 0 {
		ticks = 1
	}
	arrival := now + ids.Tick(ticks)
	e.states[agent] = State{
		InTransit:       true,
		DepartureNode:   st.DepartureNode,
		DestinationNode: destination,
		DepartureTick:   now,
		ArrivalTick:     arrival,
	}
	e.routes[agent] = route
	return arrival, nil
}

// Arrival is one agent's teleport-at-arrival result.
type Arrival struct {
	Agent           ids.AgentId
	DestinationNode ids.NodeId
}

// TickArrivals returns every agent whose ArrivalTick == now and who is
// still in transit, flipping each to stationary at its destination
// (spec.md §4.1 phase 1, §4.5 tick_arrivals). Only the given agents are
// checked, and they must be given in ascending order to produce a
// deterministic Arrivals order; the orchestrator passes the agents its
// arrival index holds for now.
func (e *Engine) TickArrivals(now ids.Tick, agents []ids.AgentId) []Arrival {
	var arrivals []Arrival
	for _, a := range agents {
		st := e.states[a]
		if st.InTransit && st.ArrivalTick == now {
			e.states[a] = State{
				InTransit:     false,
				DepartureNode: st.DestinationNode,
				DestinationNode: ids.InvalidNode,
				DepartureTick: now,
				ArrivalTick:   now,
			}
			delete(e.routes, a)
			arrivals = append(arrivals, Arrival{Agent: a, DestinationNode: st.DestinationNode})
		}
	}
	return arrivals
}

// VisualPosition linearly interpolates an in-transit agent's position for
// observers (spec.md §4.5). Returns (departure, destination, progress).
// progress is clamped to [0, 1]; stationary agents report progress 0 at
// their own node as both departure and destination.
func (e *Engine) VisualPosition(agent ids.AgentId, now ids.Tick) (ids.NodeId, ids.NodeId, float64) {
	st := e.states[agent]
	if !st.InTransit {
		return st.DepartureNode, st.DepartureNode, 0
	}
	span := int64(st.ArrivalTick) - int64(st.DepartureTick)
	if span <= 0 {
		return st.DepartureNode, st.DestinationNode, 1
	}
	p := float64(int64(now)-int64(st.DepartureTick)) / float64(span)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return st.DepartureNode, st.DestinationNode, p
}

// ActiveRoute returns the stored route for an in-transit agent, for
// observer interpolation only — the scheduler itself needs only
// ArrivalTick (spec.md §3 "Active-route table").
func (e *Engine) ActiveRoute(agent ids.AgentId) (network.Route, bool) {
	r, ok := e.routes[agent]
	return r, ok
}
