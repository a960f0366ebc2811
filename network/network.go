// Package network defines the compressed-sparse-row road network the
// engine consumes (spec.md §6) and the pluggable Router contract (spec.md
// §4.6). Network construction and spatial indexing are out of scope
// (spec.md §1): this package only holds the already-built structure.
package network

import "github.com/transitforge/meridian/ids"

// Network is a directed graph in compressed-sparse-row form: outgoing
// edges of node i occupy the half-open range
// [OutStart[i], OutStart[i+1]) of the edge arrays.
type Network struct {
	NodePositions [][2]float64 // [lat, lon] per node, opaque to the engine
	OutStart      []uint32     // len(nodes)+1
	EdgeFrom      []ids.NodeId
	EdgeTo        []ids.NodeId
	EdgeLengthM   []float64
	EdgeTravelMs  []float64
}

// NumNodes returns the node count.
func (n *Network) NumNodes() int {
	if len(n.OutStart) == 0 {
		return 0
	}
	return len(n.OutStart) - 1
}

// OutEdges returns the edge id range [start, end) of node's outgoing
// edges.
func (n *Network) OutEdges(node ids.NodeId) (start, end uint32) {
	return n.OutStart[node], n.OutStart[node+1]
}

// Empty returns a zero-node network, the builder default (spec.md §6:
// "optionally a network (default: empty graph)").
func Empty() *Network {
	return &Network{OutStart: []uint32{0}}
}

// TransportMode is the closed enumeration spec.md §4.6 names.
type TransportMode uint8

const (
	ModeNone TransportMode = iota
	ModeCar
	ModeWalk
	ModeBike
	ModeTransit
)

// modeSpeedKmph gives the fixed per-mode speed non-Car modes use to
// derive travel time from edge length (spec.md §4.6).
var modeSpeedKmph = map[TransportMode]float64{
	ModeWalk:    4.5,
	ModeBike:    15.0,
	ModeTransit: 22.0,
}

// Route is the result of a successful routing call: an ordered edge
// sequence plus total travel time in seconds.
type Route struct {
	Edges          []ids.EdgeId
	TotalTravelSecs float32
}

// Router computes a route and duration between two nodes under a
// transport mode (spec.md §4.6). Implementations must be safe for
// concurrent reads: the intent phase never calls Router, but multiple
// sequential apply-phase calls across tick boundaries share one instance.
type Router interface {
	Route(network *Network, from, to ids.NodeId, mode TransportMode) (Route, error)
}
