package network

import (
	"container/heap"

	"github.com/transitforge/meridian/ids"
	"github.com/transitforge/meridian/simerr"
)

// DijkstraRouter is a reference Router implementation over the CSR
// Network, grounded on the same container/heap priority-queue idiom the
// teacher's batch driver uses for its arrival event queue. spec.md treats
// the router purely as an external interface; this implementation exists
// so the orchestrator has something concrete to exercise end to end.
type DijkstraRouter struct{}

// frontier is the min-heap of partial paths, ordered by accumulated cost.
type frontier []frontierEntry

type frontierEntry struct {
	node ids.NodeId
	cost float64
}

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].cost < f[j].cost }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(frontierEntry)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	v := old[n-1]
	*f = old[:n-1]
	return v
}

// Route runs Dijkstra's algorithm from "from" to "to" over edges weighted
// by travel time: Car uses the network's own EdgeTravelMs; every other
// mode substitutes a fixed per-mode speed and derives time from edge
// length (spec.md §4.6); a mode with no speed of its own (ModeNone) uses
// the walking speed.
func (DijkstraRouter) Route(net *Network, from, to ids.NodeId, mode TransportMode) (Route, error) {
	n := net.NumNodes()
	if int(from) >= n || int(to) >= n {
		return Route{}, &simerr.RoutingError{From: from, To: to, Cause: simerr.ErrUnknownNode}
	}
	if from == to {
		return Route{Edges: nil, TotalTravelSecs: 0}, nil
	}

	const inf = 1<<63 - 1
	dist := make([]float64, n)
	viaEdge := make([]ids.EdgeId, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = inf
		viaEdge[i] = ids.InvalidEdge
	}
	dist[from] = 0

	pq := &frontier{{node: from, cost: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(frontierEntry)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == to {
			break
		}
		start, end := net.OutEdges(cur.node)
		for e := start; e < end; e++ {
			next := net.EdgeTo[e]
			w := edgeCostSecs(net, e, mode)
			nd := cur.cost + w
			if nd < dist[next] {
				dist[next] = nd
				viaEdge[next] = ids.EdgeId(e)
				heap.Push(pq, frontierEntry{node: next, cost: nd})
			}
		}
	}

	if dist[to] == inf {
		return Route{}, &simerr.RoutingError{From: from, To: to, Cause: simerr.ErrNoRoute}
	}

	// walk viaEdge backwards from "to" to reconstruct the edge sequence.
	var edges []ids.EdgeId
	cur := to
	for cur != from {
		e := viaEdge[cur]
		edges = append(edges, e)
		cur = net.EdgeFrom[e]
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return Route{Edges: edges, TotalTravelSecs: float32(dist[to])}, nil
}

func edgeCostSecs(net *Network, edge uint32, mode TransportMode) float64 {
	if mode == ModeCar {
		return net.EdgeTravelMs[edge] / 1000.0
	}
	speedKmph := modeSpeedKmph[mode]
	if speedKmph <= 0 {
		speedKmph = modeSpeedKmph[ModeWalk]
	}
	lengthKm := net.EdgeLengthM[edge] / 1000.0
	hours := lengthKm / speedKmph
	return hours * 3600.0
}
