// Package observer defines the tick/snapshot/simulation-end callback
// contract (spec.md §4.8, C10) and the row shapes materialized snapshots
// use (spec.md §6).
package observer

import "github.com/transitforge/meridian/ids"

// AgentRow is one row of a snapshot, one per agent (spec.md §6).
type AgentRow struct {
	AgentID         ids.AgentId
	Tick            ids.Tick
	DepartureNode   ids.NodeId
	InTransit       bool
	DestinationNode ids.NodeId // 0xFFFFFFFF (InvalidNode) when !InTransit
}

// TickRow is one row per tick (spec.md §6).
type TickRow struct {
	Tick          ids.Tick
	UnixTimeSecs  int64
	WokenAgents   int
}

// MobilityView is the read-only handle an Observer receives on snapshot,
// narrow enough to let an observer compute AgentRows without reaching
// into orchestrator internals.
type MobilityView interface {
	VisualPosition(agent ids.AgentId, now ids.Tick) (departure, destination ids.NodeId, progress float64)
	InTransit(agent ids.AgentId) bool
}

// AgentStoreView is the read-only handle an Observer receives on
// snapshot for the agent store.
type AgentStoreView interface {
	Len() int
	CurrentNode(agent ids.AgentId) ids.NodeId
}

// Observer receives lifecycle callbacks (spec.md §4.8). All four hooks
// default to no-op; embed NoopObserver to implement only what's needed.
// A non-nil return is captured by the orchestrator as a *simerr.
// ObserverError rather than aborting the run (spec.md §7: observer
// failures are buffered, not fatal).
type Observer interface {
	OnTickStart(tick ids.Tick) error
	OnTickEnd(tick ids.Tick, wokenCount int) error
	OnSnapshot(tick ids.Tick, unixTimeSecs int64, mobility MobilityView, store AgentStoreView) error
	OnSimEnd(finalTick ids.Tick) error
}

// NoopObserver implements Observer with every hook a no-op.
type NoopObserver struct{}

func (NoopObserver) OnTickStart(ids.Tick) error { return nil }
func (NoopObserver) OnTickEnd(ids.Tick, int) error { return nil }
func (NoopObserver) OnSnapshot(ids.Tick, int64, MobilityView, AgentStoreView) error { return nil }
func (NoopObserver) OnSimEnd(ids.Tick) error { return nil }

// Base is an embeddable no-op Observer, identical to NoopObserver, for
// concrete observers (LoggingObserver, RowCollector) that only override a
// subset of hooks.
type Base = NoopObserver
