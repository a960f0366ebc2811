// Package simerr defines the engine's error taxonomy (spec.md §7):
// configuration errors are fatal at build time, routing/mobility errors
// are per-intent and non-fatal, observer errors are captured out of band.
package simerr

import (
	"fmt"

	"github.com/transitforge/meridian/ids"
)

// ConfigError reports a malformed build-time configuration: mismatched
// vector lengths, a zero tick duration, an invalid activity plan, etc.
// It is always returned, never panicked.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Reason)
}

// RoutingError wraps a Router's failure to find a path (spec.md §4.6:
// NoRoute, UnknownNode). It is attached to the offending intent and
// dropped; it never aborts the tick.
type RoutingError struct {
	From, To ids.NodeId
	Cause    error
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("routing error: %d -> %d: %v", e.From, e.To, e.Cause)
}

func (e *RoutingError) Unwrap() error { return e.Cause }

// MobilityError reports a TravelTo intent rejected by the mobility engine,
// e.g. begin_travel called on an already-in-transit agent.
type MobilityError struct {
	Agent ids.AgentId
	Cause error
}

func (e *MobilityError) Error() string {
	return fmt.Sprintf("mobility error: agent %d: %v", e.Agent, e.Cause)
}

func (e *MobilityError) Unwrap() error { return e.Cause }

// ObserverError reports a failing Observer callback. The orchestrator
// buffers these rather than propagating them; they surface at on_sim_end.
type ObserverError struct {
	Hook  string
	Cause error
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("observer error: %s: %v", e.Hook, e.Cause)
}

func (e *ObserverError) Unwrap() error { return e.Cause }

// ErrAlreadyInTransit is the sentinel cause of a MobilityError produced by
// begin_travel on an agent that is already moving.
var ErrAlreadyInTransit = fmt.Errorf("agent already in transit")

// ErrNoRoute is the sentinel cause a Router returns when no path connects
// two nodes (spec.md §4.6 NoRoute).
var ErrNoRoute = fmt.Errorf("no route")

// ErrUnknownNode is the sentinel cause a Router returns for an out-of-graph
// node id (spec.md §4.6 UnknownNode).
var ErrUnknownNode = fmt.Errorf("unknown node")
