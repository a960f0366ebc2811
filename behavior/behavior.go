// Package behavior defines the application-supplied decision contract
// (spec.md §4.7, C8): read-only context in, a list of intents out. No
// mutation of shared state happens here; every intent is applied
// sequentially afterward by the orchestrator.
package behavior

import (
	"github.com/transitforge/meridian/activity"
	"github.com/transitforge/meridian/agentstore"
	"github.com/transitforge/meridian/ids"
	"github.com/transitforge/meridian/network"
	"github.com/transitforge/meridian/rng"
	"github.com/transitforge/meridian/tickclock"
)

// IntentKind distinguishes the three closed intent variants (spec.md
// §4.7).
type IntentKind uint8

const (
	IntentWakeAt IntentKind = iota
	IntentTravelTo
	IntentSendMessage
)

// Intent is the closed sum WakeAt(Tick) | TravelTo{destination, mode} |
// SendMessage{to, payload}. Only the fields relevant to Kind are
// meaningful.
type Intent struct {
	Kind IntentKind

	WakeTick ids.Tick

	TravelDestination activity.Destination
	TravelMode        network.TransportMode

	MessageTo      ids.AgentId
	MessagePayload []byte
}

// WakeAt builds a WakeAt intent.
func WakeAt(t ids.Tick) Intent { return Intent{Kind: IntentWakeAt, WakeTick: t} }

// TravelTo builds a TravelTo intent.
func TravelTo(dest activity.Destination, mode network.TransportMode) Intent {
	return Intent{Kind: IntentTravelTo, TravelDestination: dest, TravelMode: mode}
}

// SendMessage builds a SendMessage intent.
func SendMessage(to ids.AgentId, payload []byte) Intent {
	return Intent{Kind: IntentSendMessage, MessageTo: to, MessagePayload: payload}
}

// Context is the view a Behavior consults. Behaviors read the agent store
// and plans through it and must not mutate them (spec.md §4.7 "must not
// mutate any shared state"); Store is the live *agentstore.Store, so its
// setters are reachable and read-only use is not enforced by the type.
type Context struct {
	Tick             ids.Tick
	TickDurationSecs uint32
	Clock            tickclock.Clock
	Store            *agentstore.Store
	Plans            []*activity.Plan // indexed by AgentId
	Network          *network.Network
}

// PlanFor returns the activity plan for an agent, or nil if none was
// registered.
func (c Context) PlanFor(agent ids.AgentId) *activity.Plan {
	if int(agent) >= len(c.Plans) {
		return nil
	}
	return c.Plans[agent]
}

// Behavior is the application-supplied decision function. Only Replan is
// required; OnContacts and OnMessage default to producing no intents
// (spec.md §4.7).
type Behavior interface {
	Replan(agent ids.AgentId, ctx Context, r *rng.Stream) []Intent
	OnContacts(agent ids.AgentId, node ids.NodeId, coLocated []ids.AgentId, ctx Context, r *rng.Stream) []Intent
	OnMessage(agent ids.AgentId, sender ids.AgentId, payload []byte, ctx Context, r *rng.Stream) []Intent
}

// Base can be embedded by a concrete Behavior to inherit no-op
// OnContacts/OnMessage, so implementations only need to provide Replan.
type Base struct{}

func (Base) OnContacts(ids.AgentId, ids.NodeId, []ids.AgentId, Context, *rng.Stream) []Intent {
	return nil
}
func (Base) OnMessage(ids.AgentId, ids.AgentId, []byte, Context, *rng.Stream) []Intent {
	return nil
}
