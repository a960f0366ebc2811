// Package orchestrator implements the tick scheduler (spec.md §4.1, C9):
// the four-phase loop — arrivals, drain, message delivery, intent
// collection — followed by a sequential apply phase, run once per tick
// from the current tick up to total_ticks.
package orchestrator

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/transitforge/meridian/activity"
	"github.com/transitforge/meridian/agentstore"
	"github.com/transitforge/meridian/behavior"
	"github.com/transitforge/meridian/ids"
	"github.com/transitforge/meridian/messagebus"
	"github.com/transitforge/meridian/mobility"
	"github.com/transitforge/meridian/network"
	"github.com/transitforge/meridian/observer"
	"github.com/transitforge/meridian/rng"
	"github.com/transitforge/meridian/simconfig"
	"github.com/transitforge/meridian/simerr"
	"github.com/transitforge/meridian/tickclock"
	"github.com/transitforge/meridian/wakequeue"
)

// Orchestrator owns every subsystem and drives the tick loop. It holds
// Behavior and Router by value/interface handle set once at Build time —
// never re-resolved per call (spec.md §9).
type Orchestrator struct {
	cfg   simconfig.Config
	clock tickclock.Clock

	store          *agentstore.Store
	pool           *rng.Pool
	plans          []*activity.Plan
	network        *network.Network
	mobilityEngine *mobility.Engine
	behavior       behavior.Behavior

	wake     *wakequeue.Queue // spec.md wake queue (C5)
	arrivals *wakequeue.Queue // internal: sparse arrival-tick index, reusing the same structure

	messages *messagebus.Buffer

	log     *zap.SugaredLogger
	runID   uuid.UUID
	now     ids.Tick
	threads int

	contactsOn   bool
	observerErrs []error
}

// RunID returns the UUID stamped on this orchestrator at Build time, used
// as a correlation id across every log line it emits.
func (o *Orchestrator) RunID() uuid.UUID { return o.runID }

// Now returns the tick the orchestrator is currently at (or about to
// process).
func (o *Orchestrator) Now() ids.Tick { return o.now }

// Run processes every tick from the current tick up to (but not
// including) total_ticks (spec.md §4.1). obs receives the lifecycle
// callbacks; pass observer.NoopObserver{} for none.
func (o *Orchestrator) Run(obs observer.Observer) error {
	for o.now < ids.Tick(o.cfg.TotalTicks) {
		o.runOneTick(obs)
		o.now++
	}
	o.captureObserverErr("on_sim_end", obs.OnSimEnd(o.now))
	return o.firstObserverError()
}

// captureObserverErr buffers a failing observer hook as a
// *simerr.ObserverError rather than aborting the run (spec.md §7), and
// logs it immediately since captured errors only surface at on_sim_end.
func (o *Orchestrator) captureObserverErr(hook string, err error) {
	if err == nil {
		return
	}
	oerr := &simerr.ObserverError{Hook: hook, Cause: err}
	o.observerErrs = append(o.observerErrs, oerr)
	o.log.Warnw("observer error", "run_id", o.runID, "hook", hook, "err", err)
}

func (o *Orchestrator) firstObserverError() error {
	if len(o.observerErrs) == 0 {
		return nil
	}
	return o.observerErrs[0]
}

func (o *Orchestrator) runOneTick(obs observer.Observer) {
	now := o.now
	o.captureObserverErr("on_tick_start", obs.OnTickStart(now))

	// Phase 1: arrivals.
	arrived := o.arrivals.DrainTick(now)
	for _, a := range o.mobilityEngine.TickArrivals(now, arrived) {
		o.store.SetCurrentNode(a.Agent, a.DestinationNode)
		if plan := o.planFor(a.Agent); plan != nil {
			if wake, ok := plan.NextWakeTick(now); ok && wake > now {
				o.wake.Push(wake, a.Agent)
			}
		}
	}

	// Phase 2: drain. Invariant D3: ascending, duplicate-free.
	woken := o.wake.DrainTick(now)

	ctx := behavior.Context{
		Tick:             now,
		TickDurationSecs: o.cfg.TickDurationSecs,
		Clock:            o.clock,
		Store:            o.store,
		Plans:            o.plans,
		Network:          o.network,
	}

	intentsByIdx := make([][]behavior.Intent, len(woken))

	// Phase 3: message delivery, sequential, in ascending agent order.
	for i, agent := range woken {
		if !o.messages.HasPending(agent) {
			continue
		}
		msgs := o.messages.Take(agent)
		stream := o.pool.Borrow(agent)
		for _, m := range msgs {
			out := o.behavior.OnMessage(agent, m.Sender, m.Payload, ctx, stream)
			intentsByIdx[i] = append(intentsByIdx[i], out...)
		}
	}

	// Phase 4: intent collection, parallelizable. Each worker owns a
	// disjoint contiguous slice of `woken`/`intentsByIdx`, so writes never
	// alias, and each worker borrows a disjoint set of RNG streams via
	// the pool's batched exclusive-borrow (spec.md §4.2, §5).
	o.collectIntents(woken, intentsByIdx, ctx)

	// Apply phase is sequential and deterministic regardless of how phase
	// 4 was parallelized (Invariant O1).
	for i, agent := range woken {
		for _, intent := range intentsByIdx[i] {
			o.applyIntent(now, agent, intent)
		}
	}

	o.captureObserverErr("on_tick_end", obs.OnTickEnd(now, len(woken)))
	if o.cfg.OutputIntervalTicks > 0 && uint64(now)%o.cfg.OutputIntervalTicks == 0 {
		unixTimeSecs := o.clock.WallClock(now).Unix()
		o.captureObserverErr("on_snapshot", obs.OnSnapshot(now, unixTimeSecs, mobilityView{o.mobilityEngine}, storeView{o.store}))
	}
}

func (o *Orchestrator) planFor(agent ids.AgentId) *activity.Plan {
	if int(agent) >= len(o.plans) {
		return nil
	}
	return o.plans[agent]
}

// collectIntents runs behavior.Replan (and, when enabled, OnContacts) for
// every woken agent, fanning out across o.threads goroutines via
// errgroup.Group the way the pack's niceyeti/tabular and echollama stacks
// use golang.org/x/sync/errgroup for bounded worker fan-out, instead of a
// hand-rolled sync.WaitGroup pool.
func (o *Orchestrator) collectIntents(woken []ids.AgentId, intentsByIdx [][]behavior.Intent, ctx behavior.Context) {
	n := len(woken)
	if n == 0 {
		return
	}
	workers := o.threads
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	var contactIndex map[ids.NodeId][]ids.AgentId
	if o.contactsOn {
		contactIndex = o.buildContactIndex(woken)
	}

	chunk := (n + workers - 1) / workers
	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		start, end := start, end // capture
		g.Go(func() error {
			agents := woken[start:end]
			streams := o.pool.BorrowMany(agents)
			for i, agent := range agents {
				idx := start + i
				out := o.behavior.Replan(agent, ctx, streams[i])
				intentsByIdx[idx] = append(intentsByIdx[idx], out...)

				if contactIndex != nil && !o.mobilityEngine.State(agent).InTransit {
					node := o.store.CurrentNode(agent)
					coLocated := contactIndex[node]
					if len(coLocated) > 1 {
						out := o.behavior.OnContacts(agent, node, withoutSelf(coLocated, agent), ctx, streams[i])
						intentsByIdx[idx] = append(intentsByIdx[idx], out...)
					}
				}
			}
			return nil
		})
	}
	_ = g.Wait() // Replan/OnContacts never return errors; this only waits.
}

func withoutSelf(agents []ids.AgentId, self ids.AgentId) []ids.AgentId {
	out := make([]ids.AgentId, 0, len(agents)-1)
	for _, a := range agents {
		if a != self {
			out = append(out, a)
		}
	}
	return out
}

// buildContactIndex rebuilds the node -> stationary-agents-here index
// from the agent store's current positions (spec.md §4.1 "the contact
// index is rebuilt at each tick boundary from the agent store's
// positions"). Only woken agents matter for the purposes of triggering
// OnContacts, but the index itself must include every stationary agent so
// a woken agent can see all of its co-located neighbors.
func (o *Orchestrator) buildContactIndex(woken []ids.AgentId) map[ids.NodeId][]ids.AgentId {
	idx := make(map[ids.NodeId][]ids.AgentId)
	for i := 0; i < o.store.Len(); i++ {
		agent := ids.AgentId(i)
		if o.mobilityEngine.State(agent).InTransit {
			continue
		}
		node := o.store.CurrentNode(agent)
		if !node.Valid() {
			continue
		}
		idx[node] = append(idx[node], agent)
	}
	return idx
}

func (o *Orchestrator) applyIntent(now ids.Tick, agent ids.AgentId, intent behavior.Intent) {
	switch intent.Kind {
	case behavior.IntentWakeAt:
		if intent.WakeTick > now {
			o.wake.Push(intent.WakeTick, agent)
		}
		// WakeAt(now) or WakeAt(t < now): dropped silently (spec.md §9
		// Open Questions).

	case behavior.IntentTravelTo:
		dest := o.resolveDestination(agent, intent.TravelDestination)
		if !dest.Valid() {
			return
		}
		arrival, err := o.mobilityEngine.BeginTravel(agent, dest, intent.TravelMode, now, o.clock, o.network)
		if err != nil {
			o.logIntentError(agent, err)
			return
		}
		o.arrivals.Push(arrival, agent)

	case behavior.IntentSendMessage:
		o.messages.Send(intent.MessageTo, agent, intent.MessagePayload)
	}
}

// resolveDestination turns an intent's destination into a concrete
// NodeId. The engine carries no notion of "home" or "work" itself
// (spec.md §9 "no type is needed at the orchestrator level"): only
// DestinationNode is resolved. Home/Work sentinels return InvalidNode and
// the intent is dropped; applications resolve them inside their Behavior
// (e.g. from a registered component) and emit activity.NodeDestination.
func (o *Orchestrator) resolveDestination(agent ids.AgentId, d activity.Destination) ids.NodeId {
	switch d.Kind {
	case activity.DestinationNode:
		return d.Node
	default:
		return ids.InvalidNode
	}
}

func (o *Orchestrator) logIntentError(agent ids.AgentId, err error) {
	switch e := err.(type) {
	case *simerr.RoutingError:
		o.log.Warnw("routing error, dropping intent", "run_id", o.runID, "agent", agent, "from", e.From, "to", e.To, "cause", e.Cause)
	case *simerr.MobilityError:
		o.log.Warnw("mobility error, dropping intent", "run_id", o.runID, "agent", agent, "cause", e.Cause)
	default:
		o.log.Warnw("intent error, dropping intent", "run_id", o.runID, "agent", agent, "err", err)
	}
}

// mobilityView adapts *mobility.Engine to observer.MobilityView.
type mobilityView struct{ e *mobility.Engine }

func (m mobilityView) VisualPosition(agent ids.AgentId, now ids.Tick) (ids.NodeId, ids.NodeId, float64) {
	return m.e.VisualPosition(agent, now)
}
func (m mobilityView) InTransit(agent ids.AgentId) bool { return m.e.State(agent).InTransit }

// storeView adapts *agentstore.Store to observer.AgentStoreView.
type storeView struct{ s *agentstore.Store }

func (s storeView) Len() int                           { return s.s.Len() }
func (s storeView) CurrentNode(agent ids.AgentId) ids.NodeId { return s.s.CurrentNode(agent) }
