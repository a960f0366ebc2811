package orchestrator

import (
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/transitforge/meridian/activity"
	"github.com/transitforge/meridian/agentstore"
	"github.com/transitforge/meridian/behavior"
	"github.com/transitforge/meridian/ids"
	"github.com/transitforge/meridian/messagebus"
	"github.com/transitforge/meridian/mobility"
	"github.com/transitforge/meridian/network"
	"github.com/transitforge/meridian/rng"
	"github.com/transitforge/meridian/simconfig"
	"github.com/transitforge/meridian/simerr"
	"github.com/transitforge/meridian/tickclock"
	"github.com/transitforge/meridian/wakequeue"
)

// Builder assembles an Orchestrator. Behavior and Router are held by
// value/small-interface handle and bound once at construction (spec.md §9
// "Polymorphism without dynamic dispatch"), never re-resolved per call.
type Builder struct {
	cfg      simconfig.Config
	store    *agentstore.Store
	pool     *rng.Pool
	behavior behavior.Behavior
	router   network.Router
	network  *network.Network
	plans    []*activity.Plan
	initial  []ids.NodeId
	logger   *zap.SugaredLogger
	contacts bool
}

// New starts a Builder for the required inputs (spec.md §6 "Builder
// inputs"): an agent store, its RNG pool, a behavior instance, and a
// router instance.
func New(cfg simconfig.Config, store *agentstore.Store, pool *rng.Pool, b behavior.Behavior, router network.Router) *Builder {
	return &Builder{cfg: cfg, store: store, pool: pool, behavior: b, router: router}
}

// WithNetwork sets the consumed road network (default: empty graph).
func (bd *Builder) WithNetwork(n *network.Network) *Builder {
	bd.network = n
	return bd
}

// WithPlans sets the per-agent activity plans, indexed by AgentId
// (default: all empty).
func (bd *Builder) WithPlans(plans []*activity.Plan) *Builder {
	bd.plans = plans
	return bd
}

// WithInitialPositions sets the per-agent starting node (default: all
// InvalidNode).
func (bd *Builder) WithInitialPositions(positions []ids.NodeId) *Builder {
	bd.initial = positions
	return bd
}

// WithLogger overrides the structured logger (default: zap.NewNop()'s
// sugared form, matching the ambient-stack convention of an injected,
// never-global logger).
func (bd *Builder) WithLogger(l *zap.SugaredLogger) *Builder {
	bd.logger = l
	return bd
}

// WithContactsHook enables the optional co-location contacts index
// (spec.md §4.1 "Optional contacts hook").
func (bd *Builder) WithContactsHook(enabled bool) *Builder {
	bd.contacts = enabled
	return bd
}

// Build validates the configuration and wiring, returning a
// *simerr.ConfigError for anything malformed (spec.md §7 "Configuration
// error... Fatal at build time").
func (bd *Builder) Build() (*Orchestrator, error) {
	if err := bd.cfg.Validate(); err != nil {
		return nil, err
	}
	n := bd.store.Len()
	if bd.pool.Len() != n {
		return nil, &simerr.ConfigError{Field: "rng_pool", Reason: "length must equal agent store length"}
	}
	if bd.plans != nil && len(bd.plans) != n {
		return nil, &simerr.ConfigError{Field: "plans", Reason: "length must equal agent store length"}
	}
	if bd.initial != nil && len(bd.initial) != n {
		return nil, &simerr.ConfigError{Field: "initial_positions", Reason: "length must equal agent store length"}
	}

	plans := bd.plans
	if plans == nil {
		plans = make([]*activity.Plan, n)
		empty := activity.EmptyPlan()
		for i := range plans {
			plans[i] = empty
		}
	}

	net := bd.network
	if net == nil {
		net = network.Empty()
	}

	logger := bd.logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	clock := tickclock.New(bd.cfg.StartUnixSecs, bd.cfg.TickDurationSecs)
	mobilityEngine := mobility.New(n, bd.router)
	for i := 0; i < n; i++ {
		node := ids.InvalidNode
		if bd.initial != nil {
			node = bd.initial[i]
		}
		mobilityEngine.Place(ids.AgentId(i), node, ids.Tick(0))
		bd.store.SetCurrentNode(ids.AgentId(i), node)
	}

	o := &Orchestrator{
		cfg:            bd.cfg,
		clock:          clock,
		store:          bd.store,
		pool:           bd.pool,
		plans:          plans,
		network:        net,
		mobilityEngine: mobilityEngine,
		behavior:       bd.behavior,
		wake:           wakequeue.New(),
		arrivals:       wakequeue.New(),
		messages:       messagebus.New(),
		log:            logger,
		runID:          uuid.New(),
		contactsOn:     bd.contacts,
		threads:        bd.cfg.Threads(runtime.NumCPU()),
	}

	// Initial wake-queue population: every plan's first wake from tick 0
	// (spec.md §4.4).
	for i := 0; i < n; i++ {
		plan := plans[i]
		if wake, ok := plan.NextWakeTick(ids.Tick(0)); ok {
			o.wake.Push(wake, ids.AgentId(i))
		}
	}

	return o, nil
}
