// Package activity implements the immutable, cyclic activity plan
// (spec.md §3 "Activity plan", §4.3) shared read-only across agents and
// the decision logic that consults it.
package activity

import (
	"github.com/transitforge/meridian/ids"
	"github.com/transitforge/meridian/simerr"
)

// DestinationKind distinguishes a concrete node destination from the two
// sentinels resolved later against agent components.
type DestinationKind uint8

const (
	// DestinationNode names a concrete NodeId.
	DestinationNode DestinationKind = iota
	// DestinationHome resolves at decision time against the agent's home
	// component.
	DestinationHome
	// DestinationWork resolves at decision time against the agent's work
	// component.
	DestinationWork
)

// Destination is a closed sum of where a scheduled activity takes place.
type Destination struct {
	Kind DestinationKind
	Node ids.NodeId // meaningful only when Kind == DestinationNode
}

// HomeDestination builds the Home sentinel destination.
func HomeDestination() Destination { return Destination{Kind: DestinationHome} }

// WorkDestination builds the Work sentinel destination.
func WorkDestination() Destination { return Destination{Kind: DestinationWork} }

// NodeDestination builds a concrete-node destination.
func NodeDestination(n ids.NodeId) Destination { return Destination{Kind: DestinationNode, Node: n} }

// ScheduledActivity is one record in a cyclic plan.
type ScheduledActivity struct {
	StartOffsetTicks uint64
	DurationTicks    uint64
	ActivityID       ids.ActivityId
	Destination      Destination
}

// Plan is an immutable, ordered, cyclic schedule. The underlying records
// slice is never mutated after NewPlan returns, so a *Plan can be shared
// by many agents at the cost of one pointer copy (spec.md §4.3 "cheaply
// shareable... so that many agents may share the same plan template with
// O(1) duplication").
type Plan struct {
	records    []ScheduledActivity
	cycleTicks uint64
}

// NewPlan validates and builds a Plan. Records are sorted by
// StartOffsetTicks by the caller's construction order is NOT assumed;
// NewPlan sorts them itself and rejects offsets outside [0, cycleTicks).
func NewPlan(records []ScheduledActivity, cycleTicks uint64) (*Plan, error) {
	if cycleTicks == 0 {
		return nil, &simerr.ConfigError{Field: "cycle_ticks", Reason: "must be strictly positive"}
	}
	sorted := make([]ScheduledActivity, len(records))
	copy(sorted, records)
	insertionSortByOffset(sorted)
	for _, r := range sorted {
		if r.StartOffsetTicks >= cycleTicks {
			return nil, &simerr.ConfigError{
				Field:  "start_offset_ticks",
				Reason: "must lie in [0, cycle_ticks)",
			}
		}
	}
	return &Plan{records: sorted, cycleTicks: cycleTicks}, nil
}

func insertionSortByOffset(r []ScheduledActivity) {
	for i := 1; i < len(r); i++ {
		v := r[i]
		j := i - 1
		for j >= 0 && r[j].StartOffsetTicks > v.StartOffsetTicks {
			r[j+1] = r[j]
			j--
		}
		r[j+1] = v
	}
}

// EmptyPlan returns a Plan with no records. next_wake_tick and
// current_activity both report "none" for an empty plan (spec.md §4.3).
func EmptyPlan() *Plan {
	p, _ := NewPlan(nil, 1)
	return p
}

// CycleTicks returns the plan's cycle length.
func (p *Plan) CycleTicks() uint64 { return p.cycleTicks }

// Len returns the number of records in the plan.
func (p *Plan) Len() int { return len(p.records) }

// Record returns the i-th record in ascending start-offset order.
func (p *Plan) Record(i int) ScheduledActivity { return p.records[i] }

// CyclePos computes t mod cycle_ticks (spec.md §4.3 cycle_pos).
func (p *Plan) CyclePos(t ids.Tick) uint64 {
	return uint64(t) % p.cycleTicks
}

// CurrentActivity returns the record active at tick t (spec.md §4.3,
// Invariant D2): the record with the greatest StartOffsetTicks <=
// cycle_pos(t), wrapping to the plan's last record when cycle_pos(t)
// precedes the first record. Returns (zero, false) for an empty plan.
func (p *Plan) CurrentActivity(t ids.Tick) (ScheduledActivity, bool) {
	if len(p.records) == 0 {
		return ScheduledActivity{}, false
	}
	pos := p.CyclePos(t)
	// records are ascending by StartOffsetTicks; find the last one
	// with StartOffsetTicks <= pos via linear scan from the back.
	// Plans are typically small (a handful of daily activities), so
	// this is cheaper in practice than a binary search's bookkeeping.
	for i := len(p.records) - 1; i >= 0; i-- {
		if p.records[i].StartOffsetTicks <= pos {
			return p.records[i], true
		}
	}
	// pos precedes every record: current activity wraps from the
	// previous cycle's last record.
	return p.records[len(p.records)-1], true
}

// NextWakeTick returns the absolute tick of the next scheduled start
// strictly after t (spec.md §4.3 next_wake_tick). Returns (0, false) for
// an empty plan.
func (p *Plan) NextWakeTick(t ids.Tick) (ids.Tick, bool) {
	if len(p.records) == 0 {
		return 0, false
	}
	pos := p.CyclePos(t)
	base := uint64(t) - pos
	for _, r := range p.records {
		if r.StartOffsetTicks > pos {
			return ids.Tick(base + r.StartOffsetTicks), true
		}
	}
	// none remain this cycle: wrap to the first record of next cycle.
	return ids.Tick(base + p.cycleTicks + p.records[0].StartOffsetTicks), true
}
