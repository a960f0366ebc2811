package observer

import "github.com/transitforge/meridian/ids"

// RowCollector materializes snapshot rows into memory, the direct
// generalization of the teacher's ReportSummary/WriteCSVReport
// (sim/report.go): where the teacher writes one CSV at the end of a run,
// RowCollector accumulates the same shape of row on every snapshot tick,
// leaving the actual write (CSV, columnar, embedded SQL) to an
// out-of-scope output writer that consumes these rows.
type RowCollector struct {
	Base

	AgentRows []AgentRow
	TickRows  []TickRow

	lastWoken int
}

// NewRowCollector builds an empty collector.
func NewRowCollector() *RowCollector { return &RowCollector{} }

func (c *RowCollector) OnSnapshot(tick ids.Tick, unixTimeSecs int64, mobility MobilityView, store AgentStoreView) error {
	c.TickRows = append(c.TickRows, TickRow{Tick: tick, UnixTimeSecs: unixTimeSecs, WokenAgents: c.lastWoken})
	for i := 0; i < store.Len(); i++ {
		agent := ids.AgentId(i)
		dep, dest, _ := mobility.VisualPosition(agent, tick)
		inTransit := mobility.InTransit(agent)
		row := AgentRow{
			AgentID:       agent,
			Tick:          tick,
			DepartureNode: dep,
			InTransit:     inTransit,
		}
		if inTransit {
			row.DestinationNode = dest
		} else {
			row.DestinationNode = ids.InvalidNode
		}
		c.AgentRows = append(c.AgentRows, row)
	}
	return nil
}

func (c *RowCollector) OnTickEnd(tick ids.Tick, wokenCount int) error {
	c.lastWoken = wokenCount
	return nil
}
