// Package tickclock converts between the engine's absolute tick counter
// and wall-clock (unix) time.
package tickclock

import (
	"time"

	"github.com/transitforge/meridian/ids"
)

// Clock carries the two numbers needed to map a tick to wall-clock time:
// the simulation's start instant and the duration of one tick.
type Clock struct {
	StartUnixSecs     int64
	TickDurationSecs  uint32
}

// New builds a Clock. Callers validate TickDurationSecs > 0 at config
// build time (simconfig); Clock itself does not re-validate.
func New(startUnixSecs int64, tickDurationSecs uint32) Clock {
	return Clock{StartUnixSecs: startUnixSecs, TickDurationSecs: tickDurationSecs}
}

// WallClock returns the unix time at the start of tick t.
func (c Clock) WallClock(t ids.Tick) time.Time {
	secs := c.StartUnixSecs + int64(t)*int64(c.TickDurationSecs)
	return time.Unix(secs, 0).UTC()
}

// TickDuration returns the tick granularity as a time.Duration.
func (c Clock) TickDuration() time.Duration {
	return time.Duration(c.TickDurationSecs) * time.Second
}

// TicksForSeconds converts a duration in seconds to a whole number of
// ticks, rounding up (spec.md §4.1 step 5: arrival_tick = now + ceil(d/tick_duration_secs)).
// A strictly positive d always consumes at least one tick.
func (c Clock) TicksForSeconds(d float64) uint64 {
	if d <= 0 {
		return 0
	}
	per := float64(c.TickDurationSecs)
	n := uint64(d / per)
	if float64(n)*per < d {
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}
