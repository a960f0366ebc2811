package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitforge/meridian/activity"
	"github.com/transitforge/meridian/ids"
)

func commute() *activity.Plan {
	p, err := activity.NewPlan([]activity.ScheduledActivity{
		{StartOffsetTicks: 0, DurationTicks: 8, ActivityID: 1, Destination: activity.HomeDestination()},
		{StartOffsetTicks: 8, DurationTicks: 9, ActivityID: 2, Destination: activity.WorkDestination()},
		{StartOffsetTicks: 17, DurationTicks: 7, ActivityID: 1, Destination: activity.HomeDestination()},
	}, 24)
	if err != nil {
		panic(err)
	}
	return p
}

func TestZeroCycleTicksRejected(t *testing.T) {
	_, err := activity.NewPlan(nil, 0)
	assert.Error(t, err)
}

func TestOffsetOutsideCycleRejected(t *testing.T) {
	_, err := activity.NewPlan([]activity.ScheduledActivity{
		{StartOffsetTicks: 24, ActivityID: 1},
	}, 24)
	assert.Error(t, err)
}

func TestEmptyPlanHasNoActivityOrWake(t *testing.T) {
	p := activity.EmptyPlan()
	_, ok := p.CurrentActivity(ids.Tick(5))
	assert.False(t, ok)
	_, ok = p.NextWakeTick(ids.Tick(5))
	assert.False(t, ok)
}

// S6 (cycle boundary) from spec.md §8: single record at offset 20,
// duration 10, cycle 24.
func TestCycleBoundaryScenarioS6(t *testing.T) {
	p, err := activity.NewPlan([]activity.ScheduledActivity{
		{StartOffsetTicks: 20, DurationTicks: 10, ActivityID: 1},
	}, 24)
	require.NoError(t, err)

	act, ok := p.CurrentActivity(ids.Tick(5))
	require.True(t, ok)
	assert.EqualValues(t, 20, act.StartOffsetTicks) // wrap from previous cycle

	wake, ok := p.NextWakeTick(ids.Tick(5))
	require.True(t, ok)
	assert.EqualValues(t, 20, wake)

	act, ok = p.CurrentActivity(ids.Tick(25))
	require.True(t, ok)
	assert.EqualValues(t, 20, act.StartOffsetTicks)

	wake, ok = p.NextWakeTick(ids.Tick(25))
	require.True(t, ok)
	assert.EqualValues(t, 44, wake)
}

func TestCommutePlanCurrentActivityAcrossDay(t *testing.T) {
	p := commute()

	act, ok := p.CurrentActivity(ids.Tick(3))
	require.True(t, ok)
	assert.EqualValues(t, 1, act.ActivityID)

	act, ok = p.CurrentActivity(ids.Tick(8))
	require.True(t, ok)
	assert.EqualValues(t, 2, act.ActivityID)

	act, ok = p.CurrentActivity(ids.Tick(20))
	require.True(t, ok)
	assert.EqualValues(t, 1, act.ActivityID)
}

// Property 4 (plan-cycle correctness) from spec.md §8: walking
// next_wake_tick repeatedly visits every record of every cycle exactly
// once, and next(t) is always > t.
func TestNextWakeTickWalkVisitsEveryRecordOnce(t *testing.T) {
	p := commute()
	t0 := ids.Tick(0)
	seen := []uint64{}
	cur := t0
	for i := 0; i < p.Len()*3; i++ {
		next, ok := p.NextWakeTick(cur)
		require.True(t, ok)
		assert.Greater(t, uint64(next), uint64(cur))
		seen = append(seen, p.CyclePos(next))
		cur = next
	}
	// every cycle of 3 consecutive wakes should hit offsets {8, 17, 0}
	// in some rotation, repeating.
	assert.ElementsMatch(t, []uint64{8, 17, 0}, seen[0:3])
	assert.ElementsMatch(t, []uint64{8, 17, 0}, seen[3:6])
}
