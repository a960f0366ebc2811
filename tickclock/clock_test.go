package tickclock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transitforge/meridian/ids"
	"github.com/transitforge/meridian/tickclock"
)

func TestWallClock(t *testing.T) {
	c := tickclock.New(1_700_000_000, 3600)
	assert.Equal(t, int64(1_700_000_000), c.WallClock(ids.Tick(0)).Unix())
	assert.Equal(t, int64(1_700_007_200), c.WallClock(ids.Tick(2)).Unix())
}

func TestTicksForSecondsCeilsAndFloorsAtOne(t *testing.T) {
	c := tickclock.New(0, 3600)
	assert.EqualValues(t, 1, c.TicksForSeconds(120)) // 120s -> ceil(120/3600) = 1
	assert.EqualValues(t, 0, c.TicksForSeconds(0))
	assert.EqualValues(t, 1, c.TicksForSeconds(1)) // trivially short trip still costs 1 tick
	assert.EqualValues(t, 2, c.TicksForSeconds(3601))
}
