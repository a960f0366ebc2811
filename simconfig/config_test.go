package simconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transitforge/meridian/simconfig"
)

func TestZeroTickDurationIsRejected(t *testing.T) {
	c := simconfig.Config{TickDurationSecs: 0, TotalTicks: 10}
	assert.Error(t, c.Validate())
}

func TestValidConfigPasses(t *testing.T) {
	c := simconfig.Config{TickDurationSecs: 3600, TotalTicks: 48, Seed: 42}
	assert.NoError(t, c.Validate())
}

func TestThreadsFallsBackToDefault(t *testing.T) {
	c := simconfig.Config{TickDurationSecs: 1}
	assert.Equal(t, 8, c.Threads(8))
	c.NumThreads = 4
	assert.Equal(t, 4, c.Threads(8))
}
