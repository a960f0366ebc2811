package agentstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitforge/meridian/agentstore"
	"github.com/transitforge/meridian/ids"
)

func TestNewStoreDefaultsToInvalidPositions(t *testing.T) {
	s := agentstore.New(5)
	require.Equal(t, 5, s.Len())
	for i := 0; i < 5; i++ {
		assert.False(t, s.CurrentNode(ids.AgentId(i)).Valid())
	}
}

type homeAddress struct{ Node ids.NodeId }

func TestRegisterComponentGrowsWithStore(t *testing.T) {
	s := agentstore.New(3)
	homes := agentstore.RegisterComponent(s, homeAddress{Node: ids.InvalidNode})
	homes.Set(1, homeAddress{Node: ids.NodeId(7)})

	assert.Equal(t, homeAddress{Node: 7}, homes.Get(1))
	assert.Len(t, homes.Slice(), 3)

	s.Grow(6)
	assert.Len(t, homes.Slice(), 6)
	assert.Equal(t, homeAddress{Node: ids.InvalidNode}, homes.Get(5))
	// earlier value survives the grow (Invariant D1: length == N, values preserved)
	assert.Equal(t, homeAddress{Node: 7}, homes.Get(1))
}

func TestRegisteringSameComponentTwiceIsIdempotent(t *testing.T) {
	s := agentstore.New(2)
	a := agentstore.RegisterComponent(s, 0)
	a.Set(0, 42)
	b := agentstore.RegisterComponent(s, 0)
	assert.Equal(t, 42, b.Get(0))
}
