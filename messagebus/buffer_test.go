package messagebus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transitforge/meridian/ids"
	"github.com/transitforge/meridian/messagebus"
)

func TestTakeConsumesMessages(t *testing.T) {
	b := messagebus.New()
	b.Send(1, 2, []byte("hi"))
	assert.True(t, b.HasPending(1))

	got := b.Take(1)
	assert.Len(t, got, 1)
	assert.Equal(t, ids.AgentId(2), got[0].Sender)
	assert.False(t, b.HasPending(1))
	assert.Empty(t, b.Take(1))
}

func TestTakeOrdersBySenderStably(t *testing.T) {
	b := messagebus.New()
	b.Send(1, 5, []byte("a"))
	b.Send(1, 2, []byte("b"))
	b.Send(1, 2, []byte("c"))
	b.Send(1, 5, []byte("d"))

	got := b.Take(1)
	var senders []ids.AgentId
	var payloads []string
	for _, m := range got {
		senders = append(senders, m.Sender)
		payloads = append(payloads, string(m.Payload))
	}
	assert.Equal(t, []ids.AgentId{2, 2, 5, 5}, senders)
	assert.Equal(t, []string{"b", "c", "a", "d"}, payloads)
}
