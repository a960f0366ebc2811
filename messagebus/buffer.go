// Package messagebus implements the inter-tick message buffer (spec.md §3
// "Message buffer", §4.1 phase 3): messages enqueued during tick t are
// delivered at the start of tick t+1, or whenever the recipient next
// wakes.
package messagebus

import "github.com/transitforge/meridian/ids"

// Message is one pending delivery.
type Message struct {
	Sender  ids.AgentId
	Payload []byte
}

// Buffer maps a recipient to its pending, in-order messages.
type Buffer struct {
	pending map[ids.AgentId][]Message
}

// New builds an empty buffer.
func New() *Buffer {
	return &Buffer{pending: make(map[ids.AgentId][]Message)}
}

// Send appends a message for delivery to "to", preserving enqueue order.
func (b *Buffer) Send(to, sender ids.AgentId, payload []byte) {
	b.pending[to] = append(b.pending[to], Message{Sender: sender, Payload: payload})
}

// Take removes and returns every pending message for recipient, ordered
// ascending by sender id; messages from the same sender keep their
// enqueue order (spec.md §4.1 phase 3). Returns nil if none are pending.
func (b *Buffer) Take(recipient ids.AgentId) []Message {
	msgs, ok := b.pending[recipient]
	if !ok {
		return nil
	}
	delete(b.pending, recipient)
	stableSortBySender(msgs)
	return msgs
}

// HasPending reports whether recipient has at least one queued message,
// without consuming it.
func (b *Buffer) HasPending(recipient ids.AgentId) bool {
	return len(b.pending[recipient]) > 0
}

// stableSortBySender performs a stable insertion sort by Sender; message
// buffers per recipient are small (a handful of senders per tick), so
// this is cheaper than pulling in sort.SliceStable for the hot path.
func stableSortBySender(msgs []Message) {
	for i := 1; i < len(msgs); i++ {
		v := msgs[i]
		j := i - 1
		for j >= 0 && msgs[j].Sender > v.Sender {
			msgs[j+1] = msgs[j]
			j--
		}
		msgs[j+1] = v
	}
}
