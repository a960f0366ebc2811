package rng

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/transitforge/meridian/ids"
)

// goldenRatio64 is the golden-ratio multiplicative constant spec.md §3
// names for mixing the global seed with an agent index.
const goldenRatio64 = 0x9e3779b97f4a7c15

// Pool owns exactly one Stream per agent, stored as a flat slice indexed
// by AgentId. It is a top-level object distinct from the agent store
// (spec.md §9 "split ownership") precisely so a parallel phase can borrow
// the store immutably while partitioning the pool mutably.
type Pool struct {
	streams []*Stream
	seed    uint64
}

// NewPool builds a pool of n streams. The i-th stream is seeded by
// xxhash.Sum64 over (seed, i), itself XORed with the golden-ratio mix
// spec.md calls for, so the seed material passes through a real hash
// primitive rather than a bare XOR.
func NewPool(n int, seed uint64) *Pool {
	p := &Pool{streams: make([]*Stream, n), seed: seed}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], seed)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(buf[8:16], uint64(i))
		mixed := xxhash.Sum64(buf[:]) ^ (uint64(i) * goldenRatio64)
		p.streams[i] = NewStream(mixed)
	}
	return p
}

// Grow extends the pool to cover newCount agents, seeding the newly added
// streams the same way NewPool would have. Used when the agent store
// admits new agents after construction.
func (p *Pool) Grow(newCount int) {
	start := len(p.streams)
	if newCount <= start {
		return
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], p.seed)
	grown := make([]*Stream, newCount)
	copy(grown, p.streams)
	for i := start; i < newCount; i++ {
		binary.LittleEndian.PutUint64(buf[8:16], uint64(i))
		mixed := xxhash.Sum64(buf[:]) ^ (uint64(i) * goldenRatio64)
		grown[i] = NewStream(mixed)
	}
	p.streams = grown
}

// Len returns the number of streams currently held.
func (p *Pool) Len() int { return len(p.streams) }

// Borrow returns the exclusive stream for one agent. Callers must not
// call this concurrently with any other Borrow/BorrowMany touching the
// same agent.
func (p *Pool) Borrow(agent ids.AgentId) *Stream {
	return p.streams[agent]
}

// BorrowMany returns exclusive Stream references for a slice of distinct
// agent ids, in the same order. This is the mechanism spec.md §4.2 and §5
// describe as making parallel intent collection sound: each worker gets
// disjoint *Stream pointers with no aliasing, so concurrent mutation is
// race-free by construction. The caller must supply distinct ids;
// BorrowMany does not check this itself (AssertDistinct is the separate
// check a caller can run).
func (p *Pool) BorrowMany(agents []ids.AgentId) []*Stream {
	out := make([]*Stream, len(agents))
	for i, a := range agents {
		out[i] = p.streams[a]
	}
	return out
}

// AssertDistinct panics if agents contains a duplicate. Call sites that
// feed caller-controlled slices into BorrowMany should gate this behind a
// debug flag; the orchestrator's drained wake-queue buckets are
// ascending-and-deduplicated by construction (Invariant D3) and skip this
// check on the hot path.
func AssertDistinct(agents []ids.AgentId) {
	seen := make(map[ids.AgentId]struct{}, len(agents))
	for _, a := range agents {
		if _, dup := seen[a]; dup {
			panic("rng: BorrowMany given duplicate agent id")
		}
		seen[a] = struct{}{}
	}
}
