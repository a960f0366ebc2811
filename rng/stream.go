// Package rng implements the per-agent deterministic pseudo-random stream
// pool (spec.md §3 "Per-agent RNG pool", §4.2). Each agent owns exactly
// one Stream, seeded deterministically from the global seed and the
// agent's id, and streams are never shared across agents.
package rng

import "math/bits"

// Stream is a single agent's pseudo-random stream: a non-cryptographic,
// 256-bits-of-state xoshiro256** generator. It is cheap to seed, fast to
// advance, and has none of math/rand's global-lock contention, which
// matters once millions of these are borrowed concurrently in phase 4.
type Stream struct {
	s [4]uint64
}

// NewStream seeds a stream from a single 64-bit value using four rounds
// of SplitMix64 to fill the 256 bits of xoshiro256** state — the standard
// way to initialize xoshiro from a small seed without starting in a
// degenerate (all-zero) state.
func NewStream(seed uint64) *Stream {
	sm := seed
	next := func() uint64 {
		sm += 0x9e3779b97f4a7c15
		z := sm
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		return z ^ (z >> 31)
	}
	st := &Stream{}
	for i := range st.s {
		st.s[i] = next()
	}
	return st
}

func rotl(x uint64, k int) uint64 { return bits.RotateLeft64(x, k) }

// Uint64 advances the stream and returns the next 64-bit output.
func (s *Stream) Uint64() uint64 {
	result := rotl(s.s[1]*5, 7) * 9
	t := s.s[1] << 17
	s.s[2] ^= s.s[0]
	s.s[3] ^= s.s[1]
	s.s[1] ^= s.s[2]
	s.s[0] ^= s.s[3]
	s.s[2] ^= t
	s.s[3] = rotl(s.s[3], 45)
	return result
}

// IntN returns a uniform integer in [0, n). Panics if n <= 0, matching the
// standard library's math/rand convention.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN called with n <= 0")
	}
	// Lemire's bounded-range method: avoids the modulo bias of `% n`; the
	// modulo and the rejection loop below only run when the low word of
	// the product falls under n, which is rare for small n.
	un := uint64(n)
	hi, lo := bits.Mul64(s.Uint64(), un)
	if lo < un {
		thresh := -un % un
		for lo < thresh {
			hi, lo = bits.Mul64(s.Uint64(), un)
		}
	}
	return int(hi)
}

// Float64 returns a uniform value in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// Bernoulli returns true with probability p (clamped to [0, 1]).
func (s *Stream) Bernoulli(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Float64() < p
}

// Choice returns a uniformly random index into a slice of length n.
// Panics if n == 0.
func (s *Stream) Choice(n int) int { return s.IntN(n) }

// Shuffle performs an in-place Fisher-Yates shuffle of the first n
// elements reachable via swap(i, j).
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		swap(i, j)
	}
}
