// internal/puzzle/rng.go
//
// Seeded pseudo-randomness for puzzle generation.
// Responsibilities:
//   - DeriveSeed: normalize a caller seed, or mint a random token when absent.
//   - HashSeed: map an arbitrary seed string to a 32-bit PRNG state.
//   - RNG: a mulberry32 stream owned by exactly one generation call.
//
// Determinism contract: NewRNG(HashSeed(s)) produces the same draw sequence
// for the same s, forever. Nothing here touches global state; every function
// that needs randomness takes an *RNG explicitly.

package puzzle

import (
	"strings"

	"github.com/google/uuid"
)

// DeriveSeed returns the trimmed input seed verbatim when it is non-blank.
// Otherwise it mints a fresh random UUID string — that path is deliberately
// non-reproducible and only acceptable when the caller did not ask for a
// specific puzzle.
func DeriveSeed(seed string) string {
	if s := strings.TrimSpace(seed); s != "" {
		return s
	}
	return uuid.NewString()
}

// HashSeed folds a seed string into a 32-bit state using an FNV-1a walk with
// a murmur-style finalizer. Order-dependent, so "ab" and "ba" land far apart,
// and the avalanche keeps near-identical seeds from producing near-identical
// streams.
func HashSeed(seed string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(seed); i++ {
		h ^= uint32(seed[i])
		h *= 16777619
	}
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// RNG is a mulberry32 pseudo-random stream. The zero value is a valid stream
// seeded with state 0; normal construction goes through NewRNG(HashSeed(s)).
// Not safe for concurrent use — each generation call owns its own stream.
type RNG struct {
	state uint32
}

// NewRNG returns a stream starting from the given 32-bit state.
func NewRNG(state uint32) *RNG {
	return &RNG{state: state}
}

// Float64 advances the stream and returns the next draw in [0,1).
func (r *RNG) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns an int in [0,n). n must be positive.
func (r *RNG) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// IntBetween returns an int in [lo,hi] inclusive. Collapses to lo when the
// range is empty or inverted.
func (r *RNG) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Shuffle performs a Fisher–Yates shuffle over n elements using swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
