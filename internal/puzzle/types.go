// internal/puzzle/types.go
//
// Core type definitions for the Pattern Pursuit puzzle engine.
// Defines:
//   - TileID / Tile: a paired top/bottom string fragment, the unit players order.
//   - Instance: one fully generated puzzle (tiles, settings, solvability).
//   - Sentinel errors shared by the generator.

package puzzle

import "errors"

// ErrGenerationExhausted is returned when the solvable builder cannot find a
// valid tile set within its attempt budget for the requested settings. It is a
// hard failure: callers decide whether to surface it or ask for new settings,
// the generator never retries with different parameters on its own.
var ErrGenerationExhausted = errors.New("could not generate a valid tile set for these settings")

// ErrInvalidAlphabet is returned when a custom alphabet contains a symbol
// that is not exactly one character. Numeric knobs clamp into range, but an
// empty or multi-character symbol cannot be repaired.
var ErrInvalidAlphabet = errors.New("custom alphabet symbols must be exactly one character")

// TileID identifies a tile within a single instance. IDs are assigned in
// construction order (t1..tN) and are not unique across instances.
type TileID string

// Tile is a paired fragment. Concatenating tops and bottoms of some ordered
// tile sequence until the two strings agree is the whole game.
type Tile struct {
	ID     TileID `json:"id"`
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
}

// Instance is one complete puzzle: the tiles in display order plus the
// metadata needed to reproduce it. Instances are created whole by Generate
// and never mutated afterwards; treat every field as read-only.
type Instance struct {
	Seed     string   `json:"seed"`
	Preset   Preset   `json:"preset"`
	Settings Settings `json:"settings"`
	Tiles    []Tile   `json:"tiles"`
	Solvable bool     `json:"solvable"`

	// solution holds the construction-order tile ids for solvable instances.
	// Unexported so the recorded answer cannot leak through JSON encoding or
	// be rewritten by a caller; read it through Solution().
	solution []TileID
}

// Solution returns a copy of the recorded solution ordering, or nil when the
// instance was built as unsolvable. The recorded ordering is *a* valid
// solution, not necessarily the only one.
func (inst *Instance) Solution() []TileID {
	if inst == nil || !inst.Solvable || len(inst.solution) == 0 {
		return nil
	}
	out := make([]TileID, len(inst.solution))
	copy(out, inst.solution)
	return out
}
