// internal/puzzle/generate.go
//
// Puzzle generation for Pattern Pursuit.
// Responsibilities:
//   - Resolve preset + overrides into concrete settings (settings.go).
//   - Build solvable instances: segment one random target string two ways so
//     the construction order is a known solution.
//   - Build intended-unsolvable instances from independent tile draws.
//   - Enforce the quality filters: no self-matching tile, no duplicate pair,
//     no trivially aligned segmentations when uniqueness is requested.
//
// Everything is driven by one mulberry32 stream per call, so a (preset, seed,
// overrides) triple always reproduces the same instance byte for byte.
package puzzle

import (
	"fmt"
	"unicode/utf8"
)

// Attempt budgets. Generation is a bounded search: every loop below has a
// hard ceiling, and blowing all of them surfaces ErrGenerationExhausted
// rather than a silently degraded puzzle.
const (
	outerAttempts  = 100 // full restarts of the build procedure
	pairAttempts   = 50  // partition-pair draws per restart
	targetAttempts = 60  // target strings tried per partition pair
	dedupeAttempts = 50  // per-tile redraws in the unsolvable builder
)

// unsolvableThreshold gates the unsolvable branch: when settings allow it,
// a single draw above this value (roughly 40% of eligible generations)
// produces an unsolvable instance.
const unsolvableThreshold = 0.6

// Generate builds a puzzle instance from a preset, a seed, and optional
// overrides.
//
// # Determinism
//
// The seed is trimmed and used verbatim when non-blank; a blank seed mints a
// random token (recorded on the instance, so the result stays reproducible
// afterwards). Identical (preset, seed, overrides) triples yield identical
// instances: tile contents, display order, solvability, and solution.
//
// # Errors
//
// ErrInvalidAlphabet is returned before any generation work when a custom
// alphabet symbol is not exactly one character. ErrGenerationExhausted is
// returned when no valid tile set emerges within the attempt budgets —
// degenerate settings such as minLength == maxLength cannot produce two
// differing segmentations and always exhaust.
func Generate(preset Preset, seed string, overrides *Overrides) (*Instance, error) {
	if err := validateOverrides(overrides); err != nil {
		return nil, err
	}

	derived := DeriveSeed(seed)
	rng := NewRNG(HashSeed(derived))
	settings := resolveSettings(preset, overrides, rng)

	// The eligibility draw happens only when the settings allow unsolvable
	// instances, so flipping other knobs never shifts the stream.
	if settings.AllowUnsolvable && rng.Float64() > unsolvableThreshold {
		tiles, err := buildUnsolvable(rng, settings)
		if err != nil {
			return nil, err
		}
		return &Instance{
			Seed:     derived,
			Preset:   preset,
			Settings: settings,
			Tiles:    tiles,
			Solvable: false,
		}, nil
	}

	tiles, solution, err := buildSolvable(rng, settings)
	if err != nil {
		return nil, err
	}
	return &Instance{
		Seed:     derived,
		Preset:   preset,
		Settings: settings,
		Tiles:    tiles,
		Solvable: true,
		solution: solution,
	}, nil
}

// buildSolvable produces tiles whose tops and bottoms concatenate to the same
// string under the construction order. That order is recorded as the solution
// before the tiles are shuffled for display.
func buildSolvable(rng *RNG, s Settings) ([]Tile, []TileID, error) {
	// Alignment tolerance: small instances reject every coincidence, larger
	// ones tolerate a single one.
	tolerance := 0
	if s.TileCount >= 6 {
		tolerance = 1
	}

	for outer := 0; outer < outerAttempts; outer++ {
		top, bottom, ok := findPartitionPair(rng, s, tolerance)
		if !ok {
			top, bottom, ok = fallbackPartitionPair(s, tolerance)
		}
		if !ok {
			continue
		}

		total := 0
		for _, part := range top {
			total += part
		}

		for try := 0; try < targetAttempts; try++ {
			target := randomString(rng, s.Alphabet, total)
			tiles, ok := sliceTiles(target, top, bottom)
			if !ok {
				continue
			}

			solution := make([]TileID, len(tiles))
			for i, tile := range tiles {
				solution[i] = tile.ID
			}
			// Display order is a Fisher–Yates shuffle of the same stream;
			// tile contents and ids are untouched.
			rng.Shuffle(len(tiles), func(i, j int) {
				tiles[i], tiles[j] = tiles[j], tiles[i]
			})
			return tiles, solution, nil
		}
	}
	return nil, nil, ErrGenerationExhausted
}

// findPartitionPair draws independent top and bottom partitions of a shared
// target length until the pair survives the quality filters.
func findPartitionPair(rng *RNG, s Settings, tolerance int) ([]int, []int, bool) {
	minTotal := s.TileCount * s.MinLength
	maxTotal := s.TileCount * s.MaxLength

	for try := 0; try < pairAttempts; try++ {
		total := biasedTotal(rng, minTotal, maxTotal)
		top, ok := randomPartition(rng, total, s.TileCount, s.MinLength, s.MaxLength)
		if !ok {
			continue
		}
		bottom, ok := randomPartition(rng, total, s.TileCount, s.MinLength, s.MaxLength)
		if !ok {
			continue
		}
		if pairUsable(top, bottom, s.ForceUnique, tolerance) {
			return top, bottom, true
		}
	}
	return nil, nil, false
}

// fallbackPartitionPair hand-builds a deterministic pair — lengths spread
// ascending for the top, the same lengths descending for the bottom — that
// always satisfies the length bounds and shares a total. It remains subject
// to the same quality filters; with minLength == maxLength both sides
// collapse to the identical partition and no usable pair exists.
func fallbackPartitionPair(s Settings, tolerance int) ([]int, []int, bool) {
	n := s.TileCount
	span := s.MaxLength - s.MinLength

	top := make([]int, n)
	for i := range top {
		top[i] = s.MinLength + i*span/(n-1)
	}
	bottom := make([]int, n)
	for i := range bottom {
		bottom[i] = top[n-1-i]
	}

	if !pairUsable(top, bottom, s.ForceUnique, tolerance) {
		return nil, nil, false
	}
	return top, bottom, true
}

// pairUsable applies the structural filters to a partition pair: pointwise
// identical pairs can never slice into legal tiles, and when uniqueness is
// requested the alignment-coincidence count must stay within tolerance.
func pairUsable(top, bottom []int, forceUnique bool, tolerance int) bool {
	if equalParts(top, bottom) {
		return false
	}
	if forceUnique && alignmentCoincidences(top, bottom) > tolerance {
		return false
	}
	return true
}

// alignmentCoincidences counts construction positions whose top and bottom
// segments start at the same running offset with the same length. Such a
// position hands solvers a single-tile starter/ender shortcut; bounding the
// count reduces (but does not eliminate) alternate solutions.
func alignmentCoincidences(top, bottom []int) int {
	coincidences := 0
	topOff, botOff := 0, 0
	for i := range top {
		if topOff == botOff && top[i] == bottom[i] {
			coincidences++
		}
		topOff += top[i]
		botOff += bottom[i]
	}
	return coincidences
}

// biasedTotal picks a target length in [lo,hi], biased toward the mid-to-upper
// part of the range by keeping the larger of two uniform draws. Longer targets
// carry more signal per tile.
func biasedTotal(rng *RNG, lo, hi int) int {
	f := rng.Float64()
	if g := rng.Float64(); g > f {
		f = g
	}
	total := lo + int(f*float64(hi-lo+1))
	if total > hi {
		total = hi
	}
	return total
}

// sliceTiles cuts the target string by both partitions, walking each from
// offset 0 in tile order. Partition lengths count symbols, so the cuts are
// made over runes rather than bytes and multibyte alphabets stay on character
// boundaries. It rejects the attempt when any tile self-matches (top ==
// bottom) or repeats an earlier (top,bottom) pair — both cases reduce
// meaningful puzzle content.
func sliceTiles(target string, top, bottom []int) ([]Tile, bool) {
	type pair struct{ top, bottom string }
	seen := make(map[pair]struct{}, len(top))
	runes := []rune(target)

	tiles := make([]Tile, len(top))
	topOff, botOff := 0, 0
	for i := range top {
		t := string(runes[topOff : topOff+top[i]])
		b := string(runes[botOff : botOff+bottom[i]])
		if t == b {
			return nil, false
		}
		p := pair{top: t, bottom: b}
		if _, dup := seen[p]; dup {
			return nil, false
		}
		seen[p] = struct{}{}

		tiles[i] = Tile{ID: tileID(i), Top: t, Bottom: b}
		topOff += top[i]
		botOff += bottom[i]
	}
	return tiles, true
}

// buildUnsolvable draws each tile independently. Equal pairs are perturbed so
// no tile self-matches; duplicate pairs are re-drawn on a best-effort budget
// but tolerated when the budget runs out. When the alphabet offers a single
// distinct symbol nothing can be perturbed, so equal pairs are instead
// re-drawn until the two lengths differ; a fixed length leaves no way out and
// exhausts. Unsolvability is generator intent, not a proven property — no
// decision procedure runs here.
func buildUnsolvable(rng *RNG, s Settings) ([]Tile, error) {
	type pair struct{ top, bottom string }
	seen := make(map[pair]struct{}, s.TileCount)

	tiles := make([]Tile, 0, s.TileCount)
	for i := 0; i < s.TileCount; i++ {
		// The latest self-match-free draw is kept even when it duplicates an
		// earlier tile, so running out of budget only fails the build when
		// every draw self-matched.
		var top, bottom string
		found := false
		for try := 0; try < dedupeAttempts; try++ {
			t := randomString(rng, s.Alphabet, rng.IntBetween(s.MinLength, s.MaxLength))
			b := randomString(rng, s.Alphabet, rng.IntBetween(s.MinLength, s.MaxLength))
			if t == b {
				b = perturbBottom(b, s.Alphabet)
			}
			if t == b {
				continue
			}
			top, bottom, found = t, b, true
			if _, dup := seen[pair{top: t, bottom: b}]; !dup {
				break
			}
		}
		if !found {
			return nil, ErrGenerationExhausted
		}
		seen[pair{top: top, bottom: bottom}] = struct{}{}
		tiles = append(tiles, Tile{ID: tileID(i), Top: top, Bottom: bottom})
	}
	return tiles, nil
}

// perturbBottom rewrites the first symbol to the first alphabet symbol that
// differs from it. An alphabet with one distinct symbol has nothing to differ
// to; the string comes back unchanged and the caller must re-draw.
func perturbBottom(bottom string, alphabet []string) string {
	if bottom == "" {
		return bottom
	}
	first, size := utf8.DecodeRuneInString(bottom)
	for _, sym := range alphabet {
		if sym != string(first) {
			return sym + bottom[size:]
		}
	}
	return bottom
}

// randomString draws length symbols from the alphabet.
func randomString(rng *RNG, alphabet []string, length int) string {
	buf := make([]byte, 0, length)
	for i := 0; i < length; i++ {
		buf = append(buf, alphabet[rng.Intn(len(alphabet))]...)
	}
	return string(buf)
}

// equalParts reports whether two partitions are pointwise identical.
func equalParts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// tileID labels tiles t1..tN in construction order. Ids stay with their
// tiles through the display shuffle.
func tileID(i int) TileID {
	return TileID(fmt.Sprintf("t%d", i+1))
}
