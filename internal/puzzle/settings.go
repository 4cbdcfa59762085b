// internal/puzzle/settings.go
//
// Presets, overrides, and the settings resolver.
// A Preset names a difficulty profile; Overrides carry the knobs a caller
// chose to pin; Resolve merges the two into the fully concrete Settings the
// builders consume. All numeric knobs are silently clamped into their legal
// ranges — the resolver never rejects input. Custom alphabets are the one
// exception: validateOverrides screens them before resolution, because a
// symbol that is empty or spans several characters cannot be clamped into
// legality.

package puzzle

import (
	"fmt"
	"unicode/utf8"
)

// symbolPool is the fixed ordered pool themes draw tile symbols from.
// Alphabet sizes index a prefix of this table, so size 3 is always {a,b,c}.
const symbolPool = "abcdefghijklmnopqrstuvwxyz"

// Clamp bounds for resolved settings.
const (
	minTileCount    = 2
	maxTileCount    = 24
	maxMinLength    = 48
	maxMaxLength    = 64
	maxAlphabetSize = 26
)

// Theme selects how the alphabet is derived.
type Theme string

const (
	// ThemePreset uses the preset's (or overridden) alphabet size.
	ThemePreset Theme = "preset"
	// ThemeBinary pins the alphabet to exactly {"0","1"}.
	ThemeBinary Theme = "binary"
	// ThemeWide widens the alphabet to 5–6 symbols.
	ThemeWide Theme = "wide"
)

// Preset names a difficulty profile.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetMedium Preset = "medium"
	PresetHard   Preset = "hard"
	PresetExpert Preset = "expert"
)

// ParsePreset converts a string to a Preset.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case PresetEasy, PresetMedium, PresetHard, PresetExpert:
		return Preset(s), nil
	default:
		return PresetEasy, fmt.Errorf("unknown preset: %q", s)
	}
}

// presetConfig holds the generation profile behind a preset. TileCountLo/Hi
// describe a range; presets with a fixed count use Lo == Hi, which consumes
// no RNG draw during resolution.
type presetConfig struct {
	TileCountLo     int
	TileCountHi     int
	MinLength       int
	MaxLength       int
	AlphabetSize    int
	Theme           Theme
	AllowUnsolvable bool
	ForceUnique     bool
}

// configFor returns the profile for a preset. Unknown presets fall back to
// the easy profile; strict validation belongs to the callers that parse
// user input.
func configFor(preset Preset) presetConfig {
	switch preset {
	case PresetMedium:
		return presetConfig{
			TileCountLo:     4,
			TileCountHi:     6,
			MinLength:       2,
			MaxLength:       4,
			AlphabetSize:    3,
			Theme:           ThemePreset,
			AllowUnsolvable: false,
			ForceUnique:     true,
		}

	case PresetHard:
		return presetConfig{
			TileCountLo:     6,
			TileCountHi:     9,
			MinLength:       1,
			MaxLength:       4,
			AlphabetSize:    3,
			Theme:           ThemePreset,
			AllowUnsolvable: true,
			ForceUnique:     true,
		}

	case PresetExpert:
		return presetConfig{
			TileCountLo:     9,
			TileCountHi:     12,
			MinLength:       1,
			MaxLength:       5,
			AlphabetSize:    4,
			Theme:           ThemePreset,
			AllowUnsolvable: true,
			ForceUnique:     true,
		}

	default: // easy
		return presetConfig{
			TileCountLo:     3,
			TileCountHi:     3,
			MinLength:       2,
			MaxLength:       3,
			AlphabetSize:    2,
			Theme:           ThemePreset,
			AllowUnsolvable: false,
			ForceUnique:     true,
		}
	}
}

// Overrides are the knobs a caller may pin before resolution. Nil pointer
// fields (and an empty Alphabet) mean "use the preset's value".
type Overrides struct {
	TileCount       *int
	MinLength       *int
	MaxLength       *int
	AlphabetSize    *int
	Alphabet        []string
	Theme           *Theme
	AllowUnsolvable *bool
	ForceUnique     *bool
}

// validateOverrides rejects the override values clamping cannot repair: every
// custom alphabet symbol must be exactly one character, counted in runes so
// multibyte symbols pass. Everything else normalizes silently in
// resolveSettings.
func validateOverrides(ov *Overrides) error {
	if ov == nil {
		return nil
	}
	for _, sym := range ov.Alphabet {
		if utf8.RuneCountInString(sym) != 1 {
			return fmt.Errorf("%w: %q", ErrInvalidAlphabet, sym)
		}
	}
	return nil
}

// Settings is the fully concrete generation profile after resolution.
type Settings struct {
	TileCount       int      `json:"tileCount"`
	MinLength       int      `json:"minLength"`
	MaxLength       int      `json:"maxLength"`
	Alphabet        []string `json:"alphabet"`
	Theme           Theme    `json:"theme"`
	AllowUnsolvable bool     `json:"allowUnsolvable"`
	ForceUnique     bool     `json:"forceUnique"`
}

// resolveSettings merges a preset profile with overrides into concrete
// Settings. The RNG is consumed only when a preset tile-count range has to
// collapse to a single value; every other path is draw-free so that toggling
// unrelated overrides cannot shift the stream.
func resolveSettings(preset Preset, ov *Overrides, rng *RNG) Settings {
	if ov == nil {
		ov = &Overrides{}
	}
	cfg := configFor(preset)

	tileCount := 0
	switch {
	case ov.TileCount != nil:
		tileCount = *ov.TileCount
	case cfg.TileCountLo == cfg.TileCountHi:
		tileCount = cfg.TileCountLo
	default:
		tileCount = cfg.TileCountLo + rng.Intn(cfg.TileCountHi-cfg.TileCountLo+1)
	}
	tileCount = clamp(tileCount, minTileCount, maxTileCount)

	minLength := cfg.MinLength
	if ov.MinLength != nil {
		minLength = *ov.MinLength
	}
	minLength = clamp(minLength, 1, maxMinLength)

	maxLength := cfg.MaxLength
	if ov.MaxLength != nil {
		maxLength = *ov.MaxLength
	}
	// Max is forced up to min rather than rejected, so inverted ranges
	// normalize to a single fixed length.
	maxLength = clamp(maxLength, minLength, maxMaxLength)

	theme := cfg.Theme
	if ov.Theme != nil {
		theme = *ov.Theme
	}

	requestedSize := cfg.AlphabetSize
	if ov.AlphabetSize != nil {
		requestedSize = *ov.AlphabetSize
	}

	var alphabet []string
	switch {
	case len(ov.Alphabet) > 0:
		alphabet = append([]string(nil), ov.Alphabet...)
	case theme == ThemeBinary:
		alphabet = []string{"0", "1"}
	case theme == ThemeWide:
		alphabet = poolPrefix(clamp(requestedSize, 5, 6))
	default:
		alphabet = poolPrefix(clamp(requestedSize, 1, maxAlphabetSize))
	}

	allowUnsolvable := cfg.AllowUnsolvable
	if ov.AllowUnsolvable != nil {
		allowUnsolvable = *ov.AllowUnsolvable
	}
	forceUnique := cfg.ForceUnique
	if ov.ForceUnique != nil {
		forceUnique = *ov.ForceUnique
	}

	return Settings{
		TileCount:       tileCount,
		MinLength:       minLength,
		MaxLength:       maxLength,
		Alphabet:        alphabet,
		Theme:           theme,
		AllowUnsolvable: allowUnsolvable,
		ForceUnique:     forceUnique,
	}
}

// poolPrefix returns the first n symbols of the fixed pool as single-character
// strings.
func poolPrefix(n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = string(symbolPool[i])
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
