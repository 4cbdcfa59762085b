// internal/share/share.go
//
// Share codes: a compact, URL-safe text form of everything needed to rebuild
// a puzzle instance. Because generation is deterministic, shipping (preset,
// seed, overrides) is equivalent to shipping the puzzle itself.
//
// Format (dot-separated, version first):
//
//	v1.<preset>.<base64url(seed)>[.<k=v>,<k=v>,...]
//
// The seed travels base64url-encoded so arbitrary seed text cannot collide
// with the separators. Override keys are short and fixed: n (tile count),
// min/max (length bounds), a (alphabet size), t (theme), u (allow
// unsolvable), q (force unique). Custom alphabet overrides do not travel in
// share codes; codes built from such instances reproduce the size, not the
// symbols.

package share

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Forest904/PCP-Pattern-Pursuit/internal/puzzle"
)

const version = "v1"

var (
	// ErrMalformedCode is returned when a code cannot be parsed at all.
	ErrMalformedCode = errors.New("malformed share code")
	// ErrUnsupportedVersion is returned for codes from a newer format.
	ErrUnsupportedVersion = errors.New("unsupported share code version")
	// ErrBlankSeed is returned when encoding without a concrete seed; blank
	// seeds are minted at generation time and would not reproduce anything.
	ErrBlankSeed = errors.New("share codes require a concrete seed")
)

// Encode builds a share code for the given generation inputs.
func Encode(preset puzzle.Preset, seed string, ov *puzzle.Overrides) (string, error) {
	if strings.TrimSpace(seed) == "" {
		return "", ErrBlankSeed
	}

	var b strings.Builder
	b.WriteString(version)
	b.WriteByte('.')
	b.WriteString(string(preset))
	b.WriteByte('.')
	b.WriteString(base64.RawURLEncoding.EncodeToString([]byte(seed)))

	if pairs := encodeOverrides(ov); pairs != "" {
		b.WriteByte('.')
		b.WriteString(pairs)
	}
	return b.String(), nil
}

// encodeOverrides renders the override knobs in a fixed key order so equal
// inputs always produce byte-identical codes.
func encodeOverrides(ov *puzzle.Overrides) string {
	if ov == nil {
		return ""
	}
	var pairs []string
	if ov.TileCount != nil {
		pairs = append(pairs, fmt.Sprintf("n=%d", *ov.TileCount))
	}
	if ov.MinLength != nil {
		pairs = append(pairs, fmt.Sprintf("min=%d", *ov.MinLength))
	}
	if ov.MaxLength != nil {
		pairs = append(pairs, fmt.Sprintf("max=%d", *ov.MaxLength))
	}
	if ov.AlphabetSize != nil {
		pairs = append(pairs, fmt.Sprintf("a=%d", *ov.AlphabetSize))
	}
	if ov.Theme != nil {
		pairs = append(pairs, "t="+string(*ov.Theme))
	}
	if ov.AllowUnsolvable != nil {
		pairs = append(pairs, "u="+boolFlag(*ov.AllowUnsolvable))
	}
	if ov.ForceUnique != nil {
		pairs = append(pairs, "q="+boolFlag(*ov.ForceUnique))
	}
	return strings.Join(pairs, ",")
}

// Decode parses a share code back into generation inputs. The returned
// overrides pointer is nil when the code carries none.
func Decode(code string) (puzzle.Preset, string, *puzzle.Overrides, error) {
	parts := strings.SplitN(strings.TrimSpace(code), ".", 4)
	if len(parts) < 3 {
		return "", "", nil, fmt.Errorf("%w: expected at least 3 segments", ErrMalformedCode)
	}
	if parts[0] != version {
		return "", "", nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, parts[0])
	}

	preset, err := puzzle.ParsePreset(parts[1])
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrMalformedCode, err)
	}

	seedBytes, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: seed segment: %v", ErrMalformedCode, err)
	}
	seed := string(seedBytes)
	if strings.TrimSpace(seed) == "" {
		return "", "", nil, fmt.Errorf("%w: empty seed", ErrMalformedCode)
	}

	if len(parts) == 3 {
		return preset, seed, nil, nil
	}
	ov, err := decodeOverrides(parts[3])
	if err != nil {
		return "", "", nil, err
	}
	return preset, seed, ov, nil
}

func decodeOverrides(segment string) (*puzzle.Overrides, error) {
	ov := &puzzle.Overrides{}
	for _, pair := range strings.Split(segment, ",") {
		key, val, found := strings.Cut(pair, "=")
		if !found || key == "" || val == "" {
			return nil, fmt.Errorf("%w: override %q", ErrMalformedCode, pair)
		}

		switch key {
		case "n", "min", "max", "a":
			num, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("%w: override %q: %v", ErrMalformedCode, pair, err)
			}
			switch key {
			case "n":
				ov.TileCount = &num
			case "min":
				ov.MinLength = &num
			case "max":
				ov.MaxLength = &num
			case "a":
				ov.AlphabetSize = &num
			}
		case "t":
			theme := puzzle.Theme(val)
			ov.Theme = &theme
		case "u", "q":
			flag, err := parseBoolFlag(val)
			if err != nil {
				return nil, fmt.Errorf("%w: override %q: %v", ErrMalformedCode, pair, err)
			}
			if key == "u" {
				ov.AllowUnsolvable = &flag
			} else {
				ov.ForceUnique = &flag
			}
		default:
			return nil, fmt.Errorf("%w: unknown override key %q", ErrMalformedCode, key)
		}
	}
	return ov, nil
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func parseBoolFlag(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("want 0 or 1, got %q", s)
	}
}
