package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/Forest904/PCP-Pattern-Pursuit/internal/puzzle"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the deterministic puzzle seed for a date using
// HMAC(salt, YYYY-MM-DD). Every player sees the same daily puzzle; the salt
// keeps future seeds unguessable without making today's irreproducible.
func Seed(date time.Time, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes are plenty of seed entropy and keep codes short
	return hex.EncodeToString(sum[:8])
}

// PresetFor returns the difficulty for a date. The week ramps up: easy
// Monday–Tuesday, medium Wednesday–Thursday, hard Friday–Saturday, expert
// Sunday.
func PresetFor(date time.Time) puzzle.Preset {
	switch date.UTC().Weekday() {
	case time.Wednesday, time.Thursday:
		return puzzle.PresetMedium
	case time.Friday, time.Saturday:
		return puzzle.PresetHard
	case time.Sunday:
		return puzzle.PresetExpert
	default:
		return puzzle.PresetEasy
	}
}
