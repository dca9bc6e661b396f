// Package linkage reconciles player identities across the fixture feed and the
// odds feed, which disagree on name formatting, diacritics and ordering.
package linkage

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/yourusername/court-edge/internal/models"
)

// Mode controls how aggressively names are compacted
type Mode string

const (
	// ModeCompact reduces a name to "<first-initial>. <last-token>". Two
	// different players sharing first initial and surname collide under this
	// mode; that loss of precision is accepted to survive cross-source drift.
	ModeCompact Mode = "compact"
	// ModeLiteral keeps the folded full name
	ModeLiteral Mode = "literal"
)

// Normalizer canonicalizes free-text player names into comparable keys
type Normalizer struct {
	mode Mode
}

// NewNormalizer creates a normalizer in the given mode
func NewNormalizer(mode Mode) *Normalizer {
	if mode != ModeLiteral {
		mode = ModeCompact
	}
	return &Normalizer{mode: mode}
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a raw player name into a PlayerKey. Lower case, diacritics
// stripped, hyphens become spaces, apostrophes and periods removed, whitespace
// collapsed. Compact mode then keeps only the first initial and the last
// token. Empty or unusable input yields the empty key, never an error.
func (n *Normalizer) Normalize(raw string) models.PlayerKey {
	folded := fold(raw)
	if folded == "" {
		return ""
	}
	if n.mode == ModeLiteral {
		return models.PlayerKey(folded)
	}

	parts := strings.Fields(folded)
	if len(parts) == 1 {
		return models.PlayerKey(parts[0])
	}
	return models.PlayerKey(string(parts[0][0]) + ". " + parts[len(parts)-1])
}

// fold applies the lossless part of normalization shared by both modes
func fold(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '-':
			b.WriteRune(' ')
		case '\'', '’', '.':
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
