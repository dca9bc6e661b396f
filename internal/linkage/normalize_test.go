package linkage

import (
	"testing"

	"github.com/yourusername/court-edge/internal/models"
)

func TestNormalizeCompact(t *testing.T) {
	n := NewNormalizer(ModeCompact)

	cases := []struct {
		raw  string
		want models.PlayerKey
	}{
		{"Rafael Nadal", "r. nadal"},
		{"R. Nadal", "r. nadal"},
		{"  Novak   Djokovic ", "n. djokovic"},
		{"Jo-Wilfried Tsonga", "j. tsonga"},
		{"N'Goran", "ngoran"},
		{"Félix Auger-Aliassime", "f. aliassime"},
		{"Muguruza", "muguruza"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		if got := n.Normalize(tc.raw); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeLiteral(t *testing.T) {
	n := NewNormalizer(ModeLiteral)

	if got := n.Normalize("Félix Auger-Aliassime"); got != "felix auger aliassime" {
		t.Fatalf("literal normalize = %q", got)
	}
	if got := n.Normalize("J.J. Wolf"); got != "jj wolf" {
		t.Fatalf("literal normalize = %q", got)
	}
}

func TestNormalizeSameEntityAcrossSources(t *testing.T) {
	n := NewNormalizer(ModeCompact)

	// The fixture feed and the odds feed spell players differently; both
	// spellings must land on the same key.
	if n.Normalize("R. Nadal") != n.Normalize("Rafael Nadal") {
		t.Fatalf("expected compact keys to collide for the same player")
	}

	// Documented precision loss: distinct players sharing initial and surname
	// collide. Accepted, not an error.
	if n.Normalize("Andy Murray") != n.Normalize("Anna Murray") {
		t.Fatalf("expected documented initial+surname collision")
	}
}
