package linkage

import (
	"testing"

	"github.com/yourusername/court-edge/internal/models"
)

func TestSimilarityBounds(t *testing.T) {
	if got := Similarity("rafael nadal", "rafael nadal"); got != 1.0 {
		t.Fatalf("identical strings: got %f, want 1.0", got)
	}
	if got := Similarity("", "rafael nadal"); got != 0.0 {
		t.Fatalf("empty string: got %f, want 0.0", got)
	}
	if got := Similarity("rafael nadal", "novak djokovic"); got >= 0.8 {
		t.Fatalf("unrelated names score %f, expected below threshold", got)
	}
	if got := Similarity("rafael nadal", "rafaël nadal"); got <= 0.8 {
		t.Fatalf("near-identical names score %f, expected above threshold", got)
	}
}

func TestTokenSortSimilarity(t *testing.T) {
	if got := TokenSortSimilarity("nadal rafael", "rafael nadal"); got != 1.0 {
		t.Fatalf("token-sorted identical names: got %f, want 1.0", got)
	}
}

func fixture(p1, p2 string) models.Fixture {
	return models.Fixture{Player1: p1, Player2: p2, Surface: models.SurfaceHard, Tournament: "Wimbledon"}
}

func quote(p1, p2 string, price1, price2 float64) models.OddsQuote {
	return models.OddsQuote{Player1: p1, Player2: p2, Price1: price1, Price2: price2}
}

func TestLinkExactAfterNormalization(t *testing.T) {
	linker := NewLinker(NewNormalizer(ModeCompact), 0.8, nil)

	fixtures := []models.Fixture{fixture("R. Nadal", "N. Djokovic")}
	quotes := []models.OddsQuote{quote("Rafael Nadal", "Novak Djokovic", 1.80, 2.20)}

	matched, unmatched := linker.Link(fixtures, quotes)
	if len(matched) != 1 || len(unmatched) != 0 {
		t.Fatalf("expected 1 matched, 0 unmatched; got %d, %d", len(matched), len(unmatched))
	}

	m := matched[0]
	if m.Key1 != "r. nadal" || m.Key2 != "n. djokovic" {
		t.Fatalf("unexpected keys: %q, %q", m.Key1, m.Key2)
	}
	if m.Price1 != 1.80 || m.Price2 != 2.20 {
		t.Fatalf("prices not carried over: %f, %f", m.Price1, m.Price2)
	}
	if m.Surface != models.SurfaceHard || m.Tournament != "Wimbledon" {
		t.Fatalf("fixture attributes not carried over")
	}
}

func TestLinkFuzzyFallback(t *testing.T) {
	// Literal mode keeps full names, so a shortened first name needs the
	// fuzzy path: "alex zverev" is no exact match for "alexander zverev".
	linker := NewLinker(NewNormalizer(ModeLiteral), 0.8, nil)

	fixtures := []models.Fixture{fixture("Alexander Zverev", "Daniil Medvedev")}
	quotes := []models.OddsQuote{
		quote("Rafael Nadal", "Novak Djokovic", 1.50, 2.60),
		quote("Alex Zverev", "Danil Medvedev", 1.80, 2.20),
	}

	matched, unmatched := linker.Link(fixtures, quotes)
	if len(matched) != 1 || len(unmatched) != 0 {
		t.Fatalf("expected fuzzy link; got %d matched, %d unmatched", len(matched), len(unmatched))
	}
	if matched[0].Price1 != 1.80 {
		t.Fatalf("fuzzy link picked the wrong quote")
	}
}

func TestLinkDropsUnmatchedFixture(t *testing.T) {
	linker := NewLinker(NewNormalizer(ModeCompact), 0.8, nil)

	fixtures := []models.Fixture{fixture("R. Nadal", "C. Alcaraz")}
	quotes := []models.OddsQuote{quote("Daniil Medvedev", "Alexander Zverev", 1.50, 2.60)}

	matched, unmatched := linker.Link(fixtures, quotes)
	if len(matched) != 0 {
		t.Fatalf("expected no match against unrelated quote")
	}
	if len(unmatched) != 1 {
		t.Fatalf("unmatched fixture must be reported, not lost")
	}
}

func TestLinkTieBreakFirstInInputOrder(t *testing.T) {
	linker := NewLinker(NewNormalizer(ModeLiteral), 0.8, nil)

	fixtures := []models.Fixture{fixture("Rafael Nadal", "Novak Djokovic")}
	// Two quotes with identical misspelled names tie on similarity; the first
	// encountered in input order must win.
	quotes := []models.OddsQuote{
		quote("Rafel Nadal", "Novak Djokovik", 1.80, 2.20),
		quote("Rafel Nadal", "Novak Djokovik", 1.95, 2.05),
	}

	matched, _ := linker.Link(fixtures, quotes)
	if len(matched) != 1 {
		t.Fatalf("expected exactly one link")
	}
	if matched[0].Price1 != 1.80 {
		t.Fatalf("tie-break must keep the first quote, got price %f", matched[0].Price1)
	}
}

func TestLinkSlotDisagreementDrops(t *testing.T) {
	linker := NewLinker(NewNormalizer(ModeLiteral), 0.8, nil)

	fixtures := []models.Fixture{fixture("Rafael Nadal", "Novak Djokovic")}
	// Slot 1 points at the first quote, slot 2 at the second; no single quote
	// satisfies both, so the fixture drops.
	quotes := []models.OddsQuote{
		quote("Rafaël Nadal", "Casper Ruud", 1.40, 2.90),
		quote("Jannik Sinner", "Novak Djokovič", 1.60, 2.40),
	}

	matched, unmatched := linker.Link(fixtures, quotes)
	if len(matched) != 0 || len(unmatched) != 1 {
		t.Fatalf("expected slot disagreement to drop the fixture")
	}
}
