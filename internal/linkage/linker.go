package linkage

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-edge/internal/models"
)

// DefaultSimilarityThreshold is the minimum fallback similarity for a link
const DefaultSimilarityThreshold = 0.8

// Linker matches fixture records to odds records whose player names do not
// align exactly. Exact matches on normalized keys are tried first; the
// fallback is approximate similarity per player slot.
type Linker struct {
	normalizer *Normalizer
	threshold  float64
	logger     *logrus.Logger
}

// NewLinker creates a linker with the given similarity threshold.
// A non-positive threshold falls back to the default.
func NewLinker(normalizer *Normalizer, threshold float64, logger *logrus.Logger) *Linker {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Linker{
		normalizer: normalizer,
		threshold:  threshold,
		logger:     logger,
	}
}

// Link joins fixtures with quotes. Fixtures with no linked quote are returned
// separately so the caller can count them; they never abort the run.
func (l *Linker) Link(fixtures []models.Fixture, quotes []models.OddsQuote) ([]models.MatchedMarket, []models.Fixture) {
	index := l.buildQuoteIndex(quotes)

	var matched []models.MatchedMarket
	var unmatched []models.Fixture

	for _, fixture := range fixtures {
		key1 := l.normalizer.Normalize(fixture.Player1)
		key2 := l.normalizer.Normalize(fixture.Player2)
		if key1.IsEmpty() || key2.IsEmpty() {
			unmatched = append(unmatched, fixture)
			continue
		}

		quote, ok := l.resolve(key1, key2, index, quotes)
		if !ok {
			unmatched = append(unmatched, fixture)
			continue
		}

		matched = append(matched, models.MatchedMarket{
			Key1:       key1,
			Key2:       key2,
			Player1:    fixture.Player1,
			Player2:    fixture.Player2,
			Surface:    fixture.Surface,
			Tournament: fixture.Tournament,
			Price1:     quote.Price1,
			Price2:     quote.Price2,
		})
	}

	return matched, unmatched
}

type quotePair struct {
	key1, key2 models.PlayerKey
}

// buildQuoteIndex maps normalized (player1, player2) pairs to the first quote
// carrying them. First-in wins on duplicates, keeping output deterministic.
func (l *Linker) buildQuoteIndex(quotes []models.OddsQuote) map[quotePair]int {
	index := make(map[quotePair]int, len(quotes))
	for i, quote := range quotes {
		pair := quotePair{
			key1: l.normalizer.Normalize(quote.Player1),
			key2: l.normalizer.Normalize(quote.Player2),
		}
		if pair.key1.IsEmpty() || pair.key2.IsEmpty() {
			continue
		}
		if _, exists := index[pair]; !exists {
			index[pair] = i
		}
	}
	return index
}

// resolve finds the quote for a fixture: exact key match first (order
// sensitive, player1 against player1), then per-slot fuzzy fallback.
func (l *Linker) resolve(key1, key2 models.PlayerKey, index map[quotePair]int, quotes []models.OddsQuote) (models.OddsQuote, bool) {
	if i, ok := index[quotePair{key1: key1, key2: key2}]; ok {
		return quotes[i], true
	}

	best1 := l.bestCandidate(key1, quotes, func(q models.OddsQuote) string {
		return string(l.normalizer.Normalize(q.Player1))
	})
	best2 := l.bestCandidate(key2, quotes, func(q models.OddsQuote) string {
		return string(l.normalizer.Normalize(q.Player2))
	})

	// Both slots must independently clear the threshold and agree on the quote
	if best1 < 0 || best1 != best2 {
		if l.logger != nil && (best1 >= 0 || best2 >= 0) {
			l.logger.WithFields(logrus.Fields{
				"key1": string(key1),
				"key2": string(key2),
			}).Debug("Fuzzy candidates disagree, fixture dropped")
		}
		return models.OddsQuote{}, false
	}
	return quotes[best1], true
}

// bestCandidate returns the index of the quote whose selected name scores
// highest against the key, or -1 if none clears the threshold. Strict
// greater-than keeps the first quote in input order on ties; that tie-break is
// deterministic and order dependent, an implementation choice rather than a
// globally optimal match.
func (l *Linker) bestCandidate(key models.PlayerKey, quotes []models.OddsQuote, name func(models.OddsQuote) string) int {
	best := -1
	bestScore := l.threshold
	for i, quote := range quotes {
		candidate := name(quote)
		if candidate == "" {
			continue
		}
		score := Similarity(string(key), candidate)
		if sorted := TokenSortSimilarity(string(key), candidate); sorted > score {
			score = sorted
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}
