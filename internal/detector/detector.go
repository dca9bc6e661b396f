// Package detector flags markets whose bookmaker price disagrees with the
// rating model by more than a configured threshold.
package detector

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-edge/internal/models"
	"github.com/yourusername/court-edge/internal/odds"
	"github.com/yourusername/court-edge/internal/rating"
)

// EdgeMode selects how the edge behind the threshold is measured. The source
// material is ambiguous between the two; which one the threshold means is
// configuration, not a hard-coded choice.
type EdgeMode string

const (
	// EdgeModeProbability measures edge in probability space:
	// modelProb - impliedProb (de-margined).
	EdgeModeProbability EdgeMode = "probability"
	// EdgeModeExpectedValue measures edge in expected-value space:
	// modelProb * price - 1.
	EdgeModeExpectedValue EdgeMode = "expected_value"
)

// DefaultThreshold is the minimum edge that flags a bet
const DefaultThreshold = 0.05

// Detector joins matched markets with ratings and implied probabilities and
// emits value bets. It is a pure function of its inputs: it never mutates the
// rating store, and two runs over the same snapshot produce identical output.
type Detector struct {
	threshold float64
	mode      EdgeMode
	logger    *logrus.Logger
	now       func() time.Time
}

// New creates a detector. Non-positive thresholds fall back to the default;
// an unrecognized mode falls back to probability space.
func New(threshold float64, mode EdgeMode, logger *logrus.Logger) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if mode != EdgeModeExpectedValue {
		mode = EdgeModeProbability
	}
	return &Detector{threshold: threshold, mode: mode, logger: logger, now: time.Now}
}

// Detect evaluates every market independently and returns the flagged bets
// plus the records it had to skip. A single match can emit zero, one or two
// bets; each side is judged on its own.
func (d *Detector) Detect(markets []models.MatchedMarket, store rating.Store) ([]models.ValueBet, []models.SkippedRecord) {
	var bets []models.ValueBet
	var skipped []models.SkippedRecord

	for _, market := range markets {
		sides, err := d.evaluateMarket(market, store)
		if err != nil {
			skipped = append(skipped, models.SkippedRecord{
				Reason: models.SkipReasonInvalidOdds,
				Detail: market.Player1 + " vs " + market.Player2,
			})
			if d.logger != nil {
				d.logger.WithError(err).WithFields(logrus.Fields{
					"player1": market.Player1,
					"player2": market.Player2,
				}).Warn("Quote rejected")
			}
			continue
		}
		bets = append(bets, sides...)
	}

	return bets, skipped
}

// evaluateMarket computes both sides' edges for one market
func (d *Detector) evaluateMarket(market models.MatchedMarket, store rating.Store) ([]models.ValueBet, error) {
	implied1, implied2, err := odds.Normalize(market.Price1, market.Price2)
	if err != nil {
		return nil, err
	}

	r1 := store.Get(market.Key1, market.Surface)
	r2 := store.Get(market.Key2, market.Surface)
	model1 := rating.WinProbability(r1, r2)
	model2 := 1.0 - model1

	var bets []models.ValueBet
	sides := []struct {
		player, opponent string
		key              models.PlayerKey
		price            float64
		modelProb        float64
		impliedProb      float64
	}{
		{market.Player1, market.Player2, market.Key1, market.Price1, model1, implied1},
		{market.Player2, market.Player1, market.Key2, market.Price2, model2, implied2},
	}

	for _, side := range sides {
		edge := d.edge(side.modelProb, side.impliedProb, side.price)
		if edge <= d.threshold {
			continue
		}
		bets = append(bets, models.ValueBet{
			ID:          uuid.New(),
			Player:      side.player,
			PlayerKey:   side.key,
			Opponent:    side.opponent,
			Surface:     market.Surface,
			Tournament:  market.Tournament,
			Price:       side.price,
			ModelProb:   side.modelProb,
			ImpliedProb: side.impliedProb,
			Edge:        edge,
			FoundAt:     d.now(),
		})
	}

	return bets, nil
}

func (d *Detector) edge(modelProb, impliedProb, price float64) float64 {
	if d.mode == EdgeModeExpectedValue {
		return modelProb*price - 1.0
	}
	return modelProb - impliedProb
}
