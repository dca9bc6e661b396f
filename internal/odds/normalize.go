// Package odds converts bookmaker decimal prices into de-margined
// probabilities.
package odds

import (
	"fmt"

	"github.com/yourusername/court-edge/internal/models"
)

// ImpliedProbability converts a decimal price into its raw implied
// probability, before the overround is removed. Prices at or below 1.0 cannot
// imply a probability in (0,1] and are rejected.
func ImpliedProbability(price float64) (float64, error) {
	if price <= 1.0 {
		return 0, fmt.Errorf("price %.4f: %w", price, models.ErrInvalidOdds)
	}
	return 1.0 / price, nil
}

// Normalize converts a pair of decimal prices into de-margined probabilities
// that sum to 1. The bookmaker margin is removed multiplicatively: each raw
// implied probability is divided by their sum.
func Normalize(price1, price2 float64) (float64, float64, error) {
	implied1, err := ImpliedProbability(price1)
	if err != nil {
		return 0, 0, err
	}
	implied2, err := ImpliedProbability(price2)
	if err != nil {
		return 0, 0, err
	}

	total := implied1 + implied2
	return implied1 / total, implied2 / total, nil
}

// Overround returns the bookmaker margin baked into a pair of prices, e.g.
// 0.04 for a 104% book. Exposed for metrics and reporting only.
func Overround(price1, price2 float64) (float64, error) {
	implied1, err := ImpliedProbability(price1)
	if err != nil {
		return 0, err
	}
	implied2, err := ImpliedProbability(price2)
	if err != nil {
		return 0, err
	}
	return implied1 + implied2 - 1.0, nil
}
