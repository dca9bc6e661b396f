package rating

import "math"

// eloScale is the rating difference that corresponds to one order of
// magnitude in win odds, the conventional 400-point logistic scale.
const eloScale = 400.0

// WinProbability returns the probability that the player holding ratingA
// beats the player holding ratingB. Total over all real inputs and symmetric:
// WinProbability(a, b) + WinProbability(b, a) == 1.
func WinProbability(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/eloScale))
}
