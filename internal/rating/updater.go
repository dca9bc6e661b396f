package rating

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-edge/internal/models"
)

// NameResolver resolves raw player names to normalized keys
type NameResolver interface {
	Normalize(raw string) models.PlayerKey
}

// Updater revises ratings after observed match outcomes. Results must be
// applied sequentially in arrival order: two results touching the same
// (player, surface) entry in one batch compose through the store, single
// writer assumed.
type Updater struct {
	resolver NameResolver
	logger   *logrus.Logger
}

// NewUpdater creates an updater
func NewUpdater(resolver NameResolver, logger *logrus.Logger) *Updater {
	return &Updater{resolver: resolver, logger: logger}
}

// Apply resolves both players' pre-match ratings for the stated surface,
// computes the outcome-weighted step sized by the tournament tier, and writes
// both new ratings back. A result on an unrecognized surface or with an
// unresolvable player is skipped with a typed error; the caller continues
// with the rest of the batch.
func (u *Updater) Apply(result models.MatchResult, store Store) error {
	if !result.Surface.IsRecognized() {
		return fmt.Errorf("surface %q: %w", result.Surface, models.ErrUnrecognizedSurface)
	}

	key1 := u.resolver.Normalize(result.Player1)
	key2 := u.resolver.Normalize(result.Player2)
	winnerKey := u.resolver.Normalize(result.Winner)
	if key1.IsEmpty() || key2.IsEmpty() {
		return fmt.Errorf("players %q / %q: %w", result.Player1, result.Player2, models.ErrUnresolvedPlayer)
	}
	if winnerKey != key1 && winnerKey != key2 {
		return fmt.Errorf("winner %q matches neither player: %w", result.Winner, models.ErrUnresolvedPlayer)
	}

	r1 := store.Get(key1, result.Surface)
	r2 := store.Get(key2, result.Surface)

	expected1 := WinProbability(r1, r2)
	k := KFactorForTournament(result.Tournament)

	score1 := 0.0
	if winnerKey == key1 {
		score1 = 1.0
	}
	score2 := 1.0 - score1

	// Zero-sum on expected score: the winner's gain equals the loser's loss
	new1 := r1 + k*(score1-expected1)
	new2 := r2 + k*(score2-(1.0-expected1))

	store.Set(key1, result.Surface, new1)
	store.Set(key2, result.Surface, new2)

	if u.logger != nil {
		u.logger.WithFields(logrus.Fields{
			"player1": string(key1),
			"player2": string(key2),
			"surface": result.Surface.String(),
			"k":       k,
			"r1":      fmt.Sprintf("%.1f -> %.1f", r1, new1),
			"r2":      fmt.Sprintf("%.1f -> %.1f", r2, new2),
		}).Debug("Ratings updated")
	}

	return nil
}
