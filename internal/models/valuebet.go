package models

import (
	"time"

	"github.com/google/uuid"
)

// ValueBet represents a flagged discrepancy between the model and the market.
// Produced transiently per run for notification and audit logging.
type ValueBet struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Player      string    `db:"player" json:"player"`
	PlayerKey   PlayerKey `db:"player_key" json:"player_key"`
	Opponent    string    `db:"opponent" json:"opponent"`
	Surface     Surface   `db:"surface" json:"surface"`
	Tournament  string    `db:"tournament" json:"tournament"`
	Price       float64   `db:"price" json:"price"`
	ModelProb   float64   `db:"model_prob" json:"model_prob"`
	ImpliedProb float64   `db:"implied_prob" json:"implied_prob"`
	Edge        float64   `db:"edge" json:"edge"`
	FoundAt     time.Time `db:"found_at" json:"found_at"`
	// Outcome is filled in after settlement: nil while open, then won/lost
	Outcome *BetOutcome `db:"outcome" json:"outcome,omitempty"`
}

// BetOutcome represents the settled result of a logged value bet
type BetOutcome string

const (
	BetOutcomeWon  BetOutcome = "won"
	BetOutcomeLost BetOutcome = "lost"
)

// ROI returns the per-unit return the bet would yield if it won
func (v *ValueBet) ROI() float64 {
	if v.Price <= 1.0 {
		return 0
	}
	return v.Price - 1.0
}
