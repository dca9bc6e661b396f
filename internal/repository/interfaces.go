// Package repository implements PostgreSQL persistence for ratings and the
// value-bet audit log.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/court-edge/internal/models"
	"github.com/yourusername/court-edge/internal/rating"
)

// RatingRepository persists the full rating table between runs. LoadAll and
// SaveAll must round-trip every entry exactly.
type RatingRepository interface {
	LoadAll(ctx context.Context) ([]rating.Entry, error)
	SaveAll(ctx context.Context, entries []rating.Entry) error
}

// BetLogRepository keeps an audit trail of flagged value bets and their
// eventual outcomes.
type BetLogRepository interface {
	InsertBatch(ctx context.Context, bets []models.ValueBet) error
	GetOpen(ctx context.Context) ([]models.ValueBet, error)
	MarkOutcome(ctx context.Context, id uuid.UUID, outcome models.BetOutcome) error
}

// Repositories holds all repository implementations
type Repositories struct {
	Rating RatingRepository
	BetLog BetLogRepository
}
