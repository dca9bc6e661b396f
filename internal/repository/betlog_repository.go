package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/court-edge/internal/database"
	"github.com/yourusername/court-edge/internal/models"
)

// PostgresBetLogRepository implements BetLogRepository for PostgreSQL
type PostgresBetLogRepository struct {
	db *database.DB
}

// NewPostgresBetLogRepository creates a new bet-log repository
func NewPostgresBetLogRepository(db *database.DB) BetLogRepository {
	return &PostgresBetLogRepository{db: db}
}

// InsertBatch appends flagged bets to the audit log using a bulk copy
func (r *PostgresBetLogRepository) InsertBatch(ctx context.Context, bets []models.ValueBet) error {
	if len(bets) == 0 {
		return nil
	}

	columns := []string{
		"id", "player", "player_key", "opponent", "surface", "tournament",
		"price", "model_prob", "implied_prob", "edge", "found_at",
	}

	rows := make([][]interface{}, len(bets))
	for i, b := range bets {
		rows[i] = []interface{}{
			b.ID, b.Player, string(b.PlayerKey), b.Opponent, string(b.Surface), b.Tournament,
			b.Price, b.ModelProb, b.ImpliedProb, b.Edge, b.FoundAt,
		}
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"bet_log"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert bets: %w", err)
	}
	if count != int64(len(bets)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(bets))
	}

	return nil
}

// GetOpen retrieves logged bets that have no settled outcome yet
func (r *PostgresBetLogRepository) GetOpen(ctx context.Context) ([]models.ValueBet, error) {
	query := `
		SELECT id, player, player_key, opponent, surface, tournament,
		       price, model_prob, implied_prob, edge, found_at, outcome
		FROM bet_log
		WHERE outcome IS NULL
		ORDER BY found_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query open bets: %w", err)
	}
	defer rows.Close()

	var bets []models.ValueBet
	for rows.Next() {
		var b models.ValueBet
		var playerKey, surface string
		var outcome *string
		err := rows.Scan(
			&b.ID, &b.Player, &playerKey, &b.Opponent, &surface, &b.Tournament,
			&b.Price, &b.ModelProb, &b.ImpliedProb, &b.Edge, &b.FoundAt, &outcome,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		b.PlayerKey = models.PlayerKey(playerKey)
		b.Surface = models.Surface(surface)
		if outcome != nil {
			o := models.BetOutcome(*outcome)
			b.Outcome = &o
		}
		bets = append(bets, b)
	}

	return bets, rows.Err()
}

// MarkOutcome settles a logged bet
func (r *PostgresBetLogRepository) MarkOutcome(ctx context.Context, id uuid.UUID, outcome models.BetOutcome) error {
	query := `
		UPDATE bet_log
		SET outcome = $2, settled_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.GetPool().Exec(ctx, query, id, string(outcome))
	if err != nil {
		return fmt.Errorf("failed to mark bet outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
