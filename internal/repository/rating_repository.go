package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/court-edge/internal/database"
	"github.com/yourusername/court-edge/internal/models"
	"github.com/yourusername/court-edge/internal/rating"
)

// PostgresRatingRepository implements RatingRepository for PostgreSQL
type PostgresRatingRepository struct {
	db *database.DB
}

// NewPostgresRatingRepository creates a new rating repository
func NewPostgresRatingRepository(db *database.DB) RatingRepository {
	return &PostgresRatingRepository{db: db}
}

// LoadAll retrieves every persisted (player, surface, rating) row
func (r *PostgresRatingRepository) LoadAll(ctx context.Context) ([]rating.Entry, error) {
	query := `
		SELECT player, surface, rating
		FROM ratings
		ORDER BY player, surface
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var entries []rating.Entry
	for rows.Next() {
		var player, surface string
		var value float64
		if err := rows.Scan(&player, &surface, &value); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		entries = append(entries, rating.Entry{
			Player:  models.PlayerKey(player),
			Surface: models.Surface(surface),
			Rating:  value,
		})
	}

	return entries, rows.Err()
}

// SaveAll upserts the full rating table in one transaction so a failed batch
// never leaves half the table on yesterday's ratings. Ratings are never
// deleted; the table only grows as new (player, surface) pairs appear.
func (r *PostgresRatingRepository) SaveAll(ctx context.Context, entries []rating.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO ratings (player, surface, rating, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (player, surface)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query, string(e.Player), string(e.Surface), e.Rating)
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range entries {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to upsert rating: %w", err)
			}
		}

		return results.Close()
	})
}
