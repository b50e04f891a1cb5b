package repository

import (
	"context"
	"fmt"

	"price-scout/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// comparisonRepository implements the ComparisonRepository interface using PostgreSQL.
type comparisonRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewComparisonRepository creates a new PostgreSQL-backed comparison repository.
func NewComparisonRepository(pool *pgxpool.Pool, logger zerolog.Logger) ComparisonRepository {
	return &comparisonRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "comparison").Logger(),
	}
}

// Create inserts a saved comparison record.
func (r *comparisonRepository) Create(ctx context.Context, comparison *model.Comparison) error {
	query := `
		INSERT INTO comparisons (
			id, user_id, category_id, current_name, current_quantity,
			current_pack_count, current_price, current_unit_price,
			cheapest_id, is_current_cheaper, savings_amount, savings_percent, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		comparison.ID,
		comparison.UserID,
		comparison.CategoryID,
		comparison.CurrentName,
		comparison.CurrentQuantity,
		comparison.CurrentPackCount,
		comparison.CurrentPrice,
		comparison.CurrentUnitPrice,
		comparison.CheapestID,
		comparison.IsCurrentCheaper,
		comparison.SavingsAmount,
		comparison.SavingsPercent,
		comparison.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("comparison_id", comparison.ID.String()).
			Msg("failed to create comparison record")
		return fmt.Errorf("failed to create comparison record: %w", err)
	}

	r.logger.Debug().
		Str("comparison_id", comparison.ID.String()).
		Msg("comparison record created successfully")

	return nil
}

// GetAllForUser retrieves the user's saved comparisons, newest first.
func (r *comparisonRepository) GetAllForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Comparison, error) {
	query := `
		SELECT id, user_id, category_id, current_name, current_quantity,
		       current_pack_count, current_price, current_unit_price,
		       cheapest_id, is_current_cheaper, savings_amount, savings_percent, created_at
		FROM comparisons
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Msg("failed to query comparisons")
		return nil, fmt.Errorf("failed to query comparisons: %w", err)
	}
	defer rows.Close()

	var comparisons []model.Comparison
	for rows.Next() {
		var c model.Comparison
		err := rows.Scan(
			&c.ID, &c.UserID, &c.CategoryID, &c.CurrentName, &c.CurrentQuantity,
			&c.CurrentPackCount, &c.CurrentPrice, &c.CurrentUnitPrice,
			&c.CheapestID, &c.IsCurrentCheaper, &c.SavingsAmount, &c.SavingsPercent, &c.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan comparison row")
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		comparisons = append(comparisons, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating comparison rows")
		return nil, fmt.Errorf("error iterating comparisons: %w", err)
	}

	return comparisons, nil
}

// GetStats aggregates the user's saved comparison history. Good deals
// are comparisons where the current item came out cheaper; potential
// savings sums the per-unit savings of those.
func (r *comparisonRepository) GetStats(ctx context.Context, userID uuid.UUID) (*model.ComparisonStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_current_cheaper),
		       AVG(savings_percent) FILTER (WHERE is_current_cheaper),
		       COALESCE(SUM(savings_amount) FILTER (WHERE is_current_cheaper), 0)
		FROM comparisons
		WHERE user_id = $1
	`

	var stats model.ComparisonStats
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&stats.TotalComparisons,
		&stats.GoodDealsFound,
		&stats.AvgSavingsPercent,
		&stats.TotalPotentialSavings,
	)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Msg("failed to query comparison stats")
		return nil, fmt.Errorf("failed to query comparison stats: %w", err)
	}

	return &stats, nil
}
