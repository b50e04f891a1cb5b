package repository

import (
	"context"
	"fmt"

	"price-scout/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// GetAllForUser retrieves the global categories plus the user's custom
// categories, ordered by label.
func (r *categoryRepository) GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	query := `
		SELECT id, value, label, default_unit, allowed_units, user_id, created_at
		FROM categories
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY label
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		err := rows.Scan(&c.ID, &c.Value, &c.Label, &c.DefaultUnit, &c.AllowedUnits, &c.UserID, &c.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := `
		SELECT id, value, label, default_unit, allowed_units, user_id, created_at
		FROM categories
		WHERE id = $1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Value, &c.Label, &c.DefaultUnit, &c.AllowedUnits, &c.UserID, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("category_id", id.String()).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// GetByValue retrieves a global or user-owned category by its value slug.
func (r *categoryRepository) GetByValue(ctx context.Context, userID uuid.UUID, value string) (*model.Category, error) {
	query := `
		SELECT id, value, label, default_unit, allowed_units, user_id, created_at
		FROM categories
		WHERE value = $1 AND (user_id IS NULL OR user_id = $2)
		ORDER BY user_id NULLS LAST
		LIMIT 1
	`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, value, userID).Scan(
		&c.ID, &c.Value, &c.Label, &c.DefaultUnit, &c.AllowedUnits, &c.UserID, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("value", value).Msg("failed to query category by value")
		return nil, fmt.Errorf("failed to query category by value: %w", err)
	}

	return &c, nil
}

// Create inserts a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, value, label, default_unit, allowed_units, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Value,
		category.Label,
		category.DefaultUnit,
		category.AllowedUnits,
		category.UserID,
		category.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("category_id", category.ID.String()).
			Str("value", category.Value).
			Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	r.logger.Debug().
		Str("category_id", category.ID.String()).
		Str("value", category.Value).
		Msg("category created successfully")

	return nil
}

// CreateGlobalIfMissing inserts a global category unless one with the
// same value already exists.
func (r *categoryRepository) CreateGlobalIfMissing(ctx context.Context, category *model.Category) (bool, error) {
	query := `
		INSERT INTO categories (id, value, label, default_unit, allowed_units, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULL, $6)
		ON CONFLICT (value) WHERE user_id IS NULL DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Value,
		category.Label,
		category.DefaultUnit,
		category.AllowedUnits,
		category.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("value", category.Value).
			Msg("failed to seed global category")
		return false, fmt.Errorf("failed to seed global category %s: %w", category.Value, err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateAllowedUnits replaces a category's allowed unit set.
func (r *categoryRepository) UpdateAllowedUnits(ctx context.Context, id uuid.UUID, allowedUnits []string) error {
	query := `
		UPDATE categories
		SET allowed_units = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, allowedUnits)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("category_id", id.String()).
			Msg("failed to update category units")
		return fmt.Errorf("failed to update category units: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	r.logger.Debug().
		Str("category_id", id.String()).
		Strs("allowed_units", allowedUnits).
		Msg("category units updated successfully")

	return nil
}
