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

const observationColumns = `id, user_id, store_id, category_id, name, quantity, unit, pack_count, price, unit_price, created_at, updated_at`

// observationRepository implements the ObservationRepository interface using PostgreSQL.
type observationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewObservationRepository creates a new PostgreSQL-backed observation repository.
func NewObservationRepository(pool *pgxpool.Pool, logger zerolog.Logger) ObservationRepository {
	return &observationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "observation").Logger(),
	}
}

func scanObservation(row pgx.Row) (*model.Observation, error) {
	var o model.Observation
	err := row.Scan(
		&o.ID, &o.UserID, &o.StoreID, &o.CategoryID, &o.Name,
		&o.Quantity, &o.Unit, &o.PackCount, &o.Price, &o.UnitPrice,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *observationRepository) queryMany(ctx context.Context, query string, args ...any) ([]model.Observation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query observations")
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var observations []model.Observation
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan observation row")
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		observations = append(observations, *o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating observation rows")
		return nil, fmt.Errorf("error iterating observations: %w", err)
	}

	return observations, nil
}

// GetAllForUser retrieves all of the user's observations, newest first.
func (r *observationRepository) GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Observation, error) {
	query := `
		SELECT ` + observationColumns + `
		FROM observations
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`

	return r.queryMany(ctx, query, userID)
}

// GetByCategory retrieves the user's observations in one category, newest first.
func (r *observationRepository) GetByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]model.Observation, error) {
	query := `
		SELECT ` + observationColumns + `
		FROM observations
		WHERE user_id = $1 AND category_id = $2
		ORDER BY created_at DESC, id
	`

	return r.queryMany(ctx, query, userID, categoryID)
}

// GetByID retrieves a single observation by its ID.
func (r *observationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Observation, error) {
	query := `
		SELECT ` + observationColumns + `
		FROM observations
		WHERE id = $1
	`

	o, err := scanObservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("observation_id", id.String()).Msg("observation not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("observation_id", id.String()).Msg("failed to query observation")
		return nil, fmt.Errorf("failed to query observation: %w", err)
	}

	return o, nil
}

// GetCheapestByCategory retrieves the user's observation with the lowest
// computable unit price in a category. Rows with unit_price 0 are "not
// yet computable", never free, and are excluded. Ties resolve to the
// oldest row so repeated calls return the same observation.
func (r *observationRepository) GetCheapestByCategory(ctx context.Context, userID, categoryID uuid.UUID) (*model.Observation, error) {
	query := `
		SELECT ` + observationColumns + `
		FROM observations
		WHERE user_id = $1 AND category_id = $2 AND unit_price > 0
		ORDER BY unit_price, created_at, id
		LIMIT 1
	`

	o, err := scanObservation(r.pool.QueryRow(ctx, query, userID, categoryID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("category_id", categoryID.String()).
			Msg("failed to query cheapest observation")
		return nil, fmt.Errorf("failed to query cheapest observation: %w", err)
	}

	return o, nil
}

// Create inserts a new observation.
func (r *observationRepository) Create(ctx context.Context, observation *model.Observation) error {
	query := `
		INSERT INTO observations (` + observationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		observation.ID,
		observation.UserID,
		observation.StoreID,
		observation.CategoryID,
		observation.Name,
		observation.Quantity,
		observation.Unit,
		observation.PackCount,
		observation.Price,
		observation.UnitPrice,
		observation.CreatedAt,
		observation.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("observation_id", observation.ID.String()).
			Msg("failed to create observation")
		return fmt.Errorf("failed to create observation: %w", err)
	}

	r.logger.Debug().
		Str("observation_id", observation.ID.String()).
		Msg("observation created successfully")

	return nil
}

// Update rewrites an observation's mutable fields.
func (r *observationRepository) Update(ctx context.Context, observation *model.Observation) error {
	query := `
		UPDATE observations
		SET store_id = $2, category_id = $3, name = $4, quantity = $5,
		    unit = $6, pack_count = $7, price = $8, unit_price = $9, updated_at = $10
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		observation.ID,
		observation.StoreID,
		observation.CategoryID,
		observation.Name,
		observation.Quantity,
		observation.Unit,
		observation.PackCount,
		observation.Price,
		observation.UnitPrice,
		observation.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("observation_id", observation.ID.String()).
			Msg("failed to update observation")
		return fmt.Errorf("failed to update observation: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrObservationNotFound
	}

	return nil
}

// Delete removes an observation.
func (r *observationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM observations WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("observation_id", id.String()).Msg("failed to delete observation")
		return fmt.Errorf("failed to delete observation: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrObservationNotFound
	}

	r.logger.Debug().Str("observation_id", id.String()).Msg("observation deleted successfully")

	return nil
}
