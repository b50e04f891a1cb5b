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

// storeRepository implements the StoreRepository interface using PostgreSQL.
type storeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewStoreRepository creates a new PostgreSQL-backed store repository.
func NewStoreRepository(pool *pgxpool.Pool, logger zerolog.Logger) StoreRepository {
	return &storeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "store").Logger(),
	}
}

// GetAllForUser retrieves the user's stores ordered by name.
func (r *storeRepository) GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Store, error) {
	query := `
		SELECT id, user_id, name, location, notes, created_at, updated_at
		FROM stores
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Msg("failed to query stores")
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []model.Store
	for rows.Next() {
		var s model.Store
		err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Location, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan store row")
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating store rows")
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}

	return stores, nil
}

// GetByID retrieves a single store by its ID.
func (r *storeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	query := `
		SELECT id, user_id, name, location, notes, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var s model.Store
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Name, &s.Location, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("store_id", id.String()).Msg("store not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("store_id", id.String()).Msg("failed to query store")
		return nil, fmt.Errorf("failed to query store: %w", err)
	}

	return &s, nil
}

// Create inserts a new store.
func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	query := `
		INSERT INTO stores (id, user_id, name, location, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		store.ID,
		store.UserID,
		store.Name,
		store.Location,
		store.Notes,
		store.CreatedAt,
		store.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("store_id", store.ID.String()).
			Msg("failed to create store")
		return fmt.Errorf("failed to create store: %w", err)
	}

	r.logger.Debug().
		Str("store_id", store.ID.String()).
		Msg("store created successfully")

	return nil
}

// Update updates a store's name, location and notes.
func (r *storeRepository) Update(ctx context.Context, store *model.Store) error {
	query := `
		UPDATE stores
		SET name = $2, location = $3, notes = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		store.ID,
		store.Name,
		store.Location,
		store.Notes,
		store.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("store_id", store.ID.String()).
			Msg("failed to update store")
		return fmt.Errorf("failed to update store: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrStoreNotFound
	}

	return nil
}

// Delete removes a store. Observations referencing it cascade at the
// database level.
func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM stores WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("store_id", id.String()).Msg("failed to delete store")
		return fmt.Errorf("failed to delete store: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrStoreNotFound
	}

	r.logger.Debug().Str("store_id", id.String()).Msg("store deleted successfully")

	return nil
}
