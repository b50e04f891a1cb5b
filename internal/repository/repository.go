package repository

import (
	"context"

	"price-scout/internal/model"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// GetAllForUser retrieves the global categories plus the user's
	// custom categories, ordered by label.
	GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error)

	// GetByID retrieves a single category by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// GetByValue retrieves a global or user-owned category by its value slug.
	GetByValue(ctx context.Context, userID uuid.UUID, value string) (*model.Category, error)

	// Create inserts a new category.
	Create(ctx context.Context, category *model.Category) error

	// CreateGlobalIfMissing inserts a global category unless one with
	// the same value already exists. Returns true when a row was inserted.
	CreateGlobalIfMissing(ctx context.Context, category *model.Category) (bool, error)

	// UpdateAllowedUnits replaces a category's allowed unit set. Unit-set
	// extension is the only permitted category mutation.
	UpdateAllowedUnits(ctx context.Context, id uuid.UUID, allowedUnits []string) error
}

// StoreRepository defines the interface for store data access operations.
type StoreRepository interface {
	// GetAllForUser retrieves the user's stores ordered by name.
	GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Store, error)

	// GetByID retrieves a single store by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Store, error)

	// Create inserts a new store.
	Create(ctx context.Context, store *model.Store) error

	// Update updates a store's name, location and notes.
	Update(ctx context.Context, store *model.Store) error

	// Delete removes a store. Its observations cascade at the database level.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ObservationRepository defines the interface for observation data access operations.
type ObservationRepository interface {
	// GetAllForUser retrieves all of the user's observations, newest first.
	GetAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Observation, error)

	// GetByCategory retrieves the user's observations in one category, newest first.
	GetByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]model.Observation, error)

	// GetByID retrieves a single observation by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Observation, error)

	// GetCheapestByCategory retrieves the user's observation with the
	// lowest computable unit price in a category, or nil when none exists.
	GetCheapestByCategory(ctx context.Context, userID, categoryID uuid.UUID) (*model.Observation, error)

	// Create inserts a new observation.
	Create(ctx context.Context, observation *model.Observation) error

	// Update rewrites an observation's mutable fields.
	Update(ctx context.Context, observation *model.Observation) error

	// Delete removes an observation.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ComparisonRepository defines the interface for comparison history data access.
type ComparisonRepository interface {
	// Create inserts a saved comparison record.
	Create(ctx context.Context, comparison *model.Comparison) error

	// GetAllForUser retrieves the user's saved comparisons, newest
	// first, with pagination support.
	GetAllForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Comparison, error)

	// GetStats aggregates the user's saved comparison history.
	GetStats(ctx context.Context, userID uuid.UUID) (*model.ComparisonStats, error)
}
