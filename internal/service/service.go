package service

import (
	"context"

	"price-scout/internal/model"

	"github.com/google/uuid"
)

// CategoryService defines operations for category management.
type CategoryService interface {
	// GetAll retrieves the global categories plus the user's custom categories.
	GetAll(ctx context.Context, userID uuid.UUID) ([]model.Category, error)

	// Create creates a custom category owned by the user.
	Create(ctx context.Context, userID uuid.UUID, req *model.CategoryRequest) (*model.Category, error)

	// ExtendUnits adds units to a custom category's allowed unit set and
	// returns the updated category. Extension is the only permitted
	// category mutation.
	ExtendUnits(ctx context.Context, userID, categoryID uuid.UUID, req *model.UnitExtensionRequest) (*model.Category, error)
}

// StoreService defines operations for store management.
type StoreService interface {
	// GetAll retrieves the user's stores.
	GetAll(ctx context.Context, userID uuid.UUID) ([]model.Store, error)

	// Create creates a store owned by the user.
	Create(ctx context.Context, userID uuid.UUID, req *model.StoreRequest) (*model.Store, error)

	// Update updates one of the user's stores.
	Update(ctx context.Context, userID, storeID uuid.UUID, req *model.StoreRequest) (*model.Store, error)

	// Delete removes one of the user's stores and, via the database,
	// its observations.
	Delete(ctx context.Context, userID, storeID uuid.UUID) error
}

// ObservationService defines operations for price observation management.
type ObservationService interface {
	// GetAll retrieves the user's observations, optionally filtered to
	// one category.
	GetAll(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]model.Observation, error)

	// GetCheapest retrieves the user's cheapest eligible observation in a
	// category, or nil when the category has no computable prices yet.
	GetCheapest(ctx context.Context, userID, categoryID uuid.UUID) (*model.Observation, error)

	// Create records a new observation with its derived unit price.
	Create(ctx context.Context, userID uuid.UUID, req *model.ObservationRequest) (*model.Observation, error)

	// Update rewrites one of the user's observations and recomputes its
	// unit price.
	Update(ctx context.Context, userID, observationID uuid.UUID, req *model.ObservationRequest) (*model.Observation, error)

	// Delete removes one of the user's observations.
	Delete(ctx context.Context, userID, observationID uuid.UUID) error
}

// ComparisonService defines operations for price comparisons.
type ComparisonService interface {
	// Compare evaluates the current observation against the user's
	// recorded observations in the same category. A nil result means
	// there is nothing meaningful to compare.
	Compare(ctx context.Context, userID uuid.UUID, req *model.CompareRequest) (*model.ComparisonResult, error)

	// History retrieves the user's saved comparisons, newest first.
	History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Comparison, error)

	// Stats aggregates the user's saved comparison history.
	Stats(ctx context.Context, userID uuid.UUID) (*model.ComparisonStats, error)
}
