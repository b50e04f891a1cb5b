package model

import (
	"time"

	"github.com/google/uuid"
)

// Observation is a recorded price data point: the total price paid for
// PackCount packs of Quantity units each, at one store, in one category.
// UnitPrice is derived at write time (price per single unit of measure,
// rounded to 2 decimal places); a UnitPrice of 0 means "not computable",
// never "free", and such rows are excluded from comparisons.
type Observation struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"-" db:"user_id"`
	StoreID    uuid.UUID `json:"storeId" db:"store_id"`
	CategoryID uuid.UUID `json:"categoryId" db:"category_id"`
	Name       *string   `json:"name,omitempty" db:"name"`
	Quantity   float64   `json:"quantity" db:"quantity"`
	Unit       string    `json:"unit" db:"unit"`
	PackCount  int       `json:"packCount" db:"pack_count"`
	Price      float64   `json:"price" db:"price"`
	UnitPrice  float64   `json:"unitPrice" db:"unit_price"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// ObservationRequest represents the request payload for creating or
// updating an observation.
type ObservationRequest struct {
	StoreID    uuid.UUID `json:"storeId"`
	CategoryID uuid.UUID `json:"categoryId"`
	Name       *string   `json:"name,omitempty"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	PackCount  int       `json:"packCount"`
	Price      float64   `json:"price"`
}

// CompareRequest carries the in-progress "current" observation the user
// is evaluating. It is never stored as an observation; with Save set the
// comparison outcome is recorded in the history.
type CompareRequest struct {
	CategoryID uuid.UUID `json:"categoryId"`
	Name       *string   `json:"name,omitempty"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	PackCount  int       `json:"packCount"`
	Price      float64   `json:"price"`
	Save       bool      `json:"save,omitempty"`
}
