package model

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a shop the user regularly buys from. Observations
// reference exactly one store; deleting the store cascades them.
type Store struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Location  *string   `json:"location,omitempty" db:"location"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// StoreRequest represents the request payload for creating or updating a store.
type StoreRequest struct {
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}
