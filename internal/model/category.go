package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups observations of the same kind of product and fixes
// which measurement units are valid for them. Global categories have a
// nil UserID and are visible to everyone; custom categories belong to
// the user who created them.
type Category struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Value        string     `json:"value" db:"value"`
	Label        string     `json:"label" db:"label"`
	DefaultUnit  string     `json:"defaultUnit" db:"default_unit"`
	AllowedUnits []string   `json:"allowedUnits" db:"allowed_units"`
	UserID       *uuid.UUID `json:"userId,omitempty" db:"user_id"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// IsGlobal reports whether the category is shared across all users.
func (c *Category) IsGlobal() bool {
	return c.UserID == nil
}

// AllowsUnit reports whether the given unit is in the category's
// allowed unit set.
func (c *Category) AllowsUnit(unit string) bool {
	for _, u := range c.AllowedUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// CategoryRequest represents the request payload for creating a custom category.
type CategoryRequest struct {
	Value        string   `json:"value"`
	Label        string   `json:"label"`
	DefaultUnit  string   `json:"defaultUnit"`
	AllowedUnits []string `json:"allowedUnits"`
}

// UnitExtensionRequest represents the request payload for extending a
// category's allowed unit set. Extension is the only permitted mutation
// of an existing category.
type UnitExtensionRequest struct {
	Units []string `json:"units"`
}
