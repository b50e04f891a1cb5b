package model

import (
	"time"

	"github.com/google/uuid"
)

// ComparisonResult is the outcome of comparing the current observation
// against the cheapest eligible historical observation in its category.
// SavingsAmount is signed: positive means the current item is cheaper
// per unit. Results are ephemeral and recomputed on every request.
type ComparisonResult struct {
	Cheapest         Observation `json:"cheapest"`
	CurrentUnitPrice float64     `json:"currentUnitPrice"`
	SavingsAmount    float64     `json:"savingsAmount"`
	SavingsPercent   float64     `json:"savingsPercent"`
	IsCurrentCheaper bool        `json:"isCurrentCheaper"`
}

// Comparison is a persisted record of one comparison the user chose to
// save. CheapestID is nulled if the referenced observation is later
// deleted; the snapshot columns keep the record meaningful.
type Comparison struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UserID           uuid.UUID  `json:"-" db:"user_id"`
	CategoryID       uuid.UUID  `json:"categoryId" db:"category_id"`
	CurrentName      *string    `json:"currentName,omitempty" db:"current_name"`
	CurrentQuantity  float64    `json:"currentQuantity" db:"current_quantity"`
	CurrentPackCount int        `json:"currentPackCount" db:"current_pack_count"`
	CurrentPrice     float64    `json:"currentPrice" db:"current_price"`
	CurrentUnitPrice float64    `json:"currentUnitPrice" db:"current_unit_price"`
	CheapestID       *uuid.UUID `json:"cheapestId,omitempty" db:"cheapest_id"`
	IsCurrentCheaper bool       `json:"isCurrentCheaper" db:"is_current_cheaper"`
	SavingsAmount    float64    `json:"savingsAmount" db:"savings_amount"`
	SavingsPercent   float64    `json:"savingsPercent" db:"savings_percent"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}

// ComparisonStats aggregates a user's saved comparison history.
type ComparisonStats struct {
	TotalComparisons      int      `json:"totalComparisons"`
	GoodDealsFound        int      `json:"goodDealsFound"`
	AvgSavingsPercent     *float64 `json:"avgSavingsPercent"`
	TotalPotentialSavings float64  `json:"totalPotentialSavings"`
}
