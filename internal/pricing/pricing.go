// Package pricing is the single home of the unit-price arithmetic that
// the rest of the application delegates to: normalizing a
// (quantity, packCount, price) triple into a price per unit of measure,
// and comparing a current observation against the cheapest historical
// observation in its category. Both operations are pure, total and
// side-effect free; invalid numeric input degrades to a well-defined
// sentinel instead of an error.
package pricing

import (
	"fmt"
	"math"

	"price-scout/internal/model"

	"github.com/shopspring/decimal"
)

// UnitPrice converts a price covering packCount packs of quantity units
// each into the price of a single unit, rounded half-up to 2 decimal
// places.
//
// A non-positive (or non-finite) quantity or price yields 0, which every
// caller must read as "unit price not yet computable", never as "free":
// such values are not valid comparison candidates. A packCount below 1
// is a data-entry error and degrades to single-pack pricing rather than
// poisoning the result.
func UnitPrice(quantity float64, packCount int, price float64) float64 {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return 0
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	if quantity <= 0 || price <= 0 {
		return 0
	}
	if packCount < 1 {
		packCount = 1
	}

	total := decimal.NewFromFloat(quantity).Mul(decimal.NewFromInt(int64(packCount)))
	unit, _ := decimal.NewFromFloat(price).Div(total).Round(2).Float64()
	return unit
}

// TiePolicy decides how a comparison reports a current item whose unit
// price exactly matches the cheapest historical one.
type TiePolicy int

const (
	// TiesFavorCurrent reports an exact tie as "current is cheaper"
	// (the current item is not worse than the best known price).
	TiesFavorCurrent TiePolicy = iota
	// TiesFavorHistorical requires the current item to be strictly
	// cheaper before it is reported as the better deal.
	TiesFavorHistorical
)

// ParseTiePolicy parses a tie policy from its configuration string.
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch s {
	case "current", "":
		return TiesFavorCurrent, nil
	case "historical":
		return TiesFavorHistorical, nil
	default:
		return TiesFavorCurrent, fmt.Errorf("invalid tie policy: %q (must be current or historical)", s)
	}
}

// Comparator finds the cheapest historical observation for a category
// and expresses the current observation's advantage or disadvantage
// against it. It never mutates its inputs.
type Comparator struct {
	policy TiePolicy
}

// NewComparator creates a comparator with the given tie policy.
func NewComparator(policy TiePolicy) *Comparator {
	return &Comparator{policy: policy}
}

// Compare returns the comparison of current against the cheapest
// eligible observation in historical, or nil when there is nothing
// meaningful to compare: the current observation has no computable unit
// price, or no historical observation shares its category with a unit
// price above zero.
//
// Eligible rows are scanned in input order and a strictly lower unit
// price is required to displace the running minimum, so equal-priced
// rows tie-break to the first one encountered and repeated calls on
// identical input pick the identical row.
func (c *Comparator) Compare(current model.Observation, historical []model.Observation) *model.ComparisonResult {
	if current.UnitPrice <= 0 {
		return nil
	}

	var cheapest *model.Observation
	for i := range historical {
		h := &historical[i]
		if h.CategoryID != current.CategoryID || h.UnitPrice <= 0 {
			continue
		}
		if cheapest == nil || h.UnitPrice < cheapest.UnitPrice {
			cheapest = h
		}
	}
	if cheapest == nil {
		return nil
	}

	// The eligibility filter guarantees cheapest.UnitPrice > 0, so the
	// percentage division cannot divide by zero.
	cheapestPrice := decimal.NewFromFloat(cheapest.UnitPrice)
	savings := cheapestPrice.Sub(decimal.NewFromFloat(current.UnitPrice))

	amount, _ := savings.Round(2).Float64()
	percent, _ := savings.Abs().Div(cheapestPrice).Mul(decimal.NewFromInt(100)).Round(2).Float64()

	cheaper := savings.Sign() > 0
	if c.policy == TiesFavorCurrent {
		cheaper = savings.Sign() >= 0
	}

	return &model.ComparisonResult{
		Cheapest:         *cheapest,
		CurrentUnitPrice: current.UnitPrice,
		SavingsAmount:    amount,
		SavingsPercent:   percent,
		IsCurrentCheaper: cheaper,
	}
}
