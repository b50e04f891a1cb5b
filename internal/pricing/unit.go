package pricing

import (
	"price-scout/internal/model"
)

// Dimension is the measurement dimension a unit belongs to. Category
// allowed-unit sets are validated against this closed enumeration so a
// stale unit can never survive a category switch unchecked.
type Dimension string

const (
	DimensionLength Dimension = "length"
	DimensionWeight Dimension = "weight"
	DimensionVolume Dimension = "volume"
	DimensionCount  Dimension = "count"
)

// unitDimensions maps every recognised unit code to its dimension.
var unitDimensions = map[string]Dimension{
	"m":  DimensionLength,
	"cm": DimensionLength,
	"mm": DimensionLength,

	"kg": DimensionWeight,
	"g":  DimensionWeight,

	"L":  DimensionVolume,
	"ml": DimensionVolume,

	"piece": DimensionCount,
	"sheet": DimensionCount,
	"roll":  DimensionCount,
	"box":   DimensionCount,
	"bag":   DimensionCount,
}

// KnownUnit reports whether unit is part of the recognised unit enumeration.
func KnownUnit(unit string) bool {
	_, ok := unitDimensions[unit]
	return ok
}

// UnitDimension returns the dimension of a unit, and whether the unit is
// recognised at all.
func UnitDimension(unit string) (Dimension, bool) {
	d, ok := unitDimensions[unit]
	return d, ok
}

// ResolveUnit decides which unit the current observation should carry
// after a category change: the previously selected unit survives only if
// the new category still allows it, otherwise the category default wins.
// Without this guard a unit like "kg" could silently survive a switch to
// a volume-only category and corrupt the unit price.
func ResolveUnit(category *model.Category, current string) string {
	if current != "" && category.AllowsUnit(current) {
		return current
	}
	return category.DefaultUnit
}
