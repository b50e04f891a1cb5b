package catalog

// Defaults returns the built-in seed categories. They cover the everyday
// household products the app is most used for and are seeded when no
// catalog files are configured.
func Defaults() []Definition {
	return []Definition{
		{Value: "wrap", Label: "Plastic wrap", DefaultUnit: "m", AllowedUnits: []string{"m", "cm", "roll"}},
		{Value: "toilet_paper", Label: "Toilet paper", DefaultUnit: "roll", AllowedUnits: []string{"roll", "m"}},
		{Value: "tissue", Label: "Tissues", DefaultUnit: "box", AllowedUnits: []string{"box", "sheet"}},
		{Value: "detergent", Label: "Detergent", DefaultUnit: "L", AllowedUnits: []string{"L", "ml", "kg", "g"}},
		{Value: "shampoo", Label: "Shampoo", DefaultUnit: "ml", AllowedUnits: []string{"ml", "L"}},
		{Value: "rice", Label: "Rice", DefaultUnit: "kg", AllowedUnits: []string{"kg", "g"}},
		{Value: "oil", Label: "Cooking oil", DefaultUnit: "L", AllowedUnits: []string{"L", "ml"}},
		{Value: "milk", Label: "Milk", DefaultUnit: "L", AllowedUnits: []string{"L", "ml"}},
		{Value: "bread", Label: "Bread", DefaultUnit: "piece", AllowedUnits: []string{"piece", "g", "bag"}},
		{Value: "eggs", Label: "Eggs", DefaultUnit: "piece", AllowedUnits: []string{"piece", "box"}},
	}
}
