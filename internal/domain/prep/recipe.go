package prep

import "github.com/google/uuid"

// Category classifies recipes into the four tray positions.
type Category string

const (
	CategoryEntrees   Category = "Entrees"
	CategorySides     Category = "Sides"
	CategoryDesserts  Category = "Desserts"
	CategoryBeverages Category = "Beverages"
)

// Categories lists every recipe category.
var Categories = []Category{CategoryEntrees, CategorySides, CategoryDesserts, CategoryBeverages}

// Recipe is an immutable snapshot of a kitchen recipe for the duration of a
// composition pass. Calories are never negative.
type Recipe struct {
	ID       uuid.UUID
	Name     string
	Category Category
	Calories int
}

// Pools partitions the recipes available to a patient by category. The
// repository delivers each pool pre-filtered to the patient's remaining
// calorie budget and sorted by calories descending; the composer relies on
// that ordering when it reaches for the cheapest item.
type Pools struct {
	Entrees   []Recipe
	Sides     []Recipe
	Desserts  []Recipe
	Beverages []Recipe
}
