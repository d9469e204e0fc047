package gorm

import (
	"context"

	"github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// FindAvailable returns recipes in the category with calories at or under
// remainingBudget, sorted by calories descending — the ordering the composer
// depends on when it reaches for the cheapest item.
func (r *RecipeRepository) FindAvailable(ctx context.Context, remainingBudget int, category prep.Category) ([]prep.Recipe, error) {
	if remainingBudget < 0 {
		remainingBudget = 0
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Where("calories <= ? AND category = ?", remainingBudget, string(category)).
		Order("calories DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]prep.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes, nil
}
