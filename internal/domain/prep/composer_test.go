package prep

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstPicker always selects the richest candidate (pools are sorted by
// calories descending), making composition deterministic.
type firstPicker struct{}

func (firstPicker) Pick(candidates []Recipe) (Recipe, bool) {
	if len(candidates) == 0 {
		return Recipe{}, false
	}
	return candidates[0], true
}

// scriptedPicker selects by index from the script, one entry per Pick call.
// Negative or out-of-range entries decline the pick.
type scriptedPicker struct {
	script []int
	call   int
}

func (p *scriptedPicker) Pick(candidates []Recipe) (Recipe, bool) {
	idx := -1
	if p.call < len(p.script) {
		idx = p.script[p.call]
	}
	p.call++
	if idx < 0 || idx >= len(candidates) {
		return Recipe{}, false
	}
	return candidates[idx], true
}

func pool(category Category, calories ...int) []Recipe {
	recipes := make([]Recipe, len(calories))
	for i, c := range calories {
		recipes[i] = Recipe{ID: uuid.New(), Category: category, Calories: c}
	}
	// Callers pass calories already sorted descending, matching the
	// repository contract.
	return recipes
}

func mealCalories(meal []Recipe) int {
	total := 0
	for _, r := range meal {
		total += r.Calories
	}
	return total
}

func countCategory(meal []Recipe, category Category) int {
	n := 0
	for _, r := range meal {
		if r.Category == category {
			n++
		}
	}
	return n
}

func TestComposeZeroTarget(t *testing.T) {
	composer := NewComposer(firstPicker{})

	t.Run("free side offered when budget is spent", func(t *testing.T) {
		pools := Pools{Sides: pool(CategorySides, 180, 90, 0)}
		meal := composer.Compose(SlotLunch, 0, pools)
		require.Len(t, meal, 1)
		assert.Zero(t, meal[0].Calories)
	})

	t.Run("nothing without a free side", func(t *testing.T) {
		pools := Pools{Sides: pool(CategorySides, 180, 90)}
		meal := composer.Compose(SlotLunch, -40, pools)
		assert.Empty(t, meal)
	})
}

func TestComposeQuickSnack(t *testing.T) {
	composer := NewComposer(firstPicker{})
	pools := Pools{
		Entrees: pool(CategoryEntrees, 420),
		Sides:   pool(CategorySides, 180, 90, 50),
	}

	meal := composer.Compose(SlotBreakfast, 80, pools)

	require.Len(t, meal, 1)
	assert.Equal(t, 50, meal[0].Calories, "tiny budgets get the cheapest fitting side, not a full tray")
}

func TestComposeFullMeal(t *testing.T) {
	composer := NewComposer(firstPicker{})
	pools := Pools{
		Entrees:   pool(CategoryEntrees, 420),
		Sides:     pool(CategorySides, 180),
		Beverages: pool(CategoryBeverages, 200),
	}

	meal := composer.Compose(SlotBreakfast, 600, pools)

	require.NotEmpty(t, meal)
	assert.Equal(t, 600, mealCalories(meal))
	assert.Equal(t, 1, countCategory(meal, CategoryEntrees))
	assert.Equal(t, 1, countCategory(meal, CategorySides))
	assert.Zero(t, countCategory(meal, CategoryBeverages), "beverage must not break the budget")
}

func TestComposeEntreeMustStayStrictlyUnderBudget(t *testing.T) {
	composer := NewComposer(firstPicker{})
	pools := Pools{
		Entrees: pool(CategoryEntrees, 420),
		Sides:   pool(CategorySides, 420),
	}

	meal := composer.Compose(SlotLunch, 420, pools)

	require.NotEmpty(t, meal)
	assert.Zero(t, countCategory(meal, CategoryEntrees),
		"an entree matching the whole target exactly leaves no room and is skipped")
	assert.Equal(t, 420, mealCalories(meal))
}

func TestComposeDessertRules(t *testing.T) {
	pools := Pools{
		Entrees:   pool(CategoryEntrees, 420),
		Sides:     pool(CategorySides, 180),
		Desserts:  pool(CategoryDesserts, 160),
		Beverages: pool(CategoryBeverages, 40),
	}

	t.Run("dinner dessert is overwritten by the beverage", func(t *testing.T) {
		composer := NewComposer(firstPicker{})
		meal := composer.Compose(SlotDinner, 800, pools)

		require.NotEmpty(t, meal)
		assert.Zero(t, countCategory(meal, CategoryDesserts))
		assert.Equal(t, 1, countCategory(meal, CategoryBeverages))
		// The dessert's calories stay deducted even though the beverage
		// replaced it on the tray.
		assert.Equal(t, 640, mealCalories(meal))
	})

	t.Run("lunch never gets a dessert", func(t *testing.T) {
		composer := NewComposer(firstPicker{})
		meal := composer.Compose(SlotLunch, 640, pools)

		require.NotEmpty(t, meal)
		assert.Zero(t, countCategory(meal, CategoryDesserts))
		assert.Equal(t, 640, mealCalories(meal))
	})
}

func TestComposeCloseEnoughAfterEntree(t *testing.T) {
	composer := NewComposer(firstPicker{})
	pools := Pools{
		Entrees: pool(CategoryEntrees, 420),
		Sides:   pool(CategorySides, 180, 90),
	}

	meal := composer.Compose(SlotBreakfast, 520, pools)

	require.Len(t, meal, 2)
	assert.Equal(t, 510, mealCalories(meal),
		"a near-full tray finishes with the cheapest side that still fits")
}

func TestComposeFailsWhenBudgetCannotBeMet(t *testing.T) {
	composer := NewComposer(firstPicker{})
	pools := Pools{
		Entrees: pool(CategoryEntrees, 420),
		Sides:   pool(CategorySides, 180),
	}

	meal := composer.Compose(SlotLunch, 300, pools)

	assert.Empty(t, meal)
}

func TestComposeDeduplicatesFallbackSide(t *testing.T) {
	composer := NewComposer(firstPicker{})
	pools := Pools{Sides: pool(CategorySides, 0)}

	meal := composer.Compose(SlotLunch, 50, pools)

	require.Len(t, meal, 1, "the free side picked normally must not also appear as fallback")
}

func TestComposeAttemptsDoNotLeakState(t *testing.T) {
	// Attempt one declines everything; attempt two builds the meal. If state
	// leaked across attempts the second meal could not land exactly on
	// target.
	picker := &scriptedPicker{script: []int{
		0, -1, -1, -1, -1, // attempt 1: oversized entree, then decline all
		1, 0, -1, -1, -1, // attempt 2: smaller entree plus one side
	}}
	composer := NewComposer(picker)
	pools := Pools{
		Entrees:   pool(CategoryEntrees, 580, 400),
		Sides:     pool(CategorySides, 180),
		Beverages: pool(CategoryBeverages, 90),
	}

	meal := composer.Compose(SlotLunch, 580, pools)

	require.Len(t, meal, 2)
	assert.Equal(t, 580, mealCalories(meal))
}
