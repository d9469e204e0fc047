// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trayline/v1/internal/domain/prep"
)

// AssertRunAccounting checks the execution result identity: every processed
// patient ended up created, skipped, or errored, never more than one of them.
func AssertRunAccounting(t *testing.T, result *prep.ExecutionResult, skipped int) {
	t.Helper()

	require.NotNil(t, result, "Execution result should not be nil")
	assert.Equal(t, result.PatientsProcessed, result.OrdersCreated+skipped+len(result.Errors),
		"orders + skips + errors should account for every processed patient")
}

// AssertMealWithinBudget checks that the composed meal does not exceed the
// calorie target and holds at most one dessert or beverage.
func AssertMealWithinBudget(t *testing.T, meal []prep.Recipe, target int) {
	t.Helper()

	total := 0
	extras := 0
	for _, r := range meal {
		total += r.Calories
		if r.Category == prep.CategoryDesserts || r.Category == prep.CategoryBeverages {
			extras++
		}
	}
	assert.LessOrEqual(t, total, target, "meal calories should not exceed the target")
	assert.LessOrEqual(t, extras, 1, "meal should carry at most one dessert or beverage")
}

// AssertNoDuplicateRecipes checks that no recipe appears on the tray twice.
func AssertNoDuplicateRecipes(t *testing.T, meal []prep.Recipe) {
	t.Helper()

	seen := make(map[string]bool, len(meal))
	for _, r := range meal {
		assert.False(t, seen[r.ID.String()], "recipe %s appears more than once", r.Name)
		seen[r.ID.String()] = true
	}
}
