package prep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boundedPolicy(min, max int) DietPolicy {
	return DietPolicy{MinimumCalories: &min, MaximumCalories: &max}
}

func TestDietPolicyBounds(t *testing.T) {
	policy := boundedPolicy(1500, 2500)
	assert.Equal(t, 1500, policy.Minimum())
	assert.Equal(t, 2500, policy.Maximum())
	assert.Equal(t, 1700, policy.RemainingBudget(800))

	open := DietPolicy{}
	assert.Zero(t, open.Minimum())
	assert.Equal(t, unboundedCalories, open.Maximum())
	assert.Greater(t, open.RemainingBudget(5000), 0)
}

func TestAdjustedTarget(t *testing.T) {
	// Standard policy: midpoint 2000, base 666, dinner 786, light meals 606.
	standard := boundedPolicy(1500, 2500)

	tests := []struct {
		name     string
		slot     Slot
		consumed int
		expected int
	}{
		{"breakfast with nothing consumed", SlotBreakfast, 0, 606},
		{"breakfast after early snacking", SlotBreakfast, 200, 406},
		{"lunch with nothing consumed rolls breakfast over", SlotLunch, 0, 1212},
		{"lunch after a full breakfast", SlotLunch, 606, 606},
		{"lunch after overeating", SlotLunch, 800, 412},
		{"dinner on plan", SlotDinner, 1212, 786},
		{"dinner with nothing consumed all day", SlotDinner, 0, 1998},
		{"dinner after overeating goes negative", SlotDinner, 2100, -102},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AdjustedTarget(tt.slot, standard, tt.consumed))
		})
	}
}

func TestAdjustedTargetUnboundedPolicy(t *testing.T) {
	min := 2400
	highEnergy := DietPolicy{MinimumCalories: &min}

	// The sentinel maximum keeps the arithmetic in int range and yields a
	// target large enough that every recipe fits.
	target := AdjustedTarget(SlotBreakfast, highEnergy, 0)
	assert.Greater(t, target, 1_000_000)
}

func TestAdjustedTargetDinnerGetsDessertAllowance(t *testing.T) {
	standard := boundedPolicy(1500, 2500)

	light := AdjustedTarget(SlotBreakfast, standard, 0)
	dinner := AdjustedTarget(SlotDinner, standard, 2*light)

	assert.Equal(t, dessertAllowance+dessertAllowance/2, dinner-light)
}
