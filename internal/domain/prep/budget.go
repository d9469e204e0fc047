package prep

// dessertAllowance is the calorie headroom reserved for dinner dessert and
// clawed back from the lighter meals.
const dessertAllowance = 120

// AdjustedTarget derives the calorie target for one meal from the patient's
// daily policy and what they have already consumed today. Pure arithmetic
// over caller-validated inputs; the result may be zero or negative, which the
// composer treats as "fallback only".
//
// The base is one third of the midpoint of the daily range, an even
// three-meal split. Dinner gets the dessert allowance on top; breakfast and
// lunch each give up half of it. Consumption is then reconciled against the
// meals expected to have been served before the slot, so only unexpected
// over- or under-consumption shifts the target:
//
//	breakfast: light - consumed
//	lunch:     light - (consumed - light)
//	dinner:    dinner - (consumed - 2*light)
func AdjustedTarget(slot Slot, policy DietPolicy, consumed int) int {
	base := (policy.Maximum() + policy.Minimum()) / 2 / 3
	dinnerTarget := base + dessertAllowance
	lightMealTarget := base - dessertAllowance/2

	switch slot {
	case SlotDinner:
		return dinnerTarget - (consumed - 2*lightMealTarget)
	case SlotLunch:
		return lightMealTarget - (consumed - lightMealTarget)
	default:
		return lightMealTarget - consumed
	}
}
