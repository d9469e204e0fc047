package prep

import "github.com/google/uuid"

// Patient carries identity only. Patient management is owned by the admin
// side of the system; the prep engine reads patients and never writes them.
type Patient struct {
	ID   uuid.UUID
	Name string
}

// DietPolicy is a named daily calorie policy shared by many patients. An
// absent maximum means the patient is unbounded; an absent minimum counts
// as zero.
type DietPolicy struct {
	ID              uuid.UUID
	Name            string
	MinimumCalories *int
	MaximumCalories *int
}

// unboundedCalories stands in for an absent maximum so budget arithmetic can
// stay in plain ints. Large enough that every recipe fits, small enough that
// midpoint arithmetic cannot overflow.
const unboundedCalories = 1 << 30

// Minimum returns the daily calorie floor, zero when unset.
func (p DietPolicy) Minimum() int {
	if p.MinimumCalories == nil {
		return 0
	}
	return *p.MinimumCalories
}

// Maximum returns the daily calorie ceiling, unbounded when unset.
func (p DietPolicy) Maximum() int {
	if p.MaximumCalories == nil {
		return unboundedCalories
	}
	return *p.MaximumCalories
}

// RemainingBudget returns the calories the patient may still consume today
// under this policy.
func (p DietPolicy) RemainingBudget(consumed int) int {
	return p.Maximum() - consumed
}
