package prep

import "github.com/google/uuid"

const (
	// quickSnackThreshold is the calorie target below which a full tray is
	// not worth assembling; a single cheap side does the job.
	quickSnackThreshold = 100

	// maxComposeAttempts bounds the randomized search for a meal that lands
	// the budget.
	maxComposeAttempts = 5

	// maxExtraSides is how many additional sides one attempt may tack on
	// after the main selections.
	maxExtraSides = 2
)

// Composer assembles a concrete meal (entree, sides, at most one dessert or
// beverage) that does not exceed a calorie target, using bounded randomized
// retries. Selection goes through the injected Picker.
type Composer struct {
	picker Picker
}

// NewComposer creates a meal composer using the given selection strategy.
func NewComposer(picker Picker) *Composer {
	return &Composer{picker: picker}
}

// composition is the state of one composition attempt. Each attempt starts
// from a fresh value and the helpers below return updated copies, so nothing
// leaks between attempts.
type composition struct {
	entree    *Recipe
	extra     *Recipe // dessert or beverage; a later pick replaces an earlier one
	sides     []Recipe
	remaining int
}

func (c composition) withEntree(r Recipe) composition {
	c.entree = &r
	c.remaining -= r.Calories
	return c
}

func (c composition) withExtra(r Recipe) composition {
	c.extra = &r
	c.remaining -= r.Calories
	return c
}

func (c composition) withSide(r Recipe) composition {
	sides := make([]Recipe, len(c.sides), len(c.sides)+1)
	copy(sides, c.sides)
	c.sides = append(sides, r)
	c.remaining -= r.Calories
	return c
}

// meal flattens the selections into an ordered recipe list, dropping
// duplicates and absent slots.
func (c composition) meal(fallback *Recipe) []Recipe {
	items := make([]Recipe, 0, len(c.sides)+3)
	seen := make(map[uuid.UUID]bool)
	add := func(r *Recipe) {
		if r == nil || seen[r.ID] {
			return
		}
		seen[r.ID] = true
		items = append(items, *r)
	}
	add(c.entree)
	add(c.extra)
	for i := range c.sides {
		add(&c.sides[i])
	}
	add(fallback)
	return items
}

// Compose selects a meal for the slot that fits within target calories.
// Pools must arrive pre-filtered to the patient's remaining budget and
// sorted by calories descending. An empty result means no meal could be
// assembled; the caller must treat that as "no meal available", not retry.
func (c *Composer) Compose(slot Slot, target int, pools Pools) []Recipe {
	fallback := zeroCalorieFallback(pools.Sides)

	// Nothing left to spend: offer the free side if one exists.
	if target <= 0 {
		return composition{}.meal(fallback)
	}

	// Tiny budgets get a single cheap side instead of a full tray.
	if target <= quickSnackThreshold {
		state := composition{remaining: target}
		if side := cheapestWithin(pools.Sides, target); side != nil {
			state = state.withSide(*side)
		}
		return state.meal(fallback)
	}

	for attempt := 0; attempt < maxComposeAttempts; attempt++ {
		state := composition{remaining: target}

		if entree, ok := c.picker.Pick(pools.Entrees); ok && entree.Calories < state.remaining {
			state = state.withEntree(entree)
		}

		// Close enough after the entree: finish with a cheap side rather
		// than hunting for an exact fit.
		if state.remaining <= quickSnackThreshold {
			if side := cheapestWithin(pools.Sides, state.remaining); side != nil {
				state = state.withSide(*side)
			}
			return state.meal(fallback)
		}

		if side, ok := c.picker.Pick(pools.Sides); ok && state.remaining >= side.Calories {
			state = state.withSide(side)
		}

		// At most one of dessert or beverage ends up on the tray; the
		// beverage pick replaces the dessert when both fit.
		if slot == SlotDinner {
			if dessert, ok := c.picker.Pick(pools.Desserts); ok && state.remaining >= dessert.Calories {
				state = state.withExtra(dessert)
			}
		}
		if beverage, ok := c.picker.Pick(pools.Beverages); ok && state.remaining >= beverage.Calories {
			state = state.withExtra(beverage)
		}

		for i := 0; i < maxExtraSides; i++ {
			if side, ok := c.picker.Pick(pools.Sides); ok && state.remaining >= side.Calories {
				state = state.withSide(side)
			}
		}

		if state.remaining <= 0 {
			return state.meal(fallback)
		}
	}

	return nil
}

// zeroCalorieFallback returns the first free side, if any. It is offered on
// every tray so a patient with no calorie headroom still gets something.
func zeroCalorieFallback(sides []Recipe) *Recipe {
	for i := range sides {
		if sides[i].Calories == 0 {
			return &sides[i]
		}
	}
	return nil
}

// cheapestWithin returns the lowest-calorie side at or under limit. Sides
// are sorted descending, so the scan runs from the tail.
func cheapestWithin(sides []Recipe, limit int) *Recipe {
	for i := len(sides) - 1; i >= 0; i-- {
		if sides[i].Calories <= limit {
			return &sides[i]
		}
	}
	return nil
}
