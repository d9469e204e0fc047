package prep

import "math/rand"

// Picker selects one candidate recipe from a pool. The composer's randomized
// attempts go through this interface so tests can substitute deterministic
// selection.
type Picker interface {
	// Pick returns one recipe from candidates, or false when the pool is
	// empty.
	Pick(candidates []Recipe) (Recipe, bool)
}

// randomPicker selects uniformly at random.
type randomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker creates a Picker with uniform selection seeded from seed.
func NewRandomPicker(seed int64) Picker {
	return &randomPicker{rng: rand.New(rand.NewSource(seed))}
}

// Pick implements Picker.
func (p *randomPicker) Pick(candidates []Recipe) (Recipe, bool) {
	if len(candidates) == 0 {
		return Recipe{}, false
	}
	return candidates[p.rng.Intn(len(candidates))], true
}
