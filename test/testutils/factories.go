// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/trayline/v1/internal/domain/prep"
)

// PrepFactory provides methods to create prep domain test data
type PrepFactory struct {
	faker *gofakeit.Faker
}

// NewPrepFactory creates a new factory with seeded faker
func NewPrepFactory(seed int64) *PrepFactory {
	return &PrepFactory{
		faker: gofakeit.New(seed),
	}
}

// Patient creates a patient with a random name
func (f *PrepFactory) Patient() prep.Patient {
	return prep.Patient{
		ID:   uuid.New(),
		Name: f.faker.Name(),
	}
}

// Patients creates n patients
func (f *PrepFactory) Patients(n int) []prep.Patient {
	patients := make([]prep.Patient, n)
	for i := range patients {
		patients[i] = f.Patient()
	}
	return patients
}

// DietPolicy creates a bounded diet policy
func (f *PrepFactory) DietPolicy(min, max int) *prep.DietPolicy {
	return &prep.DietPolicy{
		ID:              uuid.New(),
		Name:            f.faker.RandomString([]string{"Standard", "Calorie Restricted", "High Energy", "Cardiac"}),
		MinimumCalories: &min,
		MaximumCalories: &max,
	}
}

// UnboundedDietPolicy creates a policy with no calorie ceiling
func (f *PrepFactory) UnboundedDietPolicy(min int) *prep.DietPolicy {
	return &prep.DietPolicy{
		ID:              uuid.New(),
		Name:            "High Energy",
		MinimumCalories: &min,
	}
}

// Recipe creates a recipe in the given category
func (f *PrepFactory) Recipe(category prep.Category, calories int) prep.Recipe {
	return prep.Recipe{
		ID:       uuid.New(),
		Name:     f.faker.Dinner(),
		Category: category,
		Calories: calories,
	}
}

// Pools creates category pools from calorie lists, sorted descending the way
// the recipe repository returns them.
func (f *PrepFactory) Pools(entrees, sides, desserts, beverages []int) prep.Pools {
	build := func(category prep.Category, calories []int) []prep.Recipe {
		recipes := make([]prep.Recipe, len(calories))
		for i, c := range calories {
			recipes[i] = f.Recipe(category, c)
		}
		sortByCaloriesDesc(recipes)
		return recipes
	}
	return prep.Pools{
		Entrees:   build(prep.CategoryEntrees, entrees),
		Sides:     build(prep.CategorySides, sides),
		Desserts:  build(prep.CategoryDesserts, desserts),
		Beverages: build(prep.CategoryBeverages, beverages),
	}
}

// TrayOrder creates a tray order for the patient with the given recipes
func (f *PrepFactory) TrayOrder(patientID uuid.UUID, slot prep.Slot, scheduledFor time.Time, recipes ...prep.Recipe) *prep.TrayOrder {
	return &prep.TrayOrder{
		ID:           uuid.New(),
		PatientID:    patientID,
		Slot:         slot,
		ScheduledFor: scheduledFor,
		Recipes:      recipes,
	}
}

func sortByCaloriesDesc(recipes []prep.Recipe) {
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].Calories > recipes[j].Calories
	})
}
