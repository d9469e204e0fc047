// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	gormModels "github.com/trayline/v1/internal/infrastructure/persistence/gorm"
	"github.com/trayline/v1/internal/infrastructure/persistence/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDatabase creates an in-memory SQLite database with the prep schema
// migrated. Each call gets its own isolated database.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase(":memory:", logger.Silent)
	require.NoError(t, err, "Failed to set up test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// InsertPatient persists a patient row and returns its ID
func InsertPatient(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()

	model := gormModels.PatientModel{Name: name}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

// InsertDietOrder persists a diet order row and returns its ID
func InsertDietOrder(t *testing.T, db *gorm.DB, name string, min, max *int) uuid.UUID {
	t.Helper()

	model := gormModels.DietOrderModel{Name: name, MinimumCalories: min, MaximumCalories: max}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

// AssignDietOrder links a patient to a diet order
func AssignDietOrder(t *testing.T, db *gorm.DB, patientID, dietOrderID uuid.UUID) {
	t.Helper()

	model := gormModels.PatientDietOrderModel{PatientID: patientID, DietOrderID: dietOrderID}
	require.NoError(t, db.Create(&model).Error)
}

// InsertRecipe persists a recipe row and returns its ID
func InsertRecipe(t *testing.T, db *gorm.DB, name, category string, calories int) uuid.UUID {
	t.Helper()

	model := gormModels.RecipeModel{Name: name, Category: category, Calories: calories}
	require.NoError(t, db.Create(&model).Error)
	return model.ID
}

// InsertTrayOrder persists an order with its recipe links
func InsertTrayOrder(t *testing.T, db *gorm.DB, patientID uuid.UUID, mealTime string, scheduledFor time.Time, recipeIDs ...uuid.UUID) uuid.UUID {
	t.Helper()

	order := gormModels.TrayOrderModel{
		PatientID:    patientID,
		MealTime:     mealTime,
		ScheduledFor: scheduledFor,
	}
	require.NoError(t, db.Create(&order).Error)

	for i, recipeID := range recipeIDs {
		link := gormModels.TrayOrderRecipeModel{
			TrayOrderID: order.ID,
			RecipeID:    recipeID,
			Position:    i,
		}
		require.NoError(t, db.Create(&link).Error)
	}
	return order.ID
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int { return &v }
