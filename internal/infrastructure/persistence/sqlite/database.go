// Package sqlite provides SQLite database setup for development and tests
package sqlite

import (
	"fmt"

	gormModels "github.com/trayline/v1/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate creates or updates the prep schema
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&gormModels.PatientModel{},
		&gormModels.DietOrderModel{},
		&gormModels.PatientDietOrderModel{},
		&gormModels.RecipeModel{},
		&gormModels.TrayOrderModel{},
		&gormModels.TrayOrderRecipeModel{},
		&gormModels.PrepExecutionModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedDatabase populates the database with a small demo ward
func SeedDatabase(db *gorm.DB) error {
	// Check if data already exists
	var patientCount int64
	db.Model(&gormModels.PatientModel{}).Count(&patientCount)
	if patientCount > 0 {
		return nil // Already seeded
	}

	standard := intPtr(1500)
	standardMax := intPtr(2500)
	restricted := intPtr(1200)
	restrictedMax := intPtr(1800)

	dietOrders := []gormModels.DietOrderModel{
		{Name: "Standard", MinimumCalories: standard, MaximumCalories: standardMax},
		{Name: "Calorie Restricted", MinimumCalories: restricted, MaximumCalories: restrictedMax},
		{Name: "High Energy", MinimumCalories: intPtr(2400), MaximumCalories: nil},
	}
	if err := db.Create(&dietOrders).Error; err != nil {
		return fmt.Errorf("failed to seed diet orders: %w", err)
	}

	patients := []gormModels.PatientModel{
		{Name: "Ada Morales"},
		{Name: "Henry Okafor"},
		{Name: "June Park"},
	}
	if err := db.Create(&patients).Error; err != nil {
		return fmt.Errorf("failed to seed patients: %w", err)
	}

	associations := []gormModels.PatientDietOrderModel{
		{PatientID: patients[0].ID, DietOrderID: dietOrders[0].ID},
		{PatientID: patients[1].ID, DietOrderID: dietOrders[1].ID},
		// June intentionally has no diet order; she shows up in run errors.
	}
	if err := db.Create(&associations).Error; err != nil {
		return fmt.Errorf("failed to seed diet order associations: %w", err)
	}

	recipes := []gormModels.RecipeModel{
		{Name: "Roast Chicken", Category: "Entrees", Calories: 420},
		{Name: "Baked Salmon", Category: "Entrees", Calories: 380},
		{Name: "Vegetable Lasagna", Category: "Entrees", Calories: 450},
		{Name: "Garden Salad", Category: "Sides", Calories: 90},
		{Name: "Steamed Rice", Category: "Sides", Calories: 180},
		{Name: "Roasted Vegetables", Category: "Sides", Calories: 120},
		{Name: "Celery Sticks", Category: "Sides", Calories: 0},
		{Name: "Fruit Cup", Category: "Desserts", Calories: 110},
		{Name: "Chocolate Pudding", Category: "Desserts", Calories: 160},
		{Name: "Apple Juice", Category: "Beverages", Calories: 90},
		{Name: "Black Coffee", Category: "Beverages", Calories: 5},
		{Name: "Whole Milk", Category: "Beverages", Calories: 150},
	}
	if err := db.Create(&recipes).Error; err != nil {
		return fmt.Errorf("failed to seed recipes: %w", err)
	}

	return nil
}

func intPtr(v int) *int { return &v }
