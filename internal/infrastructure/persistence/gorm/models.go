// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PatientModel represents the GORM model for patients
type PatientModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	TrayOrders []TrayOrderModel `gorm:"foreignKey:PatientID"`
}

// TableName overrides the table name
func (PatientModel) TableName() string { return "patients" }

// DietOrderModel represents the GORM model for diet orders (calorie policies)
type DietOrderModel struct {
	ID              uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	MinimumCalories *int
	MaximumCalories *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the table name
func (DietOrderModel) TableName() string { return "diet_orders" }

// PatientDietOrderModel associates a patient with their active diet order.
// A patient has at most one active association; the admin side enforces it.
type PatientDietOrderModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	PatientID   uuid.UUID `gorm:"type:char(36);not null;index"`
	DietOrderID uuid.UUID `gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time

	// Relationships
	Patient   PatientModel   `gorm:"foreignKey:PatientID"`
	DietOrder DietOrderModel `gorm:"foreignKey:DietOrderID"`
}

// TableName overrides the table name
func (PatientDietOrderModel) TableName() string { return "patient_diet_orders" }

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Category  string    `gorm:"type:varchar(50);not null;index"`
	Calories  int       `gorm:"not null;default:0;index;check:calories >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name
func (RecipeModel) TableName() string { return "recipes" }

// TrayOrderModel represents the GORM model for committed tray orders
type TrayOrderModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	PatientID    uuid.UUID `gorm:"type:char(36);not null;index:idx_tray_orders_patient_schedule"`
	MealTime     string    `gorm:"type:varchar(20);not null;index"`
	ScheduledFor time.Time `gorm:"not null;index:idx_tray_orders_patient_schedule"`
	CreatedAt    time.Time

	// Relationships
	Patient PatientModel           `gorm:"foreignKey:PatientID"`
	Recipes []TrayOrderRecipeModel `gorm:"foreignKey:TrayOrderID"`
}

// TableName overrides the table name
func (TrayOrderModel) TableName() string { return "tray_orders" }

// TrayOrderRecipeModel links a tray order to one of its recipes
type TrayOrderRecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	TrayOrderID uuid.UUID `gorm:"type:char(36);not null;index"`
	RecipeID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Position    int       `gorm:"not null;default:0"`

	// Relationships
	TrayOrder TrayOrderModel `gorm:"foreignKey:TrayOrderID"`
	Recipe    RecipeModel    `gorm:"foreignKey:RecipeID"`
}

// TableName overrides the table name
func (TrayOrderRecipeModel) TableName() string { return "tray_order_recipes" }

// PrepExecutionModel represents the GORM model for prep run audit records.
// The unique index on (meal_time, day) is the idempotency token: a second
// insert for the same slot and calendar day fails at the store.
type PrepExecutionModel struct {
	ID                uuid.UUID        `gorm:"type:char(36);primaryKey"`
	MealTime          string           `gorm:"type:varchar(20);not null;uniqueIndex:idx_prep_executions_slot_day"`
	Day               string           `gorm:"type:varchar(10);not null;uniqueIndex:idx_prep_executions_slot_day"`
	ExecutedAt        time.Time        `gorm:"not null;index"`
	PatientsProcessed int              `gorm:"not null;default:0"`
	OrdersCreated     int              `gorm:"not null;default:0"`
	Errors            PatientErrorList `gorm:"type:json"`
}

// TableName overrides the table name
func (PrepExecutionModel) TableName() string { return "prep_executions" }

// PatientErrorEntry is one (patient, error) pair inside an execution record
type PatientErrorEntry struct {
	PatientID uuid.UUID `json:"patientId"`
	Error     string    `json:"error"`
}

// PatientErrorList custom type for storing execution errors as JSON
type PatientErrorList []PatientErrorEntry

// Scan implements the sql.Scanner interface
func (l *PatientErrorList) Scan(value interface{}) error {
	if value == nil {
		*l = PatientErrorList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into PatientErrorList", value)
	}
}

// Value implements the driver.Valuer interface
func (l PatientErrorList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// BeforeCreate hook for PatientModel
func (p *PatientModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for DietOrderModel
func (d *DietOrderModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for PatientDietOrderModel
func (a *PatientDietOrderModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for TrayOrderModel
func (t *TrayOrderModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for TrayOrderRecipeModel
func (t *TrayOrderRecipeModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for PrepExecutionModel
func (e *PrepExecutionModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
