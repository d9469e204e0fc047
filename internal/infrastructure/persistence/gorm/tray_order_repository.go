package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// TrayOrderRepository implements the tray order repository using GORM
type TrayOrderRepository struct {
	db *gorm.DB
}

// NewTrayOrderRepository creates a new tray order repository
func NewTrayOrderRepository(db *gorm.DB) outbound.TrayOrderRepository {
	return &TrayOrderRepository{db: db}
}

// Create commits the order and its recipe links in one transaction. Either
// everything lands or nothing does.
func (r *TrayOrderRepository) Create(ctx context.Context, order *prep.TrayOrder) error {
	model := TrayOrderToModel(order)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links := model.Recipes
		model.Recipes = nil

		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Exists reports whether the patient already has an order for the slot
// within the day's window.
func (r *TrayOrderRepository) Exists(ctx context.Context, patientID uuid.UUID, day time.Time, slot prep.Slot) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).
		Model(&TrayOrderModel{}).
		Where("patient_id = ? AND meal_time = ? AND scheduled_for BETWEEN ? AND ?",
			patientID, slot.String(), prep.StartOfDay(day), prep.EndOfDay(day)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// SumCaloriesBetween totals recipe calories across the patient's orders
// scheduled within [from, to].
func (r *TrayOrderRepository) SumCaloriesBetween(ctx context.Context, patientID uuid.UUID, from, to time.Time) (int, error) {
	var total int64

	result := r.db.WithContext(ctx).
		Table("tray_order_recipes").
		Joins("JOIN tray_orders ON tray_orders.id = tray_order_recipes.tray_order_id").
		Joins("JOIN recipes ON recipes.id = tray_order_recipes.recipe_id").
		Where("tray_orders.patient_id = ? AND tray_orders.scheduled_for BETWEEN ? AND ?",
			patientID, from, to).
		Select("COALESCE(SUM(recipes.calories), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(total), nil
}
