package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// ExecutionRepository implements the prep execution repository using GORM
type ExecutionRepository struct {
	db *gorm.DB
}

// NewExecutionRepository creates a new execution repository
func NewExecutionRepository(db *gorm.DB) outbound.ExecutionRepository {
	return &ExecutionRepository{db: db}
}

// Create inserts the execution record. The unique (meal_time, day) index
// turns a duplicate run into prep.ErrExecutionExists instead of a second
// record; this conditional insert is the idempotency guarantee.
func (r *ExecutionRepository) Create(ctx context.Context, exec *prep.PrepExecution) error {
	model := ExecutionToModel(exec)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return prep.ErrExecutionExists
		}
		return result.Error
	}
	return nil
}

// ExistsOn reports whether an execution was recorded for the slot on the
// given calendar day.
func (r *ExecutionRepository) ExistsOn(ctx context.Context, slot prep.Slot, day time.Time) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).
		Model(&PrepExecutionModel{}).
		Where("meal_time = ? AND day = ?", slot.String(), dayKey(day)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// FindRecent returns up to limit executions, newest first, optionally
// filtered by slot.
func (r *ExecutionRepository) FindRecent(ctx context.Context, slot *prep.Slot, limit int) ([]prep.PrepExecution, error) {
	query := r.db.WithContext(ctx).Model(&PrepExecutionModel{})
	if slot != nil {
		query = query.Where("meal_time = ?", slot.String())
	}

	var models []PrepExecutionModel
	result := query.
		Order("executed_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	execs := make([]prep.PrepExecution, len(models))
	for i := range models {
		execs[i] = ModelToExecution(&models[i])
	}
	return execs, nil
}
