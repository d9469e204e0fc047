package prep

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/internal/ports/outbound"
)

// ConsumptionAccumulator totals the calories a patient has already been
// served on a given day. Only orders whose scheduled time has passed count:
// the window runs from the start of the day to the current time, clamped to
// the end of the day for past dates.
type ConsumptionAccumulator struct {
	orders outbound.TrayOrderRepository
	now    func() time.Time
}

// NewConsumptionAccumulator creates an accumulator over the tray-order store.
func NewConsumptionAccumulator(orders outbound.TrayOrderRepository) *ConsumptionAccumulator {
	return &ConsumptionAccumulator{
		orders: orders,
		now:    time.Now,
	}
}

// ConsumedCalories returns the calories served to the patient on date.
// Strictly future dates yield zero without touching the store.
func (a *ConsumptionAccumulator) ConsumedCalories(ctx context.Context, patientID uuid.UUID, date time.Time) (int, error) {
	start := prep.StartOfDay(date)
	end := prep.EndOfDay(date)
	if now := a.now(); now.Before(end) {
		end = now
	}
	if start.After(end) {
		return 0, nil
	}
	return a.orders.SumCaloriesBetween(ctx, patientID, start, end)
}
