package prep

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domain "github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/test/testutils"
)

func TestConsumedCaloriesToday(t *testing.T) {
	orders := &testutils.MockTrayOrderRepository{}
	acc := NewConsumptionAccumulator(orders)

	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	acc.now = func() time.Time { return now }

	patientID := uuid.New()
	start := domain.StartOfDay(now)
	orders.On("SumCaloriesBetween", mock.Anything, patientID, start, now).Return(850, nil)

	consumed, err := acc.ConsumedCalories(context.Background(), patientID, now)

	require.NoError(t, err)
	assert.Equal(t, 850, consumed, "the window for today ends at the current time, not end of day")
	orders.AssertExpectations(t)
}

func TestConsumedCaloriesPastDay(t *testing.T) {
	orders := &testutils.MockTrayOrderRepository{}
	acc := NewConsumptionAccumulator(orders)

	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	acc.now = func() time.Time { return now }

	patientID := uuid.New()
	day := time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
	orders.On("SumCaloriesBetween", mock.Anything, patientID, domain.StartOfDay(day), domain.EndOfDay(day)).Return(1900, nil)

	consumed, err := acc.ConsumedCalories(context.Background(), patientID, day)

	require.NoError(t, err)
	assert.Equal(t, 1900, consumed)
	orders.AssertExpectations(t)
}

func TestConsumedCaloriesFutureDay(t *testing.T) {
	orders := &testutils.MockTrayOrderRepository{}
	acc := NewConsumptionAccumulator(orders)

	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	acc.now = func() time.Time { return now }

	consumed, err := acc.ConsumedCalories(context.Background(), uuid.New(), now.AddDate(0, 0, 3))

	require.NoError(t, err)
	assert.Zero(t, consumed, "nothing can have been consumed on a future day")
	orders.AssertNotCalled(t, "SumCaloriesBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
