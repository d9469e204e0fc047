package prep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domain "github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/test/testutils"
	"go.uber.org/zap"
)

type serviceMocks struct {
	patients     *testutils.MockPatientRepository
	dietPolicies *testutils.MockDietPolicyRepository
	recipes      *testutils.MockRecipeRepository
	orders       *testutils.MockTrayOrderRepository
	executions   *testutils.MockExecutionRepository
	locker       *testutils.MockExecutionLocker
}

func newTestService(t *testing.T, now time.Time) (*PrepService, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		patients:     &testutils.MockPatientRepository{},
		dietPolicies: &testutils.MockDietPolicyRepository{},
		recipes:      &testutils.MockRecipeRepository{},
		orders:       &testutils.MockTrayOrderRepository{},
		executions:   &testutils.MockExecutionRepository{},
		locker:       &testutils.MockExecutionLocker{},
	}

	svc := NewPrepService(
		m.patients,
		m.dietPolicies,
		m.recipes,
		m.orders,
		m.executions,
		NewExecutionGuard(m.executions, m.locker),
		NewConsumptionAccumulator(m.orders),
		domain.NewComposer(testutils.FirstPicker{}),
		zap.NewNop(),
	).(*PrepService)
	svc.now = func() time.Time { return now }

	return svc, m
}

// grantLease lets the run through the guard.
func (m *serviceMocks) grantLease(slot domain.Slot) {
	m.executions.On("ExistsOn", mock.Anything, slot, mock.Anything).Return(false, nil)
	m.locker.On("Lock", mock.Anything, slot, mock.Anything).Return(func() {}, nil)
}

// expectPools stubs the four category lookups for a remaining budget.
func (m *serviceMocks) expectPools(remaining int, pools domain.Pools) {
	m.recipes.On("FindAvailable", mock.Anything, remaining, domain.CategoryEntrees).Return(pools.Entrees, nil)
	m.recipes.On("FindAvailable", mock.Anything, remaining, domain.CategorySides).Return(pools.Sides, nil)
	m.recipes.On("FindAvailable", mock.Anything, remaining, domain.CategoryDesserts).Return(pools.Desserts, nil)
	m.recipes.On("FindAvailable", mock.Anything, remaining, domain.CategoryBeverages).Return(pools.Beverages, nil)
}

func TestRunRejectsInvalidSlot(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	result, err := svc.Run(context.Background(), domain.Slot("snack"))

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRunSkipsWhenAlreadyExecutedToday(t *testing.T) {
	now := time.Date(2025, 3, 14, 3, 45, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	m.executions.On("ExistsOn", mock.Anything, domain.SlotBreakfast, mock.Anything).Return(true, nil)

	result, err := svc.Run(context.Background(), domain.SlotBreakfast)

	require.NoError(t, err)
	assert.Zero(t, result.PatientsProcessed)
	assert.Zero(t, result.OrdersCreated)
	assert.Empty(t, result.Errors)
	m.locker.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything, mock.Anything)
	m.patients.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestRunSkipsWhenLeaseIsHeld(t *testing.T) {
	now := time.Date(2025, 3, 14, 3, 45, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	m.executions.On("ExistsOn", mock.Anything, domain.SlotBreakfast, mock.Anything).Return(false, nil)
	m.locker.On("Lock", mock.Anything, domain.SlotBreakfast, mock.Anything).Return(nil, domain.ErrAlreadyExecuted)

	result, err := svc.Run(context.Background(), domain.SlotBreakfast)

	require.NoError(t, err)
	assert.Zero(t, result.PatientsProcessed)
	m.patients.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestRunProcessesEveryPatient(t *testing.T) {
	now := time.Date(2025, 3, 14, 3, 45, 0, 0, time.UTC)
	svc, m := newTestService(t, now)
	factory := testutils.NewPrepFactory(42)

	served := factory.Patient()  // gets a fresh tray order
	covered := factory.Patient() // already has an order for the slot
	orphan := factory.Patient()  // has no diet policy

	m.grantLease(domain.SlotBreakfast)
	m.patients.On("FindAll", mock.Anything).Return([]domain.Patient{served, covered, orphan}, nil)

	m.orders.On("Exists", mock.Anything, served.ID, mock.Anything, domain.SlotBreakfast).Return(false, nil)
	m.orders.On("Exists", mock.Anything, covered.ID, mock.Anything, domain.SlotBreakfast).Return(true, nil)
	m.orders.On("Exists", mock.Anything, orphan.ID, mock.Anything, domain.SlotBreakfast).Return(false, nil)

	// Standard policy: breakfast target 606 with nothing consumed.
	m.dietPolicies.On("FindForPatient", mock.Anything, served.ID).Return(factory.DietPolicy(1500, 2500), nil)
	m.dietPolicies.On("FindForPatient", mock.Anything, orphan.ID).Return(nil, domain.ErrNoDietPolicy)

	m.orders.On("SumCaloriesBetween", mock.Anything, served.ID, mock.Anything, mock.Anything).Return(0, nil)
	m.expectPools(2500, factory.Pools([]int{420}, []int{186}, nil, nil))
	m.orders.On("Create", mock.Anything, mock.MatchedBy(func(order *domain.TrayOrder) bool {
		return order.PatientID == served.ID && order.TotalCalories() == 606
	})).Return(nil)

	m.executions.On("Create", mock.Anything, mock.MatchedBy(func(exec *domain.PrepExecution) bool {
		return exec.Slot == domain.SlotBreakfast &&
			exec.PatientsProcessed == 3 &&
			exec.OrdersCreated == 1 &&
			len(exec.Errors) == 1
	})).Return(nil)

	result, err := svc.Run(context.Background(), domain.SlotBreakfast)

	require.NoError(t, err)
	assert.Equal(t, 3, result.PatientsProcessed)
	assert.Equal(t, 1, result.OrdersCreated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, orphan.ID, result.Errors[0].PatientID)
	assert.Equal(t, "No diet order found", result.Errors[0].Error)
	testutils.AssertRunAccounting(t, result, 1)
	m.orders.AssertExpectations(t)
	m.executions.AssertExpectations(t)
}

func TestRunRecordsCompositionFailure(t *testing.T) {
	now := time.Date(2025, 3, 14, 7, 45, 0, 0, time.UTC)
	svc, m := newTestService(t, now)
	factory := testutils.NewPrepFactory(7)

	patient := factory.Patient()

	m.grantLease(domain.SlotLunch)
	m.patients.On("FindAll", mock.Anything).Return([]domain.Patient{patient}, nil)
	m.orders.On("Exists", mock.Anything, patient.ID, mock.Anything, domain.SlotLunch).Return(false, nil)
	m.dietPolicies.On("FindForPatient", mock.Anything, patient.ID).Return(factory.DietPolicy(1500, 2500), nil)
	m.orders.On("SumCaloriesBetween", mock.Anything, patient.ID, mock.Anything, mock.Anything).Return(0, nil)

	// No recipes at all: composition cannot succeed.
	m.expectPools(2500, domain.Pools{})
	m.executions.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Run(context.Background(), domain.SlotLunch)

	require.NoError(t, err)
	assert.Zero(t, result.OrdersCreated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Could not build a meal within calorie budget", result.Errors[0].Error)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRunFailsWhenAuditRecordCannotBeWritten(t *testing.T) {
	now := time.Date(2025, 3, 14, 13, 45, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	m.grantLease(domain.SlotDinner)
	m.patients.On("FindAll", mock.Anything).Return([]domain.Patient{}, nil)
	m.executions.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	result, err := svc.Run(context.Background(), domain.SlotDinner)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestListExecutions(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	record := domain.PrepExecution{
		Slot:              domain.SlotBreakfast,
		ExecutedAt:        now.Add(-6 * time.Hour),
		PatientsProcessed: 12,
		OrdersCreated:     10,
		Errors:            []domain.PatientError{},
	}
	m.executions.On("FindRecent", mock.Anything, (*domain.Slot)(nil), 50).Return([]domain.PrepExecution{record}, nil)

	results, err := svc.ListExecutions(context.Background(), nil, 0)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, record.Slot, results[0].Slot)
	assert.Equal(t, record.PatientsProcessed, results[0].PatientsProcessed)
	assert.Equal(t, record.OrdersCreated, results[0].OrdersCreated)
	m.executions.AssertExpectations(t)
}

func TestListExecutionsRejectsInvalidSlot(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	bad := domain.Slot("supper")
	results, err := svc.ListExecutions(context.Background(), &bad, 10)

	assert.Error(t, err)
	assert.Nil(t, results)
}
