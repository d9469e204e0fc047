// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/trayline/v1/internal/domain/prep"
)

// MockPatientRepository provides a mock implementation of PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

// FindAll returns the patient roster snapshot
func (m *MockPatientRepository) FindAll(ctx context.Context) ([]prep.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]prep.Patient), args.Error(1)
}

// MockDietPolicyRepository provides a mock implementation of DietPolicyRepository
type MockDietPolicyRepository struct {
	mock.Mock
}

// FindForPatient resolves a patient's active diet policy
func (m *MockDietPolicyRepository) FindForPatient(ctx context.Context, patientID uuid.UUID) (*prep.DietPolicy, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prep.DietPolicy), args.Error(1)
}

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

// FindAvailable returns recipes in the category within the budget
func (m *MockRecipeRepository) FindAvailable(ctx context.Context, remainingBudget int, category prep.Category) ([]prep.Recipe, error) {
	args := m.Called(ctx, remainingBudget, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]prep.Recipe), args.Error(1)
}

// MockTrayOrderRepository provides a mock implementation of TrayOrderRepository
type MockTrayOrderRepository struct {
	mock.Mock
}

// Create commits a tray order
func (m *MockTrayOrderRepository) Create(ctx context.Context, order *prep.TrayOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// Exists reports whether the patient already has an order for the slot today
func (m *MockTrayOrderRepository) Exists(ctx context.Context, patientID uuid.UUID, day time.Time, slot prep.Slot) (bool, error) {
	args := m.Called(ctx, patientID, day, slot)
	return args.Bool(0), args.Error(1)
}

// SumCaloriesBetween totals recipe calories across the patient's orders
func (m *MockTrayOrderRepository) SumCaloriesBetween(ctx context.Context, patientID uuid.UUID, from, to time.Time) (int, error) {
	args := m.Called(ctx, patientID, from, to)
	return args.Int(0), args.Error(1)
}

// MockExecutionRepository provides a mock implementation of ExecutionRepository
type MockExecutionRepository struct {
	mock.Mock
}

// Create inserts an execution record
func (m *MockExecutionRepository) Create(ctx context.Context, exec *prep.PrepExecution) error {
	args := m.Called(ctx, exec)
	return args.Error(0)
}

// ExistsOn reports whether an execution was already recorded
func (m *MockExecutionRepository) ExistsOn(ctx context.Context, slot prep.Slot, day time.Time) (bool, error) {
	args := m.Called(ctx, slot, day)
	return args.Bool(0), args.Error(1)
}

// FindRecent returns recent executions, newest first
func (m *MockExecutionRepository) FindRecent(ctx context.Context, slot *prep.Slot, limit int) ([]prep.PrepExecution, error) {
	args := m.Called(ctx, slot, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]prep.PrepExecution), args.Error(1)
}

// MockExecutionLocker provides a mock implementation of ExecutionLocker
type MockExecutionLocker struct {
	mock.Mock
}

// Lock acquires the (slot, day) lease
func (m *MockExecutionLocker) Lock(ctx context.Context, slot prep.Slot, day time.Time) (func(), error) {
	args := m.Called(ctx, slot, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// ScriptedPicker returns recipes by index from each candidate slice it is
// handed, in call order. It makes composition deterministic in tests: the
// nth Pick call selects picks[n] from its candidates, out-of-range or
// negative picks decline.
type ScriptedPicker struct {
	picks []int
	call  int
}

// NewScriptedPicker creates a picker that follows the scripted indexes
func NewScriptedPicker(picks ...int) *ScriptedPicker {
	return &ScriptedPicker{picks: picks}
}

// Pick implements prep.Picker
func (p *ScriptedPicker) Pick(candidates []prep.Recipe) (prep.Recipe, bool) {
	idx := -1
	if p.call < len(p.picks) {
		idx = p.picks[p.call]
	}
	p.call++
	if idx < 0 || idx >= len(candidates) {
		return prep.Recipe{}, false
	}
	return candidates[idx], true
}

// FirstPicker always selects the first candidate. Pools arrive sorted by
// calories descending, so this picks the richest item every time.
type FirstPicker struct{}

// Pick implements prep.Picker
func (FirstPicker) Pick(candidates []prep.Recipe) (prep.Recipe, bool) {
	if len(candidates) == 0 {
		return prep.Recipe{}, false
	}
	return candidates[0], true
}
