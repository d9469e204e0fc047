// Package prep provides the application layer for automated meal
// preparation. It implements the use cases defined in the inbound ports.
package prep

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/internal/ports/inbound"
	"github.com/trayline/v1/internal/ports/outbound"
	apperrors "github.com/trayline/v1/pkg/errors"
	"go.uber.org/zap"
)

// defaultExecutionLimit bounds ListExecutions when the caller does not pick
// a limit.
const defaultExecutionLimit = 50

// PrepService orchestrates a prep run: guard check, per-patient budget and
// composition, atomic order commits, and the single audit record at the end.
type PrepService struct {
	patients     outbound.PatientRepository
	dietPolicies outbound.DietPolicyRepository
	recipes      outbound.RecipeRepository
	orders       outbound.TrayOrderRepository
	executions   outbound.ExecutionRepository
	guard        *ExecutionGuard
	consumption  *ConsumptionAccumulator
	composer     *prep.Composer
	logger       *zap.Logger
	now          func() time.Time
}

// NewPrepService creates the prep service.
func NewPrepService(
	patients outbound.PatientRepository,
	dietPolicies outbound.DietPolicyRepository,
	recipes outbound.RecipeRepository,
	orders outbound.TrayOrderRepository,
	executions outbound.ExecutionRepository,
	guard *ExecutionGuard,
	consumption *ConsumptionAccumulator,
	composer *prep.Composer,
	logger *zap.Logger,
) inbound.PrepService {
	return &PrepService{
		patients:     patients,
		dietPolicies: dietPolicies,
		recipes:      recipes,
		orders:       orders,
		executions:   executions,
		guard:        guard,
		consumption:  consumption,
		composer:     composer,
		logger:       logger.Named("prep-service"),
		now:          time.Now,
	}
}

// patientOutcome is the explicit per-patient result folded into the run
// aggregate. No failure crosses a patient boundary.
type patientOutcome struct {
	created bool
	skipped bool
	err     error
}

// Run executes one prep pass for the slot on the current calendar day.
func (s *PrepService) Run(ctx context.Context, slot prep.Slot) (*prep.ExecutionResult, error) {
	if !slot.IsValid() {
		return nil, apperrors.NewBadRequestError("invalid meal slot")
	}

	now := s.now()
	result := &prep.ExecutionResult{
		ExecutedAt: now,
		Slot:       slot,
		Errors:     []prep.PatientError{},
	}

	ran, err := s.guard.HasRunToday(ctx, slot, now)
	if err != nil {
		return nil, apperrors.NewDatabaseError("check prep execution for today", err)
	}
	if ran {
		s.logger.Info("Prep already ran for slot today, skipping",
			zap.String("slot", slot.String()),
		)
		return result, nil
	}

	release, err := s.guard.AcquireLease(ctx, slot, now)
	if err != nil {
		if errors.Is(err, prep.ErrAlreadyExecuted) {
			s.logger.Warn("Another scheduler holds the prep lease, skipping",
				zap.String("slot", slot.String()),
			)
			return result, nil
		}
		return nil, apperrors.Wrap(err, "acquire prep execution lease")
	}
	defer release()

	patients, err := s.patients.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load patient snapshot", err)
	}

	s.logger.Info("Starting prep run",
		zap.String("slot", slot.String()),
		zap.Int("patients", len(patients)),
	)

	serveTime := slot.ServeTime(now)
	for _, patient := range patients {
		result.PatientsProcessed++

		outcome := s.processPatient(ctx, patient, slot, now, serveTime)
		switch {
		case outcome.created:
			result.OrdersCreated++
		case outcome.skipped:
			// Patient already has an order for this slot; implicit skip.
		case outcome.err != nil:
			result.Errors = append(result.Errors, prep.PatientError{
				PatientID: patient.ID,
				Error:     outcome.err.Error(),
			})
			s.logger.Warn("Patient skipped with error",
				zap.String("patient_id", patient.ID.String()),
				zap.String("slot", slot.String()),
				zap.Error(outcome.err),
			)
		}
	}

	exec := &prep.PrepExecution{
		ID:                uuid.New(),
		Slot:              slot,
		ExecutedAt:        now,
		PatientsProcessed: result.PatientsProcessed,
		OrdersCreated:     result.OrdersCreated,
		Errors:            result.Errors,
	}
	if err := s.executions.Create(ctx, exec); err != nil {
		// Losing the audit record breaks the idempotency contract, so this
		// failure is fatal even though the orders are already committed.
		return nil, apperrors.NewDatabaseError("persist prep execution record", err)
	}

	s.logger.Info("Prep run complete",
		zap.String("slot", slot.String()),
		zap.Int("patients_processed", result.PatientsProcessed),
		zap.Int("orders_created", result.OrdersCreated),
		zap.Int("errors", len(result.Errors)),
	)

	return result, nil
}

// processPatient runs steps 1-7 of the per-patient pipeline and reduces the
// outcome to created, skipped, or failed. Every error stays local to the
// patient.
func (s *PrepService) processPatient(ctx context.Context, patient prep.Patient, slot prep.Slot, day, serveTime time.Time) patientOutcome {
	hasOrder, err := s.orders.Exists(ctx, patient.ID, day, slot)
	if err != nil {
		return patientOutcome{err: err}
	}
	if hasOrder {
		return patientOutcome{skipped: true}
	}

	policy, err := s.dietPolicies.FindForPatient(ctx, patient.ID)
	if err != nil {
		return patientOutcome{err: err}
	}

	consumed, err := s.consumption.ConsumedCalories(ctx, patient.ID, day)
	if err != nil {
		return patientOutcome{err: err}
	}

	pools, err := s.availablePools(ctx, policy.RemainingBudget(consumed))
	if err != nil {
		return patientOutcome{err: err}
	}

	target := prep.AdjustedTarget(slot, *policy, consumed)
	meal := s.composer.Compose(slot, target, pools)
	if len(meal) == 0 {
		return patientOutcome{err: prep.ErrCompositionFailed}
	}

	order := &prep.TrayOrder{
		ID:           uuid.New(),
		PatientID:    patient.ID,
		Slot:         slot,
		ScheduledFor: serveTime,
		Recipes:      meal,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return patientOutcome{err: err}
	}

	s.logger.Debug("Tray order committed",
		zap.String("patient_id", patient.ID.String()),
		zap.String("slot", slot.String()),
		zap.Int("recipes", len(meal)),
		zap.Int("calories", order.TotalCalories()),
		zap.Int("target", target),
	)

	return patientOutcome{created: true}
}

// availablePools fetches the category-partitioned recipe pools bounded by
// the patient's remaining budget.
func (s *PrepService) availablePools(ctx context.Context, remaining int) (prep.Pools, error) {
	var pools prep.Pools
	var err error

	if pools.Entrees, err = s.recipes.FindAvailable(ctx, remaining, prep.CategoryEntrees); err != nil {
		return prep.Pools{}, err
	}
	if pools.Sides, err = s.recipes.FindAvailable(ctx, remaining, prep.CategorySides); err != nil {
		return prep.Pools{}, err
	}
	if pools.Desserts, err = s.recipes.FindAvailable(ctx, remaining, prep.CategoryDesserts); err != nil {
		return prep.Pools{}, err
	}
	if pools.Beverages, err = s.recipes.FindAvailable(ctx, remaining, prep.CategoryBeverages); err != nil {
		return prep.Pools{}, err
	}
	return pools, nil
}

// ListExecutions returns past run summaries, newest first.
func (s *PrepService) ListExecutions(ctx context.Context, slot *prep.Slot, limit int) ([]prep.ExecutionResult, error) {
	if slot != nil && !slot.IsValid() {
		return nil, apperrors.NewBadRequestError("invalid meal slot")
	}
	if limit <= 0 {
		limit = defaultExecutionLimit
	}

	execs, err := s.executions.FindRecent(ctx, slot, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list prep executions", err)
	}

	results := make([]prep.ExecutionResult, len(execs))
	for i, exec := range execs {
		results[i] = prep.ExecutionResult{
			ExecutedAt:        exec.ExecutedAt,
			Slot:              exec.Slot,
			PatientsProcessed: exec.PatientsProcessed,
			OrdersCreated:     exec.OrdersCreated,
			Errors:            exec.Errors,
		}
	}
	return results, nil
}
