// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces the prep engine uses to reach the shared store
// and other external systems.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trayline/v1/internal/domain/prep"
)

// PatientRepository reads the patient roster. The prep engine takes one full
// snapshot per run; patient management lives elsewhere.
type PatientRepository interface {
	FindAll(ctx context.Context) ([]prep.Patient, error)
}

// DietPolicyRepository resolves a patient's active diet policy via its
// association. A patient has at most one active association at a time; that
// invariant is enforced upstream.
type DietPolicyRepository interface {
	// FindForPatient returns prep.ErrNoDietPolicy when the patient has no
	// active association.
	FindForPatient(ctx context.Context, patientID uuid.UUID) (*prep.DietPolicy, error)
}

// RecipeRepository serves the recipe catalog.
type RecipeRepository interface {
	// FindAvailable returns recipes in the category with calories at or
	// under remainingBudget, sorted by calories descending.
	FindAvailable(ctx context.Context, remainingBudget int, category prep.Category) ([]prep.Recipe, error)
}

// TrayOrderRepository persists and queries committed meals.
type TrayOrderRepository interface {
	// Create commits the order and all of its recipe links as one
	// transactional unit.
	Create(ctx context.Context, order *prep.TrayOrder) error

	// Exists reports whether the patient already has an order for the slot
	// on the given calendar day.
	Exists(ctx context.Context, patientID uuid.UUID, day time.Time, slot prep.Slot) (bool, error)

	// SumCaloriesBetween totals recipe calories across the patient's orders
	// scheduled within [from, to].
	SumCaloriesBetween(ctx context.Context, patientID uuid.UUID, from, to time.Time) (int, error)
}

// ExecutionRepository persists the per-run audit records.
type ExecutionRepository interface {
	// Create inserts the execution record. The store enforces uniqueness on
	// (slot, day) and returns prep.ErrExecutionExists on conflict; that
	// conditional insert is the real idempotency guarantee.
	Create(ctx context.Context, exec *prep.PrepExecution) error

	// ExistsOn reports whether an execution was already recorded for the
	// slot on the given calendar day.
	ExistsOn(ctx context.Context, slot prep.Slot, day time.Time) (bool, error)

	// FindRecent returns up to limit executions, newest first, optionally
	// filtered by slot.
	FindRecent(ctx context.Context, slot *prep.Slot, limit int) ([]prep.PrepExecution, error)
}

// ExecutionLocker grants a short-lived exclusive lease on a (slot, day) so
// two scheduler instances racing the same trigger window do not both run.
// The lease is best effort on top of the execution record's uniqueness
// constraint.
type ExecutionLocker interface {
	// Lock acquires the lease and returns a release function. It returns
	// prep.ErrAlreadyExecuted when another holder owns the lease.
	Lock(ctx context.Context, slot prep.Slot, day time.Time) (func(), error)
}
