package prep

import (
	"context"
	"time"

	"github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/internal/ports/outbound"
)

// ExecutionGuard enforces at-most-once execution per (slot, calendar day).
// The existence check is the fast path; the distributed lease narrows the
// check-then-act window when multiple scheduler instances race, and the
// unique constraint on the execution record is the final backstop.
type ExecutionGuard struct {
	executions outbound.ExecutionRepository
	locker     outbound.ExecutionLocker
}

// NewExecutionGuard creates a guard over the execution store and lease.
func NewExecutionGuard(executions outbound.ExecutionRepository, locker outbound.ExecutionLocker) *ExecutionGuard {
	return &ExecutionGuard{
		executions: executions,
		locker:     locker,
	}
}

// HasRunToday reports whether a prep execution was already recorded for the
// slot on the given day.
func (g *ExecutionGuard) HasRunToday(ctx context.Context, slot prep.Slot, day time.Time) (bool, error) {
	return g.executions.ExistsOn(ctx, slot, day)
}

// AcquireLease takes the exclusive (slot, day) lease for the duration of a
// run. Callers must invoke the returned release function when done.
func (g *ExecutionGuard) AcquireLease(ctx context.Context, slot prep.Slot, day time.Time) (func(), error) {
	return g.locker.Lock(ctx, slot, day)
}
