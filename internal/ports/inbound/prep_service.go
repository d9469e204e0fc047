// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the prep engine exposes to the outside world.
package inbound

import (
	"context"

	"github.com/trayline/v1/internal/domain/prep"
)

// PrepService defines the automated meal-preparation use cases. HTTP
// handlers and the cron trigger drive the engine through this interface.
type PrepService interface {
	// Run executes one prep pass for the slot on the current calendar day.
	// It is idempotent per (slot, day): a repeat call returns a zero-valued
	// result without touching the store. Per-patient failures land in the
	// result's error list; only guard or audit-record failures surface as
	// an error.
	Run(ctx context.Context, slot prep.Slot) (*prep.ExecutionResult, error)

	// ListExecutions returns past run summaries, newest first, optionally
	// filtered by slot. A non-positive limit falls back to the default.
	ListExecutions(ctx context.Context, slot *prep.Slot, limit int) ([]prep.ExecutionResult, error)
}
