package prep

import (
	"time"

	"github.com/google/uuid"
)

// TrayOrder is a committed meal for one patient and one slot. It is created
// whole or not at all: the order row and its recipe links share a single
// transaction.
type TrayOrder struct {
	ID           uuid.UUID
	PatientID    uuid.UUID
	Slot         Slot
	ScheduledFor time.Time
	Recipes      []Recipe
}

// TotalCalories sums the calories across the order's recipes.
func (t TrayOrder) TotalCalories() int {
	total := 0
	for _, r := range t.Recipes {
		total += r.Calories
	}
	return total
}

// PatientError records a single patient's failure during a prep run.
type PatientError struct {
	PatientID uuid.UUID `json:"patientId"`
	Error     string    `json:"error"`
}

// PrepExecution is the immutable audit record written once per scheduler
// run. At most one execution exists per (slot, calendar day); that pair is
// the run's idempotency token.
type PrepExecution struct {
	ID                uuid.UUID
	Slot              Slot
	ExecutedAt        time.Time
	PatientsProcessed int
	OrdersCreated     int
	Errors            []PatientError
}

// ExecutionResult is the structured outcome handed back to the caller of a
// prep run. Every patient is accounted for: either counted into
// OrdersCreated, implicitly skipped because an order already existed, or
// listed in Errors.
type ExecutionResult struct {
	ExecutedAt        time.Time      `json:"executedAt"`
	Slot              Slot           `json:"slot"`
	PatientsProcessed int            `json:"patientsProcessed"`
	OrdersCreated     int            `json:"ordersCreated"`
	Errors            []PatientError `json:"errors"`
}
