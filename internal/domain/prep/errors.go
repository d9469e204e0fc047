package prep

import "errors"

// Domain errors for meal preparation

var (
	// Per-patient failures recorded in a run's error list
	ErrNoDietPolicy      = errors.New("No diet order found")
	ErrCompositionFailed = errors.New("Could not build a meal within calorie budget")

	// Run-level failures
	ErrAlreadyExecuted = errors.New("prep already executed for this slot today")
	ErrExecutionExists = errors.New("prep execution already recorded for this slot and day")
)
