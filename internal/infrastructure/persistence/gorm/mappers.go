// Package gorm provides mapping between domain values and GORM models
package gorm

import (
	"time"

	"github.com/trayline/v1/internal/domain/prep"
)

// ModelToPatient converts a GORM model to a domain patient
func ModelToPatient(model *PatientModel) prep.Patient {
	return prep.Patient{
		ID:   model.ID,
		Name: model.Name,
	}
}

// ModelToDietPolicy converts a GORM diet order to a domain policy
func ModelToDietPolicy(model *DietOrderModel) *prep.DietPolicy {
	return &prep.DietPolicy{
		ID:              model.ID,
		Name:            model.Name,
		MinimumCalories: model.MinimumCalories,
		MaximumCalories: model.MaximumCalories,
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(model *RecipeModel) prep.Recipe {
	return prep.Recipe{
		ID:       model.ID,
		Name:     model.Name,
		Category: prep.Category(model.Category),
		Calories: model.Calories,
	}
}

// TrayOrderToModel converts a domain tray order to its GORM models. The
// recipe links keep their composition order.
func TrayOrderToModel(order *prep.TrayOrder) *TrayOrderModel {
	model := &TrayOrderModel{
		ID:           order.ID,
		PatientID:    order.PatientID,
		MealTime:     order.Slot.String(),
		ScheduledFor: order.ScheduledFor,
	}
	for i, r := range order.Recipes {
		model.Recipes = append(model.Recipes, TrayOrderRecipeModel{
			TrayOrderID: order.ID,
			RecipeID:    r.ID,
			Position:    i,
		})
	}
	return model
}

// ExecutionToModel converts a domain execution record to a GORM model
func ExecutionToModel(exec *prep.PrepExecution) *PrepExecutionModel {
	errs := make(PatientErrorList, len(exec.Errors))
	for i, e := range exec.Errors {
		errs[i] = PatientErrorEntry{PatientID: e.PatientID, Error: e.Error}
	}
	return &PrepExecutionModel{
		ID:                exec.ID,
		MealTime:          exec.Slot.String(),
		Day:               exec.ExecutedAt.Format(dayFormat),
		ExecutedAt:        exec.ExecutedAt,
		PatientsProcessed: exec.PatientsProcessed,
		OrdersCreated:     exec.OrdersCreated,
		Errors:            errs,
	}
}

// ModelToExecution converts a GORM model to a domain execution record
func ModelToExecution(model *PrepExecutionModel) prep.PrepExecution {
	errs := make([]prep.PatientError, len(model.Errors))
	for i, e := range model.Errors {
		errs[i] = prep.PatientError{PatientID: e.PatientID, Error: e.Error}
	}
	return prep.PrepExecution{
		ID:                model.ID,
		Slot:              prep.Slot(model.MealTime),
		ExecutedAt:        model.ExecutedAt,
		PatientsProcessed: model.PatientsProcessed,
		OrdersCreated:     model.OrdersCreated,
		Errors:            errs,
	}
}

// dayFormat is the calendar-day key used by the execution uniqueness index.
const dayFormat = "2006-01-02"

// dayKey formats a timestamp as its calendar-day key.
func dayKey(t time.Time) string {
	return t.Format(dayFormat)
}
