// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/trayline/v1/internal/domain/prep"
	"github.com/trayline/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// PatientRepository implements the patient repository interface using GORM
type PatientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) outbound.PatientRepository {
	return &PatientRepository{db: db}
}

// FindAll returns the full patient snapshot
func (r *PatientRepository) FindAll(ctx context.Context) ([]prep.Patient, error) {
	var models []PatientModel

	result := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	patients := make([]prep.Patient, len(models))
	for i := range models {
		patients[i] = ModelToPatient(&models[i])
	}
	return patients, nil
}

// DietPolicyRepository implements the diet policy repository using GORM
type DietPolicyRepository struct {
	db *gorm.DB
}

// NewDietPolicyRepository creates a new diet policy repository
func NewDietPolicyRepository(db *gorm.DB) outbound.DietPolicyRepository {
	return &DietPolicyRepository{db: db}
}

// FindForPatient resolves the patient's active diet order via its
// association. Returns prep.ErrNoDietPolicy when no association exists.
func (r *DietPolicyRepository) FindForPatient(ctx context.Context, patientID uuid.UUID) (*prep.DietPolicy, error) {
	var association PatientDietOrderModel

	result := r.db.WithContext(ctx).
		Preload("DietOrder").
		Where("patient_id = ?", patientID).
		First(&association)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, prep.ErrNoDietPolicy
		}
		return nil, result.Error
	}

	return ModelToDietPolicy(&association.DietOrder), nil
}
