package repository

import (
	"context"

	"patient-record-service/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, patientID string) (*entity.Patient, error)
	// FindPage returns up to limit records ordered by patient_id, starting
	// after afterID (exclusive). An empty afterID starts from the beginning.
	FindPage(ctx context.Context, db *gorm.DB, limit int, afterID string) ([]entity.Patient, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error)
	FindByAddress(ctx context.Context, db *gorm.DB, address string) ([]entity.Patient, error)
	// UpdateFields applies a partial column update and reports how many rows
	// matched, so callers can enforce the existence precondition.
	UpdateFields(ctx context.Context, db *gorm.DB, patientID string, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, patientID string) (int64, error)
}
