package repository

import (
	"context"
	"errors"

	"patient-record-service/internal/domain/entity"
	domainRepo "patient-record-service/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, patientID string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where("patient_id = ?", patientID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindPage(ctx context.Context, db *gorm.DB, limit int, afterID string) ([]entity.Patient, error) {
	var patients []entity.Patient
	query := db.WithContext(ctx).Order("patient_id")
	if afterID != "" {
		query = query.Where("patient_id > ?", afterID)
	}
	if err := query.Limit(limit).Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	if err := db.WithContext(ctx).Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) FindByAddress(ctx context.Context, db *gorm.DB, address string) ([]entity.Patient, error) {
	var patients []entity.Patient
	if err := db.WithContext(ctx).Where("address = ?", address).Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) UpdateFields(ctx context.Context, db *gorm.DB, patientID string, fields map[string]interface{}) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Patient{}).Where("patient_id = ?", patientID).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *patientRepository) Delete(ctx context.Context, db *gorm.DB, patientID string) (int64, error) {
	result := db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&entity.Patient{})
	return result.RowsAffected, result.Error
}
