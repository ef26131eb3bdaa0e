package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"patient-record-service/internal/converter"
	"patient-record-service/internal/delivery/dto"
	"patient-record-service/internal/domain/entity"
	"patient-record-service/internal/domain/repository"
	"patient-record-service/internal/service"
	"patient-record-service/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrPatientConflict  = errors.New("patient id already exists")
	ErrInvalidCursor    = errors.New("invalid continuation token")
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.PatientCreateRequest) (*dto.PatientResponse, error)
	GetByID(ctx context.Context, patientID string) (*dto.PatientResponse, error)
	Update(ctx context.Context, patientID string, req *dto.PatientUpdateRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, patientID string) error
	List(ctx context.Context, limit int, lastKey string) (*dto.PatientListResponse, error)
	FindByAddress(ctx context.Context, address string) ([]dto.PatientResponse, error)
	FindByCondition(ctx context.Context, condition string) ([]dto.PatientResponse, error)
}

// patientUsecase orchestrates the dual-write policy: the primary store is
// authoritative and its failures surface to the caller; the search index is a
// best-effort mirror whose failures are logged and discarded.
type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	searchIndex service.SearchIndex // nil when search is not configured
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	searchIndex service.SearchIndex,
) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		searchIndex: searchIndex,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.PatientCreateRequest) (*dto.PatientResponse, error) {
	now := time.Now().UTC()
	patient := &entity.Patient{
		PatientID:  uuid.NewString(),
		Name:       req.Name,
		Address:    req.Address,
		Conditions: entity.StringList(req.Conditions),
		Allergies:  entity.StringList(req.Allergies),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := u.patientRepo.Create(ctx, u.db, patient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPatientConflict
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, fmt.Errorf("create patient: %w", err)
	}

	u.mirrorToIndex(ctx, patient)

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetByID(ctx context.Context, patientID string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, fmt.Errorf("find patient %s: %w", patientID, err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, patientID string, req *dto.PatientUpdateRequest) (*dto.PatientResponse, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Conditions != nil {
		fields["conditions"] = entity.StringList(*req.Conditions)
	}
	if req.Allergies != nil {
		fields["allergies"] = entity.StringList(*req.Allergies)
	}
	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	fields["updated_at"] = time.Now().UTC()

	rows, err := u.patientRepo.UpdateFields(ctx, u.db, patientID, fields)
	if err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", patientID, err)
		return nil, fmt.Errorf("update patient %s: %w", patientID, err)
	}
	if rows == 0 {
		return nil, ErrPatientNotFound
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to re-read patient %s after update: %+v", patientID, err)
		return nil, fmt.Errorf("find patient %s: %w", patientID, err)
	}
	if patient == nil {
		// Deleted between the update and the re-read
		return nil, ErrPatientNotFound
	}

	u.mirrorToIndex(ctx, patient)

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Delete(ctx context.Context, patientID string) error {
	rows, err := u.patientRepo.Delete(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to delete patient %s: %+v", patientID, err)
		return fmt.Errorf("delete patient %s: %w", patientID, err)
	}
	if rows == 0 {
		return ErrPatientNotFound
	}

	u.removeFromIndex(ctx, patientID)

	return nil
}

func (u *patientUsecase) List(ctx context.Context, limit int, lastKey string) (*dto.PatientListResponse, error) {
	limit = pagination.ClampLimit(limit)

	afterID, err := pagination.DecodeCursor(lastKey)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	// Fetch one extra record to detect whether more pages remain
	patients, err := u.patientRepo.FindPage(ctx, u.db, limit+1, afterID)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, fmt.Errorf("list patients: %w", err)
	}

	resp := &dto.PatientListResponse{}
	if len(patients) > limit {
		patients = patients[:limit]
		resp.NextKey = pagination.EncodeCursor(patients[limit-1].PatientID)
	}
	resp.Patients = converter.PatientsToResponses(patients)

	return resp, nil
}

func (u *patientUsecase) FindByAddress(ctx context.Context, address string) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindByAddress(ctx, u.db, address)
	if err != nil {
		u.log.Warnf("Failed to find patients by address: %+v", err)
		return nil, fmt.Errorf("find patients by address: %w", err)
	}
	return converter.PatientsToResponses(patients), nil
}

// FindByCondition asks the search index first and falls back to a primary
// store scan when the index is unconfigured or fails. A search failure never
// propagates to the caller.
func (u *patientUsecase) FindByCondition(ctx context.Context, condition string) ([]dto.PatientResponse, error) {
	if u.searchIndex != nil {
		patients, err := u.searchIndex.SearchByCondition(ctx, condition)
		if err == nil {
			return converter.PatientsToResponses(patients), nil
		}
		u.log.Warnf("Condition search failed, falling back to store scan: %+v", err)
	}

	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to scan patients: %+v", err)
		return nil, fmt.Errorf("scan patients: %w", err)
	}

	matched := make([]entity.Patient, 0)
	for _, patient := range patients {
		if conditionsContain(patient.Conditions, condition) {
			matched = append(matched, patient)
		}
	}
	return converter.PatientsToResponses(matched), nil
}

// mirrorToIndex pushes the current record state into the search index.
// Best-effort: failures are logged, never returned.
func (u *patientUsecase) mirrorToIndex(ctx context.Context, patient *entity.Patient) {
	if u.searchIndex == nil {
		return
	}
	if err := u.searchIndex.IndexPatient(ctx, patient); err != nil {
		u.log.Warnf("Failed to index patient %s: %+v", patient.PatientID, err)
	}
}

// removeFromIndex drops the record's search document. Best-effort, and
// idempotent at the index layer: an already-absent document is success.
func (u *patientUsecase) removeFromIndex(ctx context.Context, patientID string) {
	if u.searchIndex == nil {
		return
	}
	if err := u.searchIndex.RemovePatient(ctx, patientID); err != nil {
		u.log.Warnf("Failed to remove patient %s from index: %+v", patientID, err)
	}
}

func conditionsContain(conditions entity.StringList, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	for _, c := range conditions {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}
