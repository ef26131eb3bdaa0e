package converter

import (
	"time"

	"patient-record-service/internal/delivery/dto"
	"patient-record-service/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to a PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		PatientID:  patient.PatientID,
		Name:       patient.Name,
		Address:    patient.Address,
		Conditions: []string(patient.Conditions),
		Allergies:  []string(patient.Allergies),
		CreatedAt:  patient.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:  patient.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// PatientsToResponses converts a slice of Patient entities, always returning a
// non-nil slice so empty results serialize as [] rather than null.
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}
