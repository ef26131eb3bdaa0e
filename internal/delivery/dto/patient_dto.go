package dto

// PatientCreateRequest carries the caller-supplied fields for a new record.
// All four fields are required and non-empty at the boundary.
type PatientCreateRequest struct {
	Name       string   `json:"name" validate:"required"`
	Address    string   `json:"address" validate:"required"`
	Conditions []string `json:"conditions" validate:"required,min=1,dive,required"`
	Allergies  []string `json:"allergies" validate:"required,min=1,dive,required"`
}

// PatientUpdateRequest carries a partial update. Absent fields stay untouched;
// at least one field must be present.
type PatientUpdateRequest struct {
	Name       *string   `json:"name,omitempty"`
	Address    *string   `json:"address,omitempty"`
	Conditions *[]string `json:"conditions,omitempty"`
	Allergies  *[]string `json:"allergies,omitempty"`
}

// PatientResponse represents a stored patient record in responses
type PatientResponse struct {
	PatientID  string   `json:"patient_id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Conditions []string `json:"conditions"`
	Allergies  []string `json:"allergies"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// PatientListResponse is one page of an enumeration. NextKey is absent on the
// final page.
type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	NextKey  string            `json:"next_key,omitempty"`
}
