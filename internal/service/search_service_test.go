package service

import (
	"testing"
	"time"

	"patient-record-service/internal/domain/entity"

	"github.com/stretchr/testify/require"
)

func TestBuildConditionQuery(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		want      string
	}{
		{"single term", "Diabetes", "%Diabetes%"},
		{"multiple terms", "type 2 diabetes", "%type% 2 %diabetes%"},
		{"short terms stay exact", "flu", "%flu%"},
		{"two letter term", "ms", "ms"},
		{"syntax characters dropped", "heart-failure (chronic)", "%heartfailure% %chronic%"},
		{"only syntax characters", "()|@", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, buildConditionQuery(tt.condition))
		})
	}
}

func TestDocRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	patient := &entity.Patient{
		PatientID:  "3f8c2c1e-0b52-4a3e-9be2-8f0f4f3a6f11",
		Name:       "John Doe",
		Address:    "123 Main St",
		Conditions: entity.StringList{"Diabetes", "Hypertension"},
		Allergies:  entity.StringList{"Penicillin"},
		CreatedAt:  created,
		UpdatedAt:  created.Add(time.Hour),
	}

	doc, err := patientToDoc(patient)
	require.NoError(t, err)

	fields := make(map[string]string, len(doc))
	for k, v := range doc {
		fields[k] = v.(string)
	}

	decoded, err := docToPatient(fields)
	require.NoError(t, err)
	require.Equal(t, *patient, decoded)
}

func TestDocToPatient_MalformedTimestamps(t *testing.T) {
	_, err := docToPatient(map[string]string{
		"patient_id": "p1",
		"created_at": "yesterday",
	})
	require.Error(t, err)
}

func TestPatientDocKey(t *testing.T) {
	require.Equal(t, "patient:doc:p1", patientDocKey("p1"))
}
