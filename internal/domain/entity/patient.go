package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Patient is the single record type held by the primary store.
// PatientID is generated by the service at creation time and never changes.
type Patient struct {
	PatientID  string     `gorm:"type:uuid;primaryKey" json:"patient_id"`
	Name       string     `gorm:"type:text;not null" json:"name"`
	Address    string     `gorm:"type:text;not null;index:idx_patients_address" json:"address"`
	Conditions StringList `gorm:"type:jsonb;not null" json:"conditions"`
	Allergies  StringList `gorm:"type:jsonb;not null" json:"allergies"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// StringList is an ordered list of free-text strings stored as JSONB
type StringList []string

// Value returns json value, implement driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// Scan scans a JSONB value into StringList, implements sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*l = StringList(result)
	return nil
}
