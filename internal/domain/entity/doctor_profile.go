package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// DoctorProfile holds doctor-specific data keyed by the doctor's user id.
type DoctorProfile struct {
	UserID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MedicalLicense  string     `gorm:"type:varchar(50);uniqueIndex;not null"`
	Specialty       string     `gorm:"type:varchar(100);not null;index"`
	Specializations StringList `gorm:"type:jsonb"`
	Institution     *string    `gorm:"type:varchar(255)"`
	Phone           *string    `gorm:"type:varchar(50)"`
	Bio             *string    `gorm:"type:text"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// StringList stores a list of strings as a JSON array column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
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
		return fmt.Errorf("failed to unmarshal string list value: %v", value)
	}

	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*l = result
	return nil
}
