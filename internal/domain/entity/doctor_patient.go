package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorPatient links a doctor to a patient under their care.
type DoctorPatient struct {
	DoctorID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	PatientID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Patient User `gorm:"foreignKey:PatientID"`
}

func (DoctorPatient) TableName() string {
	return "doctor_patients"
}
