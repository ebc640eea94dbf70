package entity

import "time"

type DiabetesType string

const (
	DiabetesType1           DiabetesType = "TYPE_1"
	DiabetesType2           DiabetesType = "TYPE_2"
	DiabetesTypeGestational DiabetesType = "GESTATIONAL"
	// DiabetesTypeMODY is only reported by statistics; registration does not accept it.
	DiabetesTypeMODY DiabetesType = "MODY"
)

// DiabetesTypes lists every bucket reported by patient statistics.
var DiabetesTypes = []DiabetesType{
	DiabetesType1,
	DiabetesType2,
	DiabetesTypeGestational,
	DiabetesTypeMODY,
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// DateLayout is the wire and storage format of birth dates.
const DateLayout = "2006-01-02"

// MedicalProfile is the medical subset of a patient record.
type MedicalProfile struct {
	DiabetesType       DiabetesType
	DiagnosisYear      int
	HasHypertension    bool
	BirthDate          time.Time
	Gender             Gender
	Height             float64
	Weight             float64
	MedicalHistory     *string
	CurrentMedications *string
	Allergies          *string
	EmergencyContact   *string
	EmergencyPhone     *string
}
