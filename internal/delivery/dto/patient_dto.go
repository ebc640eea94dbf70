package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Email          string  `json:"email" validate:"required,email,max=255"`
	Password       string  `json:"password" validate:"required,min=6,maxbytes=72"`
	FirstName      string  `json:"firstName" validate:"required,max=100"`
	LastName       string  `json:"lastName" validate:"required,max=100"`
	SecondLastName *string `json:"secondLastName,omitempty" validate:"omitempty,max=100"`
	MedicalProfileRequest
}

// UpdatePatientRequest replaces only the fields that are present. Email is not updatable.
type UpdatePatientRequest struct {
	Password           *string  `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	FirstName          *string  `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName           *string  `json:"lastName" validate:"omitempty,min=1,max=100"`
	SecondLastName     *string  `json:"secondLastName" validate:"omitempty,max=100"`
	DiabetesType       *string  `json:"diabetesType" validate:"omitempty,oneof=TYPE_1 TYPE_2 GESTATIONAL"`
	DiagnosisYear      *int     `json:"diagnosisYear" validate:"omitempty,gte=1900,notfuture"`
	HasHypertension    *bool    `json:"hasHypertension"`
	BirthDate          *string  `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Gender             *string  `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Height             *float64 `json:"height" validate:"omitempty,gte=50,lte=250"`
	Weight             *float64 `json:"weight" validate:"omitempty,gte=20,lte=300"`
	MedicalHistory     *string  `json:"medicalHistory"`
	CurrentMedications *string  `json:"currentMedications"`
	Allergies          *string  `json:"allergies"`
	EmergencyContact   *string  `json:"emergencyContact" validate:"omitempty,max=255"`
	EmergencyPhone     *string  `json:"emergencyPhone" validate:"omitempty,max=50"`
	IsActive           *bool    `json:"isActive"`
}

// Response DTOs

type PatientResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      *string   `json:"firstName"`
	LastName       *string   `json:"lastName"`
	SecondLastName *string   `json:"secondLastName"`
	*MedicalProfileResponse
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

// PatientSummaryResponse is the compact patient view listed under a doctor.
type PatientSummaryResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      *string   `json:"firstName"`
	LastName       *string   `json:"lastName"`
	SecondLastName *string   `json:"secondLastName"`
	DiabetesType   *string   `json:"diabetesType"`
	DiagnosisYear  *int      `json:"diagnosisYear"`
}

// DeactivatedResponse is returned after a soft delete.
type DeactivatedResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      *string   `json:"firstName"`
	LastName       *string   `json:"lastName"`
	SecondLastName *string   `json:"secondLastName"`
	IsActive       bool      `json:"isActive"`
}

type HypertensionStats struct {
	WithHypertension    int64 `json:"withHypertension"`
	WithoutHypertension int64 `json:"withoutHypertension"`
}

type PatientStatsResponse struct {
	TotalPatients     int64             `json:"totalPatients"`
	DiabetesTypeStats map[string]int64  `json:"diabetesTypeStats"`
	HypertensionStats HypertensionStats `json:"hypertensionStats"`
	AverageHeight     float64           `json:"averageHeight"`
	AverageWeight     float64           `json:"averageWeight"`
}
