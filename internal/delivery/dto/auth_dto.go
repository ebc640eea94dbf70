package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email,max=255"`
	Password       string `json:"password" validate:"required,min=6,maxbytes=72"`
	FirstName      string `json:"firstName" validate:"required,max=100"`
	LastName       string `json:"lastName" validate:"required,max=100"`
	SecondLastName string `json:"secondLastName" validate:"required,max=100"`
}

// BasicRegisterRequest is step one of the two-step onboarding.
type BasicRegisterRequest struct {
	RegisterRequest
}

// MedicalProfileRequest carries the medical fields shared by patient
// registration, profile completion and patient creation.
type MedicalProfileRequest struct {
	DiabetesType       string  `json:"diabetesType" validate:"required,oneof=TYPE_1 TYPE_2 GESTATIONAL"`
	DiagnosisYear      int     `json:"diagnosisYear" validate:"required,gte=1900,notfuture"`
	HasHypertension    *bool   `json:"hasHypertension" validate:"required"`
	BirthDate          string  `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Gender             string  `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Height             float64 `json:"height" validate:"required,gte=50,lte=250"`
	Weight             float64 `json:"weight" validate:"required,gte=20,lte=300"`
	MedicalHistory     *string `json:"medicalHistory,omitempty"`
	CurrentMedications *string `json:"currentMedications,omitempty"`
	Allergies          *string `json:"allergies,omitempty"`
	EmergencyContact   *string `json:"emergencyContact,omitempty" validate:"omitempty,max=255"`
	EmergencyPhone     *string `json:"emergencyPhone,omitempty" validate:"omitempty,max=50"`
}

type RegisterPatientRequest struct {
	RegisterRequest
	MedicalProfileRequest
}

// CompleteProfileRequest is step two of the two-step onboarding.
type CompleteProfileRequest struct {
	MedicalProfileRequest
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

// UserResponse is the public projection of a user. Medical fields and the
// completeness flag are only present for the flows that report them.
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      *string   `json:"firstName"`
	LastName       *string   `json:"lastName"`
	SecondLastName *string   `json:"secondLastName"`
	Role           string    `json:"role"`
	*MedicalProfileResponse
	IsProfileComplete *bool `json:"isProfileComplete,omitempty"`
}

type MedicalProfileResponse struct {
	DiabetesType       *string  `json:"diabetesType"`
	DiagnosisYear      *int     `json:"diagnosisYear"`
	HasHypertension    *bool    `json:"hasHypertension"`
	BirthDate          *string  `json:"birthDate"`
	Gender             *string  `json:"gender"`
	Height             *float64 `json:"height"`
	Weight             *float64 `json:"weight"`
	MedicalHistory     *string  `json:"medicalHistory,omitempty"`
	CurrentMedications *string  `json:"currentMedications,omitempty"`
	Allergies          *string  `json:"allergies,omitempty"`
	EmergencyContact   *string  `json:"emergencyContact,omitempty"`
	EmergencyPhone     *string  `json:"emergencyPhone,omitempty"`
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

type CompleteProfileResponse struct {
	User *UserResponse `json:"user"`
}

// ProfileClaimsResponse echoes the claims of the presented token.
type ProfileClaimsResponse struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}
