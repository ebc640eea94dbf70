package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email           string   `json:"email" validate:"required,email,max=255"`
	Password        string   `json:"password" validate:"required,min=6,maxbytes=72"`
	FirstName       string   `json:"firstName" validate:"required,max=100"`
	LastName        string   `json:"lastName" validate:"required,max=100"`
	SecondLastName  *string  `json:"secondLastName,omitempty" validate:"omitempty,max=100"`
	MedicalLicense  string   `json:"medicalLicense" validate:"required,max=50"`
	Specialty       string   `json:"specialty" validate:"required,max=100"`
	Specializations []string `json:"specializations,omitempty" validate:"omitempty,dive,required"`
	Institution     *string  `json:"institution,omitempty" validate:"omitempty,max=255"`
	Phone           *string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	Bio             *string  `json:"bio,omitempty"`
}

type UpdateDoctorRequest struct {
	Password        *string  `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	FirstName       *string  `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName        *string  `json:"lastName" validate:"omitempty,min=1,max=100"`
	SecondLastName  *string  `json:"secondLastName" validate:"omitempty,max=100"`
	MedicalLicense  *string  `json:"medicalLicense" validate:"omitempty,min=1,max=50"`
	Specialty       *string  `json:"specialty" validate:"omitempty,min=1,max=100"`
	Specializations []string `json:"specializations" validate:"omitempty,dive,required"`
	Institution     *string  `json:"institution" validate:"omitempty,max=255"`
	Phone           *string  `json:"phone" validate:"omitempty,max=50"`
	Bio             *string  `json:"bio"`
	IsActive        *bool    `json:"isActive"`
}

// Response DTOs

type DoctorProfileResponse struct {
	MedicalLicense  string   `json:"medicalLicense"`
	Specialty       string   `json:"specialty"`
	Specializations []string `json:"specializations"`
	Institution     *string  `json:"institution,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
}

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      *string   `json:"firstName"`
	LastName       *string   `json:"lastName"`
	SecondLastName *string   `json:"secondLastName"`
	Role           string    `json:"role"`
	*DoctorProfileResponse
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type DoctorStatsResponse struct {
	TotalDoctors    int64 `json:"totalDoctors"`
	ActiveDoctors   int64 `json:"activeDoctors"`
	InactiveDoctors int64 `json:"inactiveDoctors"`
}

type DoctorPatientsResponse struct {
	DoctorID uuid.UUID                `json:"doctorId"`
	Patients []PatientSummaryResponse `json:"patients"`
	Total    int                      `json:"total"`
}
