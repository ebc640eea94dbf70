package converter

import (
	"time"

	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/domain/entity"
)

// ToPatientResponse is the patient view used by the patients resource.
func ToPatientResponse(user *entity.User) *dto.PatientResponse {
	if user == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                     user.ID,
		Email:                  user.Email,
		FirstName:              user.FirstName,
		LastName:               user.LastName,
		SecondLastName:         user.SecondLastName,
		MedicalProfileResponse: ToMedicalProfileResponse(user),
		IsActive:               user.IsActive,
		CreatedAt:              user.CreatedAt,
		UpdatedAt:              user.UpdatedAt,
	}
}

func ToPatientResponses(users []entity.User) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(users))
	for i := range users {
		responses[i] = *ToPatientResponse(&users[i])
	}
	return responses
}

// ToPatientSummary is the compact view listed under a doctor.
func ToPatientSummary(user *entity.User) dto.PatientSummaryResponse {
	summary := dto.PatientSummaryResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		SecondLastName: user.SecondLastName,
		DiagnosisYear:  user.DiagnosisYear,
	}
	if user.DiabetesType != nil {
		diabetesType := string(*user.DiabetesType)
		summary.DiabetesType = &diabetesType
	}
	return summary
}

func ToPatientSummaries(users []entity.User) []dto.PatientSummaryResponse {
	responses := make([]dto.PatientSummaryResponse, len(users))
	for i := range users {
		responses[i] = ToPatientSummary(&users[i])
	}
	return responses
}

// ToDeactivatedResponse is returned by soft deletes.
func ToDeactivatedResponse(user *entity.User) *dto.DeactivatedResponse {
	if user == nil {
		return nil
	}

	return &dto.DeactivatedResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		SecondLastName: user.SecondLastName,
		IsActive:       user.IsActive,
	}
}

// UpdatePatientRequestToPatch maps the fields present in the payload.
// Password is hashed by the caller.
func UpdatePatientRequestToPatch(req *dto.UpdatePatientRequest) (entity.UserPatch, error) {
	patch := entity.UserPatch{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		SecondLastName:     req.SecondLastName,
		IsActive:           req.IsActive,
		DiagnosisYear:      req.DiagnosisYear,
		HasHypertension:    req.HasHypertension,
		Height:             req.Height,
		Weight:             req.Weight,
		MedicalHistory:     req.MedicalHistory,
		CurrentMedications: req.CurrentMedications,
		Allergies:          req.Allergies,
		EmergencyContact:   req.EmergencyContact,
		EmergencyPhone:     req.EmergencyPhone,
	}
	if req.DiabetesType != nil {
		diabetesType := entity.DiabetesType(*req.DiabetesType)
		patch.DiabetesType = &diabetesType
	}
	if req.Gender != nil {
		gender := entity.Gender(*req.Gender)
		patch.Gender = &gender
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse(entity.DateLayout, *req.BirthDate)
		if err != nil {
			return entity.UserPatch{}, err
		}
		patch.BirthDate = &birthDate
	}
	return patch, nil
}
