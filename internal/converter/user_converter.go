package converter

import (
	"time"

	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/domain/entity"
)

// ToPublicUser projects the identity fields every auth response carries.
func ToPublicUser(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		SecondLastName: user.SecondLastName,
		Role:           user.Role.String(),
	}
}

// ToMedicalUser adds the medical subset to the public projection.
func ToMedicalUser(user *entity.User) *dto.UserResponse {
	response := ToPublicUser(user)
	if response == nil {
		return nil
	}
	response.MedicalProfileResponse = ToMedicalProfileResponse(user)
	return response
}

// ToBasicRegisteredUser is the projection after step one of onboarding.
func ToBasicRegisteredUser(user *entity.User) *dto.UserResponse {
	response := ToPublicUser(user)
	if response == nil {
		return nil
	}
	complete := false
	response.IsProfileComplete = &complete
	return response
}

// ToCompletedProfileUser is the projection after step two of onboarding.
func ToCompletedProfileUser(user *entity.User) *dto.UserResponse {
	response := ToMedicalUser(user)
	if response == nil {
		return nil
	}
	complete := true
	response.IsProfileComplete = &complete
	return response
}

func ToMedicalProfileResponse(user *entity.User) *dto.MedicalProfileResponse {
	response := &dto.MedicalProfileResponse{
		DiagnosisYear:      user.DiagnosisYear,
		HasHypertension:    user.HasHypertension,
		Height:             user.Height,
		Weight:             user.Weight,
		MedicalHistory:     user.MedicalHistory,
		CurrentMedications: user.CurrentMedications,
		Allergies:          user.Allergies,
		EmergencyContact:   user.EmergencyContact,
		EmergencyPhone:     user.EmergencyPhone,
	}
	if user.DiabetesType != nil {
		diabetesType := string(*user.DiabetesType)
		response.DiabetesType = &diabetesType
	}
	if user.Gender != nil {
		gender := string(*user.Gender)
		response.Gender = &gender
	}
	if user.BirthDate != nil {
		birthDate := user.BirthDate.Format(entity.DateLayout)
		response.BirthDate = &birthDate
	}
	return response
}

// ToAdminUserResponse is the account-level projection for user management.
func ToAdminUserResponse(user *entity.User) *dto.AdminUserResponse {
	if user == nil {
		return nil
	}

	return &dto.AdminUserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		SecondLastName: user.SecondLastName,
		Role:           user.Role.String(),
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func ToAdminUserResponses(users []entity.User) []dto.AdminUserResponse {
	responses := make([]dto.AdminUserResponse, len(users))
	for i := range users {
		responses[i] = *ToAdminUserResponse(&users[i])
	}
	return responses
}

// MedicalRequestToProfile parses the medical payload into the domain shape.
func MedicalRequestToProfile(req dto.MedicalProfileRequest) (entity.MedicalProfile, error) {
	birthDate, err := time.Parse(entity.DateLayout, req.BirthDate)
	if err != nil {
		return entity.MedicalProfile{}, err
	}

	var hasHypertension bool
	if req.HasHypertension != nil {
		hasHypertension = *req.HasHypertension
	}

	return entity.MedicalProfile{
		DiabetesType:       entity.DiabetesType(req.DiabetesType),
		DiagnosisYear:      req.DiagnosisYear,
		HasHypertension:    hasHypertension,
		BirthDate:          birthDate,
		Gender:             entity.Gender(req.Gender),
		Height:             req.Height,
		Weight:             req.Weight,
		MedicalHistory:     req.MedicalHistory,
		CurrentMedications: req.CurrentMedications,
		Allergies:          req.Allergies,
		EmergencyContact:   req.EmergencyContact,
		EmergencyPhone:     req.EmergencyPhone,
	}, nil
}

// UpdateUserRequestToPatch maps the admin payload. Password is hashed by the caller.
func UpdateUserRequestToPatch(req *dto.UpdateUserRequest) entity.UserPatch {
	return entity.UserPatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		SecondLastName: req.SecondLastName,
		IsActive:       req.IsActive,
	}
}

// optionalString turns an empty string into nil.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NewUser builds an unsaved user from registration fields.
func NewUser(email, passwordHash string, role entity.Role, firstName, lastName, secondLastName string) *entity.User {
	return &entity.User{
		Email:          email,
		Password:       passwordHash,
		Role:           role,
		FirstName:      optionalString(firstName),
		LastName:       optionalString(lastName),
		SecondLastName: optionalString(secondLastName),
		IsActive:       true,
	}
}
