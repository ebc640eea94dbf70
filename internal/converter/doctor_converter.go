package converter

import (
	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/domain/entity"
)

// ToDoctorResponse projects a doctor user and its profile, if loaded.
func ToDoctorResponse(user *entity.User) *dto.DoctorResponse {
	if user == nil {
		return nil
	}

	response := &dto.DoctorResponse{
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

	if profile := user.DoctorProfile; profile != nil {
		specializations := []string(profile.Specializations)
		if specializations == nil {
			specializations = []string{}
		}
		response.DoctorProfileResponse = &dto.DoctorProfileResponse{
			MedicalLicense:  profile.MedicalLicense,
			Specialty:       profile.Specialty,
			Specializations: specializations,
			Institution:     profile.Institution,
			Phone:           profile.Phone,
			Bio:             profile.Bio,
		}
	}

	return response
}

func ToDoctorResponses(users []entity.User) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(users))
	for i := range users {
		responses[i] = *ToDoctorResponse(&users[i])
	}
	return responses
}

// CreateDoctorRequestToProfile builds the profile row; UserID is filled on insert.
func CreateDoctorRequestToProfile(req *dto.CreateDoctorRequest) *entity.DoctorProfile {
	return &entity.DoctorProfile{
		MedicalLicense:  req.MedicalLicense,
		Specialty:       req.Specialty,
		Specializations: entity.StringList(req.Specializations),
		Institution:     req.Institution,
		Phone:           req.Phone,
		Bio:             req.Bio,
	}
}

// ApplyDoctorProfileUpdate copies the profile fields present in req onto profile.
// It reports whether anything changed.
func ApplyDoctorProfileUpdate(profile *entity.DoctorProfile, req *dto.UpdateDoctorRequest) bool {
	changed := false
	if req.MedicalLicense != nil {
		profile.MedicalLicense = *req.MedicalLicense
		changed = true
	}
	if req.Specialty != nil {
		profile.Specialty = *req.Specialty
		changed = true
	}
	if req.Specializations != nil {
		profile.Specializations = entity.StringList(req.Specializations)
		changed = true
	}
	if req.Institution != nil {
		profile.Institution = req.Institution
		changed = true
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
		changed = true
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
		changed = true
	}
	return changed
}

// UpdateDoctorRequestToPatch maps the user-level fields. Password is hashed by the caller.
func UpdateDoctorRequestToPatch(req *dto.UpdateDoctorRequest) entity.UserPatch {
	return entity.UserPatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		SecondLastName: req.SecondLastName,
		IsActive:       req.IsActive,
	}
}
