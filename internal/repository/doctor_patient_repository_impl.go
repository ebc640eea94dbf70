package repository

import (
	"context"

	"dabetai-api/internal/domain/entity"
	domainRepo "dabetai-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorPatientRepository struct{}

func NewDoctorPatientRepository() domainRepo.DoctorPatientRepository {
	return &doctorPatientRepository{}
}

func (r *doctorPatientRepository) Create(ctx context.Context, db *gorm.DB, link *entity.DoctorPatient) error {
	return translateError(db.WithContext(ctx).Omit("Patient").Create(link).Error)
}

func (r *doctorPatientRepository) Delete(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Delete(&entity.DoctorPatient{})
	return result.RowsAffected, result.Error
}

// FindPatients returns the active patients linked to the doctor.
func (r *doctorPatientRepository) FindPatients(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.User, error) {
	var patients []entity.User
	err := db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN doctor_patients ON doctor_patients.patient_id = users.id").
		Where("doctor_patients.doctor_id = ?", doctorID).
		Where("users.role = ? AND users.is_active = ?", entity.RolePatient, true).
		Order("doctor_patients.created_at").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}
