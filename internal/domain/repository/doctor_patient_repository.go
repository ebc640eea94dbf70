package repository

import (
	"context"

	"dabetai-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorPatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, link *entity.DoctorPatient) error
	Delete(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) (int64, error)
	FindPatients(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.User, error)
}
