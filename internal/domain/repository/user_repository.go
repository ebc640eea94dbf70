package repository

import (
	"context"

	"dabetai-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository persists identity records. Reads return nil, nil when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID, roles ...entity.Role) (*entity.User, error)
	Update(ctx context.Context, db *gorm.DB, id uuid.UUID, patch entity.UserPatch) (*entity.User, error)
	List(ctx context.Context, db *gorm.DB) ([]entity.User, error)
	ListByRole(ctx context.Context, db *gorm.DB, role entity.Role, onlyActive bool) ([]entity.User, error)
	ListDoctorsBySpecialty(ctx context.Context, db *gorm.DB, specialty string) ([]entity.User, error)
	Deactivate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	Count(ctx context.Context, db *gorm.DB, filter entity.UserFilter) (int64, error)
	GroupByCount(ctx context.Context, db *gorm.DB, column string, filter entity.UserFilter) (map[string]int64, error)
	Averages(ctx context.Context, db *gorm.DB, filter entity.UserFilter) (avgHeight, avgWeight float64, err error)
}
