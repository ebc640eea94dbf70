package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dabetai-api/internal/domain/entity"
	domainRepo "dabetai-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// groupableColumns are the user columns statistics may bucket by.
var groupableColumns = map[string]bool{
	"diabetes_type": true,
	"gender":        true,
	"role":          true,
}

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	return translateError(db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with id. When roles are given, a user holding
// another role is treated as absent.
func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID, roles ...entity.Role) (*entity.User, error) {
	var user entity.User
	query := db.WithContext(ctx).Preload("DoctorProfile").Where("id = ?", id)
	if len(roles) > 0 {
		query = query.Where("role IN ?", roles)
	}
	err := query.First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, db *gorm.DB, id uuid.UUID, patch entity.UserPatch) (*entity.User, error) {
	columns := patch.Columns()
	if len(columns) > 0 {
		result := db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return nil, translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, domainRepo.ErrNotFound
		}
	}

	user, err := r.FindByID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainRepo.ErrNotFound
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context, db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	if err := db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListByRole(ctx context.Context, db *gorm.DB, role entity.Role, onlyActive bool) ([]entity.User, error) {
	var users []entity.User
	query := db.WithContext(ctx).Preload("DoctorProfile").Where("role = ?", role)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListDoctorsBySpecialty(ctx context.Context, db *gorm.DB, specialty string) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).
		Select("users.*").
		Preload("DoctorProfile").
		Joins("JOIN doctor_profiles ON doctor_profiles.user_id = users.id").
		Where("users.role = ? AND users.is_active = ?", entity.RoleDoctor, true).
		Where("LOWER(doctor_profiles.specialty) = LOWER(?)", specialty).
		Order("users.created_at").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Deactivate soft-deletes the user. Calling it on an inactive user is a no-op.
func (r *userRepository) Deactivate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	inactive := false
	return r.Update(ctx, db, id, entity.UserPatch{IsActive: &inactive})
}

func (r *userRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	return result.RowsAffected, result.Error
}

func (r *userRepository) Count(ctx context.Context, db *gorm.DB, filter entity.UserFilter) (int64, error) {
	var count int64
	err := applyFilter(db.WithContext(ctx).Model(&entity.User{}), filter).Count(&count).Error
	return count, err
}

// GroupByCount counts users per distinct value of column. NULL values are skipped.
func (r *userRepository) GroupByCount(ctx context.Context, db *gorm.DB, column string, filter entity.UserFilter) (map[string]int64, error) {
	if !groupableColumns[column] {
		return nil, fmt.Errorf("column %q cannot be grouped", column)
	}

	var rows []struct {
		Bucket sql.NullString
		Total  int64
	}
	err := applyFilter(db.WithContext(ctx).Model(&entity.User{}), filter).
		Select(column + " AS bucket, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		if !row.Bucket.Valid {
			continue
		}
		counts[row.Bucket.String] = row.Total
	}
	return counts, nil
}

// Averages returns the mean height and weight over users with both values set.
func (r *userRepository) Averages(ctx context.Context, db *gorm.DB, filter entity.UserFilter) (float64, float64, error) {
	var row struct {
		AvgHeight sql.NullFloat64
		AvgWeight sql.NullFloat64
	}
	err := applyFilter(db.WithContext(ctx).Model(&entity.User{}), filter).
		Where("height IS NOT NULL AND weight IS NOT NULL").
		Select("AVG(height) AS avg_height, AVG(weight) AS avg_weight").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.AvgHeight.Float64, row.AvgWeight.Float64, nil
}

func applyFilter(query *gorm.DB, filter entity.UserFilter) *gorm.DB {
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.HasHypertension != nil {
		query = query.Where("has_hypertension = ?", *filter.HasHypertension)
	}
	return query
}
