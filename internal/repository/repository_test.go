package repository

import (
	"testing"

	"dabetai-api/internal/domain/entity"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: opens its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(&entity.User{}, &entity.DoctorProfile{}, &entity.DoctorPatient{}, &entity.AuditLog{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func strPtr(s string) *string {
	return &s
}

func newTestUser(email string, role entity.Role) *entity.User {
	return &entity.User{
		Email:     email,
		Password:  "hashed_password",
		Role:      role,
		FirstName: strPtr("Ana"),
		LastName:  strPtr("Lopez"),
		IsActive:  true,
	}
}
