package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"dabetai-api/config"
	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/delivery/http/middleware"
	"dabetai-api/internal/domain/entity"
	"dabetai-api/internal/repository"
	"dabetai-api/internal/service"
	"dabetai-api/pkg/jwt"
	"dabetai-api/pkg/password"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db         *gorm.DB
	redis      *miniredis.Miniredis
	tokenStore service.TokenStore
	jwtService *jwt.JWTService

	auth     AuthUsecase
	patients PatientUsecase
	doctors  DoctorUsecase
	users    UserUsecase
	audit    AuditLogUsecase
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.DoctorProfile{}, &entity.DoctorPatient{}, &entity.AuditLog{}))

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
		_ = sqlDB.Close()
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	hasher := password.NewHasher(config.PasswordConfig{Cost: 4})
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	tokenStore := service.NewRedisTokenStore(client)

	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	doctorPatientRepo := repository.NewDoctorPatientRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditLogRepo)

	return &testEnv{
		db:         db,
		redis:      mr,
		tokenStore: tokenStore,
		jwtService: jwtService,
		auth:       NewAuthUsecase(db, log, userRepo, auditService, tokenStore, jwtService, hasher),
		patients:   NewPatientUsecase(db, log, userRepo, auditService, tokenStore, hasher),
		doctors:    NewDoctorUsecase(db, log, userRepo, doctorProfileRepo, doctorPatientRepo, auditService, tokenStore, hasher),
		users:      NewUserUsecase(db, log, userRepo, auditService, tokenStore, hasher),
		audit:      NewAuditLogUsecase(db, log, auditLogRepo),
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func adminContext() context.Context {
	return middleware.WithIdentity(context.Background(), uuid.New(), "admin@example.com", entity.RoleAdmin, "admin-token")
}

func doctorContext(doctorID uuid.UUID) context.Context {
	return middleware.WithIdentity(context.Background(), doctorID, "doctor@example.com", entity.RoleDoctor, "doctor-token")
}

func medicalRequest(diabetesType string, hypertension bool, height, weight float64) dto.MedicalProfileRequest {
	return dto.MedicalProfileRequest{
		DiabetesType:    diabetesType,
		DiagnosisYear:   2018,
		HasHypertension: boolPtr(hypertension),
		BirthDate:       "1990-05-15",
		Gender:          "FEMALE",
		Height:          height,
		Weight:          weight,
	}
}

func registerRequest(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:          email,
		Password:       "secret123",
		FirstName:      "Ana",
		LastName:       "Lopez",
		SecondLastName: "Garcia",
	}
}

func createPatientRequest(email string, medical dto.MedicalProfileRequest) *dto.CreatePatientRequest {
	return &dto.CreatePatientRequest{
		Email:                 email,
		Password:              "secret123",
		FirstName:             "Luis",
		LastName:              "Perez",
		MedicalProfileRequest: medical,
	}
}

func createDoctorRequest(email, license, specialty string) *dto.CreateDoctorRequest {
	return &dto.CreateDoctorRequest{
		Email:          email,
		Password:       "secret123",
		FirstName:      "Maria",
		LastName:       "Ruiz",
		MedicalLicense: license,
		Specialty:      specialty,
	}
}

func countAuditLogs(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", action).Count(&count).Error)
	return count
}
