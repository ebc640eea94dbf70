package usecase

import (
	"context"
	"errors"

	"dabetai-api/internal/converter"
	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/domain/entity"
	"dabetai-api/internal/domain/repository"
	"dabetai-api/internal/service"
	"dabetai-api/pkg/password"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	FindAll(ctx context.Context) (*dto.PatientListResponse, error)
	FindOne(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Remove(ctx context.Context, id uuid.UUID) (*dto.DeactivatedResponse, error)
	Stats(ctx context.Context) (*dto.PatientStatsResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	tokenStore   service.TokenStore
	hasher       *password.Hasher
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
	hasher *password.Hasher,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		tokenStore:   tokenStore,
		hasher:       hasher,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	medical, err := converter.MedicalRequestToProfile(req.MedicalProfileRequest)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := converter.NewUser(req.Email, hashedPassword, entity.RolePatient, req.FirstName, req.LastName, "")
	user.SecondLastName = req.SecondLastName
	user.SetMedicalProfile(medical)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	response := converter.ToPatientResponse(user)
	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionPatientCreate, "patient", user.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *patientUsecase) FindAll(ctx context.Context) (*dto.PatientListResponse, error) {
	users, err := u.userRepo.ListByRole(ctx, u.db, entity.RolePatient, false)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.ToPatientResponses(users),
		Total:    len(users),
	}, nil
}

func (u *patientUsecase) FindOne(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, id, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrPatientNotFound
	}

	return converter.ToPatientResponse(user), nil
}

func (u *patientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patch, err := converter.UpdatePatientRequestToPatch(req)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	if req.Password != nil {
		hashedPassword, err := u.hasher.Hash(*req.Password)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		patch.Password = &hashedPassword
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	before, err := u.userRepo.FindByID(ctx, tx, id, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if before == nil {
		return nil, ErrPatientNotFound
	}

	user, err := u.userRepo.Update(ctx, tx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	response := converter.ToPatientResponse(user)
	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionPatientUpdate, "patient", id.String(), converter.ToPatientResponse(before), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive {
		revokeSessions(ctx, u.log, u.tokenStore, id)
	}

	return response, nil
}

func (u *patientUsecase) Remove(ctx context.Context, id uuid.UUID) (*dto.DeactivatedResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	before, err := u.userRepo.FindByID(ctx, tx, id, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if before == nil {
		return nil, ErrPatientNotFound
	}

	user, err := u.userRepo.Deactivate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to deactivate patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionPatientDelete, "patient", id.String(), converter.ToPatientResponse(before)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	revokeSessions(ctx, u.log, u.tokenStore, id)

	return converter.ToDeactivatedResponse(user), nil
}

func (u *patientUsecase) Stats(ctx context.Context) (*dto.PatientStatsResponse, error) {
	active := true
	filter := entity.UserFilter{Role: entity.RolePatient, IsActive: &active}

	total, err := u.userRepo.Count(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	byType, err := u.userRepo.GroupByCount(ctx, u.db, "diabetes_type", filter)
	if err != nil {
		u.log.Warnf("Failed to group patients by diabetes type: %+v", err)
		return nil, err
	}
	diabetesTypeStats := make(map[string]int64, len(entity.DiabetesTypes))
	for _, diabetesType := range entity.DiabetesTypes {
		diabetesTypeStats[string(diabetesType)] = byType[string(diabetesType)]
	}

	withHypertension, err := u.countHypertension(ctx, filter, true)
	if err != nil {
		return nil, err
	}
	withoutHypertension, err := u.countHypertension(ctx, filter, false)
	if err != nil {
		return nil, err
	}

	avgHeight, avgWeight, err := u.userRepo.Averages(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to average patient measurements: %+v", err)
		return nil, err
	}

	return &dto.PatientStatsResponse{
		TotalPatients:     total,
		DiabetesTypeStats: diabetesTypeStats,
		HypertensionStats: dto.HypertensionStats{
			WithHypertension:    withHypertension,
			WithoutHypertension: withoutHypertension,
		},
		AverageHeight: round2(avgHeight),
		AverageWeight: round2(avgWeight),
	}, nil
}

func (u *patientUsecase) countHypertension(ctx context.Context, filter entity.UserFilter, hasHypertension bool) (int64, error) {
	filter.HasHypertension = &hasHypertension
	count, err := u.userRepo.Count(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to count patients by hypertension: %+v", err)
		return 0, err
	}
	return count, nil
}

func round2(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}
