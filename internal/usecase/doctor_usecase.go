package usecase

import (
	"context"
	"errors"

	"dabetai-api/internal/converter"
	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/delivery/http/middleware"
	"dabetai-api/internal/domain/entity"
	"dabetai-api/internal/domain/repository"
	"dabetai-api/internal/service"
	"dabetai-api/pkg/password"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound         = errors.New("doctor not found")
	ErrMedicalLicenseExists   = errors.New("medical license already exists")
	ErrPatientAlreadyAssigned = errors.New("patient already assigned to doctor")
	ErrAssignmentNotFound     = errors.New("patient is not assigned to doctor")
)

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	FindAll(ctx context.Context) (*dto.DoctorListResponse, error)
	FindOne(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	FindBySpecialty(ctx context.Context, specialty string) (*dto.DoctorListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Remove(ctx context.Context, id uuid.UUID) (*dto.DeactivatedResponse, error)
	Stats(ctx context.Context) (*dto.DoctorStatsResponse, error)
	FindPatients(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorPatientsResponse, error)
	AssignPatient(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.PatientSummaryResponse, error)
	UnassignPatient(ctx context.Context, doctorID, patientID uuid.UUID) error
}

type doctorUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	doctorPatientRepo repository.DoctorPatientRepository
	auditService      service.AuditService
	tokenStore        service.TokenStore
	hasher            *password.Hasher
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	doctorPatientRepo repository.DoctorPatientRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
	hasher *password.Hasher,
) DoctorUsecase {
	return &doctorUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		doctorPatientRepo: doctorPatientRepo,
		auditService:      auditService,
		tokenStore:        tokenStore,
		hasher:            hasher,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := converter.NewUser(req.Email, hashedPassword, entity.RoleDoctor, req.FirstName, req.LastName, "")
	user.SecondLastName = req.SecondLastName

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	profile := converter.CreateDoctorRequestToProfile(req)
	profile.UserID = user.ID
	if err := u.doctorProfileRepo.Create(ctx, tx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrMedicalLicenseExists
		}
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}
	user.DoctorProfile = profile

	response := converter.ToDoctorResponse(user)
	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionDoctorCreate, "doctor", user.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *doctorUsecase) FindAll(ctx context.Context) (*dto.DoctorListResponse, error) {
	users, err := u.userRepo.ListByRole(ctx, u.db, entity.RoleDoctor, false)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.ToDoctorResponses(users),
		Total:   len(users),
	}, nil
}

func (u *doctorUsecase) FindOne(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, id, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.ToDoctorResponse(user), nil
}

// FindBySpecialty lists active doctors whose specialty matches, ignoring case.
func (u *doctorUsecase) FindBySpecialty(ctx context.Context, specialty string) (*dto.DoctorListResponse, error) {
	users, err := u.userRepo.ListDoctorsBySpecialty(ctx, u.db, specialty)
	if err != nil {
		u.log.Warnf("Failed to find doctors by specialty: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.ToDoctorResponses(users),
		Total:   len(users),
	}, nil
}

func (u *doctorUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	patch := converter.UpdateDoctorRequestToPatch(req)
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

	before, err := u.userRepo.FindByID(ctx, tx, id, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if before == nil {
		return nil, ErrDoctorNotFound
	}
	oldValue := converter.ToDoctorResponse(before)

	if _, err := u.userRepo.Update(ctx, tx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	if err := u.updateProfile(ctx, tx, before, req); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, tx, id, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrDoctorNotFound
	}

	response := converter.ToDoctorResponse(user)
	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionDoctorUpdate, "doctor", id.String(), oldValue, response); err != nil {
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

// updateProfile writes the doctor profile fields of req, creating the profile
// row when the doctor has none yet.
func (u *doctorUsecase) updateProfile(ctx context.Context, tx *gorm.DB, doctor *entity.User, req *dto.UpdateDoctorRequest) error {
	profile := doctor.DoctorProfile
	isNew := profile == nil
	if isNew {
		profile = &entity.DoctorProfile{UserID: doctor.ID}
	}

	if !converter.ApplyDoctorProfileUpdate(profile, req) {
		return nil
	}

	var err error
	if isNew {
		err = u.doctorProfileRepo.Create(ctx, tx, profile)
	} else {
		err = u.doctorProfileRepo.Update(ctx, tx, profile)
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return ErrMedicalLicenseExists
		}
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return err
	}
	return nil
}

func (u *doctorUsecase) Remove(ctx context.Context, id uuid.UUID) (*dto.DeactivatedResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	before, err := u.userRepo.FindByID(ctx, tx, id, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if before == nil {
		return nil, ErrDoctorNotFound
	}

	user, err := u.userRepo.Deactivate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to deactivate doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionDoctorDelete, "doctor", id.String(), converter.ToDoctorResponse(before)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	revokeSessions(ctx, u.log, u.tokenStore, id)

	return converter.ToDeactivatedResponse(user), nil
}

func (u *doctorUsecase) Stats(ctx context.Context) (*dto.DoctorStatsResponse, error) {
	total, err := u.userRepo.Count(ctx, u.db, entity.UserFilter{Role: entity.RoleDoctor})
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	active := true
	activeDoctors, err := u.userRepo.Count(ctx, u.db, entity.UserFilter{Role: entity.RoleDoctor, IsActive: &active})
	if err != nil {
		u.log.Warnf("Failed to count active doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorStatsResponse{
		TotalDoctors:    total,
		ActiveDoctors:   activeDoctors,
		InactiveDoctors: total - activeDoctors,
	}, nil
}

func (u *doctorUsecase) FindPatients(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorPatientsResponse, error) {
	doctor, err := u.userRepo.FindByID(ctx, u.db, doctorID, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patients, err := u.doctorPatientRepo.FindPatients(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor patients: %+v", err)
		return nil, err
	}

	return &dto.DoctorPatientsResponse{
		DoctorID: doctorID,
		Patients: converter.ToPatientSummaries(patients),
		Total:    len(patients),
	}, nil
}

func (u *doctorUsecase) AssignPatient(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.PatientSummaryResponse, error) {
	if err := ensureOwnDoctorScope(ctx, doctorID); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.userRepo.FindByID(ctx, tx, doctorID, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil || !doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.userRepo.FindByID(ctx, tx, patientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil || !patient.IsActive {
		return nil, ErrPatientNotFound
	}

	link := &entity.DoctorPatient{DoctorID: doctorID, PatientID: patientID}
	if err := u.doctorPatientRepo.Create(ctx, tx, link); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrPatientAlreadyAssigned
		}
		u.log.Warnf("Failed to assign patient: %+v", err)
		return nil, err
	}

	summary := converter.ToPatientSummary(patient)
	if err := u.auditService.LogCreate(ctx, tx, actorFromContext(ctx), entity.AuditActionDoctorAssign, "doctor_patient", doctorID.String(), summary); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &summary, nil
}

func (u *doctorUsecase) UnassignPatient(ctx context.Context, doctorID, patientID uuid.UUID) error {
	if err := ensureOwnDoctorScope(ctx, doctorID); err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	deleted, err := u.doctorPatientRepo.Delete(ctx, tx, doctorID, patientID)
	if err != nil {
		u.log.Warnf("Failed to unassign patient: %+v", err)
		return err
	}
	if deleted == 0 {
		return ErrAssignmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionDoctorUnassign, "doctor_patient", doctorID.String(), map[string]string{"patientId": patientID.String()}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// ensureOwnDoctorScope restricts doctors to their own patient list. Admins and
// calls without an authenticated caller are not restricted.
func ensureOwnDoctorScope(ctx context.Context, doctorID uuid.UUID) error {
	role, ok := middleware.GetRoleFromContext(ctx)
	if !ok || role != entity.RoleDoctor {
		return nil
	}
	callerID, _ := middleware.GetUserIDFromContext(ctx)
	if callerID != doctorID {
		return ErrForbidden
	}
	return nil
}
