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
	"dabetai-api/pkg/jwt"
	"dabetai-api/pkg/password"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// fallbackDummyHash is a cost-10 hash, used only if hashing the dummy at the
// configured cost fails.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	BasicRegister(ctx context.Context, req *dto.BasicRegisterRequest) (*dto.AuthResponse, error)
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.AuthResponse, error)
	CompleteProfile(ctx context.Context, userID uuid.UUID, req *dto.CompleteProfileRequest) (*dto.CompleteProfileResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, tokenID string) error
	GetProfile(ctx context.Context) (*dto.ProfileClaimsResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	tokenStore   service.TokenStore
	jwtService   *jwt.JWTService
	hasher       *password.Hasher
	// dummyHash is compared against when the email is unknown so that both
	// failed-login paths spend the same bcrypt time.
	dummyHash string
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
	jwtService *jwt.JWTService,
	hasher *password.Hasher,
) AuthUsecase {
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		log.Warnf("Failed to hash dummy password: %+v", err)
		dummyHash = fallbackDummyHash
	}

	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		tokenStore:   tokenStore,
		jwtService:   jwtService,
		hasher:       hasher,
		dummyHash:    dummyHash,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	user := converter.NewUser(req.Email, "", entity.RoleUser, req.FirstName, req.LastName, req.SecondLastName)
	if err := u.createAccount(ctx, user, req.Password); err != nil {
		return nil, err
	}

	return u.authenticated(ctx, user, converter.ToPublicUser(user))
}

func (u *authUsecase) BasicRegister(ctx context.Context, req *dto.BasicRegisterRequest) (*dto.AuthResponse, error) {
	user := converter.NewUser(req.Email, "", entity.RolePatient, req.FirstName, req.LastName, req.SecondLastName)
	if err := u.createAccount(ctx, user, req.Password); err != nil {
		return nil, err
	}

	return u.authenticated(ctx, user, converter.ToBasicRegisteredUser(user))
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.AuthResponse, error) {
	medical, err := converter.MedicalRequestToProfile(req.MedicalProfileRequest)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	user := converter.NewUser(req.Email, "", entity.RolePatient, req.FirstName, req.LastName, req.SecondLastName)
	user.SetMedicalProfile(medical)
	if err := u.createAccount(ctx, user, req.Password); err != nil {
		return nil, err
	}

	return u.authenticated(ctx, user, converter.ToMedicalUser(user))
}

func (u *authUsecase) CompleteProfile(ctx context.Context, userID uuid.UUID, req *dto.CompleteProfileRequest) (*dto.CompleteProfileResponse, error) {
	medical, err := converter.MedicalRequestToProfile(req.MedicalProfileRequest)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	before, err := u.userRepo.FindByID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if before == nil {
		return nil, ErrUserNotFound
	}

	user, err := u.userRepo.Update(ctx, tx, userID, entity.MedicalPatch(medical))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to complete profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileComplete, "user", userID.String(),
		converter.ToMedicalUser(before), converter.ToMedicalUser(user)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.CompleteProfileResponse{
		User: converter.ToCompletedProfileUser(user),
	}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, u.db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	if user == nil {
		u.hasher.Check(req.Password, u.dummyHash)
		return nil, ErrInvalidCredentials
	}

	if !u.hasher.Check(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		u.log.WithField("user_id", user.ID.String()).Info("Rejected login for deactivated account")
		return nil, ErrInvalidCredentials
	}

	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, "session", user.ID.String(), nil); err != nil {
		return nil, err
	}

	return u.authenticated(ctx, user, converter.ToPublicUser(user))
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, tokenID string) error {
	if err := u.tokenStore.Revoke(ctx, userID, tokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionUserLogout, "session", tokenID, nil); err != nil {
		return err
	}

	return nil
}

// GetProfile echoes the identity carried by the presented token.
func (u *authUsecase) GetProfile(ctx context.Context) (*dto.ProfileClaimsResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, jwt.ErrInvalidToken
	}
	email, _ := middleware.GetUserEmailFromContext(ctx)
	role, _ := middleware.GetRoleFromContext(ctx)

	return &dto.ProfileClaimsResponse{
		UserID: userID,
		Email:  email,
		Role:   role.String(),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.ToMedicalUser(user), nil
}

// createAccount hashes plaintext onto user and inserts it. The email pre-check
// is a fast path; the unique index decides concurrent races.
func (u *authUsecase) createAccount(ctx context.Context, user *entity.User, plaintext string) error {
	existing, err := u.userRepo.FindByEmail(ctx, u.db, user.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if existing != nil {
		return ErrEmailAlreadyExists
	}

	hashedPassword, err := u.hasher.Hash(plaintext)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}
	user.Password = hashedPassword

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return err
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), converter.ToPublicUser(user)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// authenticated issues a registered access token for user.
func (u *authUsecase) authenticated(ctx context.Context, user *entity.User, view *dto.UserResponse) (*dto.AuthResponse, error) {
	accessToken, tokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role.String())
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Register(ctx, user.ID, tokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: accessToken,
		User:        view,
	}, nil
}
