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
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserUsecase is account administration across every role.
type UserUsecase interface {
	FindAll(ctx context.Context) (*dto.UserListResponse, error)
	FindOne(ctx context.Context, id uuid.UUID) (*dto.AdminUserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.AdminUserResponse, error)
	Remove(ctx context.Context, id uuid.UUID) (*dto.AdminUserResponse, error)
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	tokenStore   service.TokenStore
	hasher       *password.Hasher
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
	hasher *password.Hasher,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		tokenStore:   tokenStore,
		hasher:       hasher,
	}
}

func (u *userUsecase) FindAll(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.List(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find all users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.ToAdminUserResponses(users),
		Total: len(users),
	}, nil
}

func (u *userUsecase) FindOne(ctx context.Context, id uuid.UUID) (*dto.AdminUserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.ToAdminUserResponse(user), nil
}

func (u *userUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.AdminUserResponse, error) {
	patch := converter.UpdateUserRequestToPatch(req)
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

	before, err := u.userRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if before == nil {
		return nil, ErrUserNotFound
	}

	user, err := u.userRepo.Update(ctx, tx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	response := converter.ToAdminUserResponse(user)
	if err := u.auditService.LogUpdate(ctx, tx, actorFromContext(ctx), entity.AuditActionUserUpdate, "user", id.String(), converter.ToAdminUserResponse(before), response); err != nil {
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

// Remove hard-deletes the account and returns its last state.
func (u *userUsecase) Remove(ctx context.Context, id uuid.UUID) (*dto.AdminUserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	deleted, err := u.userRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return nil, err
	}
	if deleted == 0 {
		return nil, ErrUserNotFound
	}

	response := converter.ToAdminUserResponse(user)
	if err := u.auditService.LogDelete(ctx, tx, actorFromContext(ctx), entity.AuditActionUserDelete, "user", id.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	revokeSessions(ctx, u.log, u.tokenStore, id)

	return response, nil
}
