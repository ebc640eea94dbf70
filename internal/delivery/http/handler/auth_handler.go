package handler

import (
	"errors"
	"net/http"

	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/delivery/http/middleware"
	"dabetai-api/internal/usecase"
	"dabetai-api/pkg/response"
	"dabetai-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	log         *logrus.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		log:         log,
	}
}

// Register handles generic user registration
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	result, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		h.registrationError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

// BasicRegister handles step one of patient onboarding
// @Router /auth/register/basic [post]
func (h *AuthHandler) BasicRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.BasicRegisterRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	result, err := h.authUsecase.BasicRegister(r.Context(), &req)
	if err != nil {
		h.registrationError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

// RegisterPatient handles one-step patient registration with the medical profile
// @Router /auth/register/patient [post]
func (h *AuthHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	result, err := h.authUsecase.RegisterPatient(r.Context(), &req)
	if err != nil {
		h.registrationError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

// CompleteProfile handles step two of patient onboarding
// @Security BearerAuth
// @Router /auth/complete-profile [patch]
func (h *AuthHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CompleteProfileRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	result, err := h.authUsecase.CompleteProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			response.NotFound(w, "User with ID "+userID.String()+" not found")
		case errors.Is(err, usecase.ErrInvalidDateFormat):
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to complete profile")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Login handles user login
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	result, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid credentials")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Logout revokes the presented access token
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), userID, tokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// GetProfile returns the claims of the presented token
// @Security BearerAuth
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.authUsecase.GetProfile(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

// GetCurrentUser returns the stored profile of the caller
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			response.NotFound(w, "User with ID "+userID.String()+" not found")
		default:
			response.InternalServerError(w, "Failed to get user info")
		}
		return
	}

	response.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) registrationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		response.Conflict(w, "Email already exists")
	case errors.Is(err, usecase.ErrInvalidDateFormat):
		response.BadRequest(w, err.Error())
	default:
		h.log.Warnf("Failed to register user: %+v", err)
		response.InternalServerError(w, "Failed to register user")
	}
}
