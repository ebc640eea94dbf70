package handler

import (
	"errors"
	"net/http"

	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/usecase"
	"dabetai-api/pkg/response"
	"dabetai-api/pkg/validator"

	"github.com/google/uuid"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.FindAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.userUsecase.FindOne(r.Context(), userID)
	if err != nil {
		h.writeError(w, userID, err, "Failed to get user")
		return
	}

	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.Update(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, userID, err, "Failed to update user")
		return
	}

	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.userUsecase.Remove(r.Context(), userID)
	if err != nil {
		h.writeError(w, userID, err, "Failed to delete user")
		return
	}

	response.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) writeError(w http.ResponseWriter, userID uuid.UUID, err error, fallback string) {
	if errors.Is(err, usecase.ErrUserNotFound) {
		response.NotFound(w, "User with ID "+userID.String()+" not found")
		return
	}
	response.InternalServerError(w, fallback)
}
