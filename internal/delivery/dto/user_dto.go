package dto

import (
	"time"

	"github.com/google/uuid"
)

// UpdateUserRequest is the admin update payload. Email and role are not updatable.
type UpdateUserRequest struct {
	Password       *string `json:"password" validate:"omitempty,min=6,maxbytes=72"`
	FirstName      *string `json:"firstName" validate:"omitempty,max=100"`
	LastName       *string `json:"lastName" validate:"omitempty,max=100"`
	SecondLastName *string `json:"secondLastName" validate:"omitempty,max=100"`
	IsActive       *bool   `json:"isActive"`
}

// AdminUserResponse is the account-level view used by user management.
type AdminUserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      *string   `json:"firstName"`
	LastName       *string   `json:"lastName"`
	SecondLastName *string   `json:"secondLastName"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type UserListResponse struct {
	Users []AdminUserResponse `json:"users"`
	Total int                 `json:"total"`
}
