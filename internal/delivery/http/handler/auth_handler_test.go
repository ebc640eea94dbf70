package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/delivery/http/middleware"
	"dabetai-api/internal/domain/entity"
	"dabetai-api/internal/usecase"
	"dabetai-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRegisterBody = `{"email":"ana@example.com","password":"secret123","firstName":"Ana","lastName":"Lopez","secondLastName":"Garcia"}`

const validMedicalFields = `"diabetesType":"TYPE_2","diagnosisYear":2019,"hasHypertension":false,"birthDate":"1990-05-15","gender":"FEMALE","height":165,"weight":70`

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		usecaseErr error
		wantStatus int
		wantMsg    string
	}{
		{"success", validRegisterBody, nil, http.StatusCreated, ""},
		{"duplicate email", validRegisterBody, usecase.ErrEmailAlreadyExists, http.StatusConflict, "Email already exists"},
		{"unexpected failure", validRegisterBody, errors.New("db down"), http.StatusInternalServerError, "Failed to register user"},
		{"empty body", "", nil, http.StatusBadRequest, "Invalid request body"},
		{"malformed json", `{"email":`, nil, http.StatusBadRequest, "Invalid request body"},
		{"unknown field", `{"email":"ana@example.com","password":"secret123","firstName":"Ana","lastName":"Lopez","secondLastName":"Garcia","role":"ADMIN"}`, nil, http.StatusBadRequest, "Invalid request body"},
		{"short password", `{"email":"ana@example.com","password":"123","firstName":"Ana","lastName":"Lopez","secondLastName":"Garcia"}`, nil, http.StatusBadRequest, "Validation failed"},
		{"invalid email", `{"email":"not-an-email","password":"secret123","firstName":"Ana","lastName":"Lopez","secondLastName":"Garcia"}`, nil, http.StatusBadRequest, "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &mockAuthUsecase{
				RegisterFunc: func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
					called = true
					if tt.usecaseErr != nil {
						return nil, tt.usecaseErr
					}
					return &dto.AuthResponse{
						AccessToken: "token",
						User:        &dto.UserResponse{ID: uuid.New(), Email: req.Email, Role: "USER"},
					}, nil
				},
			}
			h := NewAuthHandler(mock, validator.NewValidator(), discardLogger())
			rec := httptest.NewRecorder()

			h.Register(rec, newJSONRequest(http.MethodPost, "/api/v1/auth/register", tt.body, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg == "" {
				var resp dto.AuthResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "token", resp.AccessToken)
				assert.Equal(t, "ana@example.com", resp.User.Email)
				return
			}
			body := decodeErrorBody(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Message)
			if tt.wantStatus == http.StatusBadRequest {
				assert.False(t, called, "usecase must not run for invalid input")
			}
		})
	}
}

func TestAuthHandler_ValidationDetails(t *testing.T) {
	h := NewAuthHandler(&mockAuthUsecase{}, validator.NewValidator(), discardLogger())

	body := `{"email":"p@example.com","password":"secret123","firstName":"P","lastName":"Q","secondLastName":"R",` +
		`"diabetesType":"TYPE_9","diagnosisYear":1800,"hasHypertension":true,"birthDate":"15-05-1990","gender":"FEMALE","height":300,"weight":10}`
	rec := httptest.NewRecorder()

	h.RegisterPatient(rec, newJSONRequest(http.MethodPost, "/api/v1/auth/register/patient", body, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Message string            `json:"message"`
		Error   map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Message)
	for _, field := range []string{"diabetesType", "diagnosisYear", "birthDate", "height", "weight"} {
		assert.Contains(t, resp.Error, field)
	}
	assert.NotContains(t, resp.Error, "gender")
}

func TestAuthHandler_RegisterPatientRequiresHypertensionFlag(t *testing.T) {
	h := NewAuthHandler(&mockAuthUsecase{}, validator.NewValidator(), discardLogger())

	body := `{"email":"p@example.com","password":"secret123","firstName":"P","lastName":"Q","secondLastName":"R",` +
		`"diabetesType":"TYPE_1","diagnosisYear":2010,"birthDate":"1990-05-15","gender":"MALE","height":170,"weight":70}`
	rec := httptest.NewRecorder()

	h.RegisterPatient(rec, newJSONRequest(http.MethodPost, "/api/v1/auth/register/patient", body, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_BasicRegister(t *testing.T) {
	complete := false
	mock := &mockAuthUsecase{
		BasicRegisterFunc: func(ctx context.Context, req *dto.BasicRegisterRequest) (*dto.AuthResponse, error) {
			return &dto.AuthResponse{
				AccessToken: "token",
				User:        &dto.UserResponse{Email: req.Email, Role: "PATIENT", IsProfileComplete: &complete},
			}, nil
		},
	}
	h := NewAuthHandler(mock, validator.NewValidator(), discardLogger())
	rec := httptest.NewRecorder()

	h.BasicRegister(rec, newJSONRequest(http.MethodPost, "/api/v1/auth/register/basic", validRegisterBody, nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isProfileComplete":false`)
}

func TestAuthHandler_CompleteProfile(t *testing.T) {
	userID := uuid.New()
	body := `{` + validMedicalFields + `}`

	t.Run("requires identity", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{}, validator.NewValidator(), discardLogger())
		rec := httptest.NewRecorder()

		h.CompleteProfile(rec, newJSONRequest(http.MethodPatch, "/api/v1/auth/complete-profile", body, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		mock := &mockAuthUsecase{
			CompleteProfileFunc: func(ctx context.Context, id uuid.UUID, req *dto.CompleteProfileRequest) (*dto.CompleteProfileResponse, error) {
				return nil, usecase.ErrUserNotFound
			},
		}
		h := NewAuthHandler(mock, validator.NewValidator(), discardLogger())
		req := newJSONRequest(http.MethodPatch, "/api/v1/auth/complete-profile", body, nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), userID, "p@example.com", entity.RolePatient, "tid"))
		rec := httptest.NewRecorder()

		h.CompleteProfile(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User with ID "+userID.String()+" not found", decodeErrorBody(t, rec).Message)
	})

	t.Run("success", func(t *testing.T) {
		mock := &mockAuthUsecase{
			CompleteProfileFunc: func(ctx context.Context, id uuid.UUID, req *dto.CompleteProfileRequest) (*dto.CompleteProfileResponse, error) {
				assert.Equal(t, userID, id)
				assert.Equal(t, "TYPE_2", req.DiabetesType)
				complete := true
				return &dto.CompleteProfileResponse{User: &dto.UserResponse{ID: id, IsProfileComplete: &complete}}, nil
			},
		}
		h := NewAuthHandler(mock, validator.NewValidator(), discardLogger())
		req := newJSONRequest(http.MethodPatch, "/api/v1/auth/complete-profile", body, nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), userID, "p@example.com", entity.RolePatient, "tid"))
		rec := httptest.NewRecorder()

		h.CompleteProfile(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"isProfileComplete":true`)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		usecaseErr error
		wantStatus int
	}{
		{"success", `{"email":"a@example.com","password":"secret123"}`, nil, http.StatusOK},
		{"invalid credentials", `{"email":"a@example.com","password":"wrong"}`, usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{"missing password", `{"email":"a@example.com"}`, nil, http.StatusBadRequest},
		{"internal error", `{"email":"a@example.com","password":"secret123"}`, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAuthUsecase{
				LoginFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
					if tt.usecaseErr != nil {
						return nil, tt.usecaseErr
					}
					return &dto.AuthResponse{AccessToken: "token", User: &dto.UserResponse{Email: req.Email}}, nil
				},
			}
			h := NewAuthHandler(mock, validator.NewValidator(), discardLogger())
			rec := httptest.NewRecorder()

			h.Login(rec, newJSONRequest(http.MethodPost, "/api/v1/auth/login", tt.body, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Invalid credentials", decodeErrorBody(t, rec).Message)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	userID := uuid.New()
	var revoked string
	mock := &mockAuthUsecase{
		LogoutFunc: func(ctx context.Context, id uuid.UUID, tokenID string) error {
			assert.Equal(t, userID, id)
			revoked = tokenID
			return nil
		},
	}
	h := NewAuthHandler(mock, validator.NewValidator(), discardLogger())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), userID, "a@example.com", entity.RoleUser, "token-42"))
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token-42", revoked)
	assert.JSONEq(t, `{"message":"Logout successful"}`, rec.Body.String())
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	userID := uuid.New()
	mock := &mockAuthUsecase{
		GetCurrentUserFunc: func(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
			return &dto.UserResponse{ID: id, Email: "me@example.com", Role: "USER"}, nil
		},
	}
	h := NewAuthHandler(mock, validator.NewValidator(), discardLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), userID, "me@example.com", entity.RoleUser, "tid"))
	rec := httptest.NewRecorder()

	h.GetCurrentUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), userID.String())
}
