package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dabetai-api/config"
	"dabetai-api/internal/domain/entity"
	"dabetai-api/internal/service"
	"dabetai-api/pkg/jwt"
	"dabetai-api/pkg/response"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	middleware *AuthMiddleware
	jwtService *jwt.JWTService
	tokenStore service.TokenStore
	redis      *miniredis.Miniredis
}

func setupAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "middleware-secret", AccessExpiry: time.Hour})
	tokenStore := service.NewRedisTokenStore(client)

	return &authFixture{
		middleware: NewAuthMiddleware(jwtService, tokenStore, log),
		jwtService: jwtService,
		tokenStore: tokenStore,
		redis:      mr,
	}
}

func (f *authFixture) issue(t *testing.T, userID uuid.UUID, role entity.Role) (string, string) {
	t.Helper()
	token, tokenID, err := f.jwtService.GenerateAccessToken(userID, "user@example.com", role.String())
	require.NoError(t, err)
	require.NoError(t, f.tokenStore.Register(context.Background(), userID, tokenID, time.Hour))
	return token, tokenID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	f := setupAuthFixture(t)
	userID := uuid.New()
	validToken, validTokenID := f.issue(t, userID, entity.RolePatient)

	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		gotID, ok := GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, userID, gotID)
		email, _ := GetUserEmailFromContext(r.Context())
		assert.Equal(t, "user@example.com", email)
		role, _ := GetRoleFromContext(r.Context())
		assert.Equal(t, entity.RolePatient, role)
		tokenID, _ := GetTokenIDFromContext(r.Context())
		assert.Equal(t, validTokenID, tokenID)
		w.WriteHeader(http.StatusNoContent)
	})
	handler := f.middleware.Authenticate(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header is required"},
		{"wrong scheme", "Basic " + validToken, http.StatusUnauthorized, "Invalid authorization header format"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "Invalid authorization header format"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "Invalid or expired token"},
		{"valid token", "Bearer " + validToken, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.False(t, reached)
				body := decodeError(t, rec)
				assert.False(t, body.Success)
				assert.Equal(t, tt.wantMsg, body.Message)
			} else {
				assert.True(t, reached)
			}
		})
	}
}

func TestAuthMiddleware_TokenFromOtherSecret(t *testing.T) {
	f := setupAuthFixture(t)
	other := jwt.NewJWTService(config.JWTConfig{Secret: "someone-else", AccessExpiry: time.Hour})
	token, _, err := other.GenerateAccessToken(uuid.New(), "x@example.com", "ADMIN")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	f.middleware.Authenticate(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	f := setupAuthFixture(t)
	userID := uuid.New()
	token, tokenID := f.issue(t, userID, entity.RoleUser)
	require.NoError(t, f.tokenStore.Revoke(context.Background(), userID, tokenID))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	f.middleware.Authenticate(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", decodeError(t, rec).Message)
}

func TestAuthMiddleware_RegistryUnavailable(t *testing.T) {
	f := setupAuthFixture(t)
	token, _ := f.issue(t, uuid.New(), entity.RoleUser)
	f.redis.Close()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	f.middleware.Authenticate(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContextGettersWithoutIdentity(t *testing.T) {
	ctx := context.Background()

	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
	_, ok = GetRoleFromContext(ctx)
	assert.False(t, ok)
	_, ok = GetTokenIDFromContext(ctx)
	assert.False(t, ok)
}

func TestAuthMiddleware_UnknownRoleClaim(t *testing.T) {
	f := setupAuthFixture(t)
	userID := uuid.New()
	token, tokenID, err := f.jwtService.GenerateAccessToken(userID, "x@example.com", "SUPERUSER")
	require.NoError(t, err)
	require.NoError(t, f.tokenStore.Register(context.Background(), userID, tokenID, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	f.middleware.Authenticate(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
