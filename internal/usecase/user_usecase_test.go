package usecase

import (
	"context"
	"testing"

	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUsecase(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	admin := adminContext()

	req := registerRequest("member@example.com")
	member, err := env.auth.Register(ctx, &req)
	require.NoError(t, err)
	_, err = env.doctors.Create(admin, createDoctorRequest("doc@example.com", "LIC-1", "Endocrinology"))
	require.NoError(t, err)

	t.Run("lists every role", func(t *testing.T) {
		list, err := env.users.FindAll(admin)
		require.NoError(t, err)
		assert.Equal(t, 2, list.Total)
	})

	t.Run("update keeps email and role", func(t *testing.T) {
		updated, err := env.users.Update(admin, member.User.ID, &dto.UpdateUserRequest{LastName: strPtr("Diaz")})
		require.NoError(t, err)
		assert.Equal(t, "Diaz", *updated.LastName)
		assert.Equal(t, "member@example.com", updated.Email)
		assert.Equal(t, "USER", updated.Role)
	})

	t.Run("deactivation revokes sessions", func(t *testing.T) {
		claims, err := env.jwtService.ValidateToken(member.AccessToken)
		require.NoError(t, err)

		updated, err := env.users.Update(admin, member.User.ID, &dto.UpdateUserRequest{IsActive: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)

		active, err := env.tokenStore.IsActive(ctx, member.User.ID, claims.ID)
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("hard delete", func(t *testing.T) {
		removed, err := env.users.Remove(admin, member.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "member@example.com", removed.Email)

		_, err = env.users.FindOne(admin, member.User.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = env.users.Remove(admin, member.User.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.users.Update(admin, uuid.New(), &dto.UpdateUserRequest{FirstName: strPtr("X")})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	assert.Equal(t, int64(1), countAuditLogs(t, env.db, entity.AuditActionUserDelete))
}

func TestAuditLogUsecase(t *testing.T) {
	env := setupTestEnv(t)
	admin := adminContext()

	_, err := env.patients.Create(admin, createPatientRequest("audited@example.com", medicalRequest("TYPE_2", false, 170, 70)))
	require.NoError(t, err)

	logs, err := env.audit.GetAllAuditLogs(admin, dto.AuditLogQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, logs.Total)

	entry := logs.Logs[0]
	assert.Equal(t, entity.AuditActionPatientCreate, entry.Action)
	assert.Equal(t, "patient", entry.Entity)
	assert.NotEmpty(t, entry.EntityID)
	require.NotNil(t, entry.UserID, "actor is recorded")
	assert.Equal(t, "patient", entry.Metadata["entity"])
	assert.Nil(t, entry.Metadata["old_value"])
	assert.NotNil(t, entry.Metadata["new_value"])

	one, err := env.audit.GetAuditLog(admin, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, one.ID)

	_, err = env.audit.GetAuditLog(admin, 424242)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)

	_, err = env.patients.Create(admin, createPatientRequest("second@example.com", medicalRequest("TYPE_1", true, 160, 60)))
	require.NoError(t, err)
	patient, err := env.patients.FindOne(admin, uuid.MustParse(entry.EntityID))
	require.NoError(t, err)
	_, err = env.patients.Remove(admin, patient.ID)
	require.NoError(t, err)

	t.Run("filters by action", func(t *testing.T) {
		deletes, err := env.audit.GetAllAuditLogs(admin, dto.AuditLogQuery{Action: entity.AuditActionPatientDelete})
		require.NoError(t, err)
		require.Equal(t, 1, deletes.Total)
		assert.Equal(t, patient.ID.String(), deletes.Logs[0].EntityID)
	})

	t.Run("filters by actor", func(t *testing.T) {
		stranger := uuid.New()
		none, err := env.audit.GetAllAuditLogs(admin, dto.AuditLogQuery{ActorID: &stranger})
		require.NoError(t, err)
		assert.Zero(t, none.Total)
		assert.Empty(t, none.Logs)
	})

	t.Run("limit and cap", func(t *testing.T) {
		one, err := env.audit.GetAllAuditLogs(admin, dto.AuditLogQuery{Limit: 1})
		require.NoError(t, err)
		require.Equal(t, 1, one.Total)
		assert.Equal(t, entity.AuditActionPatientDelete, one.Logs[0].Action)

		all, err := env.audit.GetAllAuditLogs(admin, dto.AuditLogQuery{Limit: maxAuditLogLimit + 1})
		require.NoError(t, err)
		assert.Equal(t, 3, all.Total)
	})
}
