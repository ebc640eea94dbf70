package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dabetai-api/internal/delivery/dto"
	"dabetai-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type mockAuthUsecase struct {
	RegisterFunc        func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	BasicRegisterFunc   func(ctx context.Context, req *dto.BasicRegisterRequest) (*dto.AuthResponse, error)
	RegisterPatientFunc func(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.AuthResponse, error)
	CompleteProfileFunc func(ctx context.Context, userID uuid.UUID, req *dto.CompleteProfileRequest) (*dto.CompleteProfileResponse, error)
	LoginFunc           func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	LogoutFunc          func(ctx context.Context, userID uuid.UUID, tokenID string) error
	GetProfileFunc      func(ctx context.Context) (*dto.ProfileClaimsResponse, error)
	GetCurrentUserFunc  func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

func (m *mockAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return m.RegisterFunc(ctx, req)
}

func (m *mockAuthUsecase) BasicRegister(ctx context.Context, req *dto.BasicRegisterRequest) (*dto.AuthResponse, error) {
	return m.BasicRegisterFunc(ctx, req)
}

func (m *mockAuthUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.AuthResponse, error) {
	return m.RegisterPatientFunc(ctx, req)
}

func (m *mockAuthUsecase) CompleteProfile(ctx context.Context, userID uuid.UUID, req *dto.CompleteProfileRequest) (*dto.CompleteProfileResponse, error) {
	return m.CompleteProfileFunc(ctx, userID, req)
}

func (m *mockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return m.LoginFunc(ctx, req)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return m.LogoutFunc(ctx, userID, tokenID)
}

func (m *mockAuthUsecase) GetProfile(ctx context.Context) (*dto.ProfileClaimsResponse, error) {
	return m.GetProfileFunc(ctx)
}

func (m *mockAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	return m.GetCurrentUserFunc(ctx, userID)
}

type mockPatientUsecase struct {
	CreateFunc  func(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	FindAllFunc func(ctx context.Context) (*dto.PatientListResponse, error)
	FindOneFunc func(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	RemoveFunc  func(ctx context.Context, id uuid.UUID) (*dto.DeactivatedResponse, error)
	StatsFunc   func(ctx context.Context) (*dto.PatientStatsResponse, error)
}

func (m *mockPatientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockPatientUsecase) FindAll(ctx context.Context) (*dto.PatientListResponse, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockPatientUsecase) FindOne(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	return m.FindOneFunc(ctx, id)
}

func (m *mockPatientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *mockPatientUsecase) Remove(ctx context.Context, id uuid.UUID) (*dto.DeactivatedResponse, error) {
	return m.RemoveFunc(ctx, id)
}

func (m *mockPatientUsecase) Stats(ctx context.Context) (*dto.PatientStatsResponse, error) {
	return m.StatsFunc(ctx)
}

type mockDoctorUsecase struct {
	CreateFunc          func(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	FindAllFunc         func(ctx context.Context) (*dto.DoctorListResponse, error)
	FindOneFunc         func(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	FindBySpecialtyFunc func(ctx context.Context, specialty string) (*dto.DoctorListResponse, error)
	UpdateFunc          func(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	RemoveFunc          func(ctx context.Context, id uuid.UUID) (*dto.DeactivatedResponse, error)
	StatsFunc           func(ctx context.Context) (*dto.DoctorStatsResponse, error)
	FindPatientsFunc    func(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorPatientsResponse, error)
	AssignPatientFunc   func(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.PatientSummaryResponse, error)
	UnassignPatientFunc func(ctx context.Context, doctorID, patientID uuid.UUID) error
}

func (m *mockDoctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	return m.CreateFunc(ctx, req)
}

func (m *mockDoctorUsecase) FindAll(ctx context.Context) (*dto.DoctorListResponse, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockDoctorUsecase) FindOne(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	return m.FindOneFunc(ctx, id)
}

func (m *mockDoctorUsecase) FindBySpecialty(ctx context.Context, specialty string) (*dto.DoctorListResponse, error) {
	return m.FindBySpecialtyFunc(ctx, specialty)
}

func (m *mockDoctorUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *mockDoctorUsecase) Remove(ctx context.Context, id uuid.UUID) (*dto.DeactivatedResponse, error) {
	return m.RemoveFunc(ctx, id)
}

func (m *mockDoctorUsecase) Stats(ctx context.Context) (*dto.DoctorStatsResponse, error) {
	return m.StatsFunc(ctx)
}

func (m *mockDoctorUsecase) FindPatients(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorPatientsResponse, error) {
	return m.FindPatientsFunc(ctx, doctorID)
}

func (m *mockDoctorUsecase) AssignPatient(ctx context.Context, doctorID, patientID uuid.UUID) (*dto.PatientSummaryResponse, error) {
	return m.AssignPatientFunc(ctx, doctorID, patientID)
}

func (m *mockDoctorUsecase) UnassignPatient(ctx context.Context, doctorID, patientID uuid.UUID) error {
	return m.UnassignPatientFunc(ctx, doctorID, patientID)
}

type mockUserUsecase struct {
	FindAllFunc func(ctx context.Context) (*dto.UserListResponse, error)
	FindOneFunc func(ctx context.Context, id uuid.UUID) (*dto.AdminUserResponse, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.AdminUserResponse, error)
	RemoveFunc  func(ctx context.Context, id uuid.UUID) (*dto.AdminUserResponse, error)
}

func (m *mockUserUsecase) FindAll(ctx context.Context) (*dto.UserListResponse, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockUserUsecase) FindOne(ctx context.Context, id uuid.UUID) (*dto.AdminUserResponse, error) {
	return m.FindOneFunc(ctx, id)
}

func (m *mockUserUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.AdminUserResponse, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *mockUserUsecase) Remove(ctx context.Context, id uuid.UUID) (*dto.AdminUserResponse, error) {
	return m.RemoveFunc(ctx, id)
}

type mockAuditLogUsecase struct {
	GetAllAuditLogsFunc func(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogListResponse, error)
	GetAuditLogFunc     func(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

func (m *mockAuditLogUsecase) GetAllAuditLogs(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	return m.GetAllAuditLogsFunc(ctx, query)
}

func (m *mockAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	return m.GetAuditLogFunc(ctx, id)
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newJSONRequest(method, target, body string, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
