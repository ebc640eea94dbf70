package handler

import (
	"errors"
	"net/http"
	"strings"

	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/usecase"
	"dabetai-api/pkg/response"
	"dabetai-api/pkg/validator"

	"github.com/google/uuid"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			response.Conflict(w, "Email already exists")
		case errors.Is(err, usecase.ErrMedicalLicenseExists):
			response.Conflict(w, "Medical license already exists")
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.JSON(w, http.StatusCreated, doctor)
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.FindAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.JSON(w, http.StatusOK, doctors)
}

func (h *DoctorHandler) GetDoctorStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.doctorUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctor stats")
		return
	}

	response.JSON(w, http.StatusOK, stats)
}

func (h *DoctorHandler) GetDoctorsBySpecialty(w http.ResponseWriter, r *http.Request) {
	specialty := strings.TrimSpace(r.URL.Query().Get("specialty"))
	if specialty == "" {
		response.BadRequest(w, "Query parameter specialty is required")
		return
	}

	doctors, err := h.doctorUsecase.FindBySpecialty(r.Context(), specialty)
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.JSON(w, http.StatusOK, doctors)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorUsecase.FindOne(r.Context(), doctorID)
	if err != nil {
		h.writeError(w, doctorID, err, "Failed to get doctor")
		return
	}

	response.JSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	var req dto.UpdateDoctorRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.Update(r.Context(), doctorID, &req)
	if err != nil {
		h.writeError(w, doctorID, err, "Failed to update doctor")
		return
	}

	response.JSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorUsecase.Remove(r.Context(), doctorID)
	if err != nil {
		h.writeError(w, doctorID, err, "Failed to delete doctor")
		return
	}

	response.JSON(w, http.StatusOK, doctor)
}

func (h *DoctorHandler) GetDoctorPatients(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	patients, err := h.doctorUsecase.FindPatients(r.Context(), doctorID)
	if err != nil {
		h.writeError(w, doctorID, err, "Failed to get doctor patients")
		return
	}

	response.JSON(w, http.StatusOK, patients)
}

func (h *DoctorHandler) AssignPatient(w http.ResponseWriter, r *http.Request) {
	doctorID, patientID, ok := h.linkIDs(w, r)
	if !ok {
		return
	}

	patient, err := h.doctorUsecase.AssignPatient(r.Context(), doctorID, patientID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient with ID "+patientID.String()+" not found")
		case errors.Is(err, usecase.ErrPatientAlreadyAssigned):
			response.Conflict(w, "Patient already assigned to doctor")
		default:
			h.writeError(w, doctorID, err, "Failed to assign patient")
		}
		return
	}

	response.JSON(w, http.StatusCreated, patient)
}

func (h *DoctorHandler) UnassignPatient(w http.ResponseWriter, r *http.Request) {
	doctorID, patientID, ok := h.linkIDs(w, r)
	if !ok {
		return
	}

	if err := h.doctorUsecase.UnassignPatient(r.Context(), doctorID, patientID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrAssignmentNotFound):
			response.NotFound(w, "Patient with ID "+patientID.String()+" is not assigned to doctor "+doctorID.String())
		default:
			h.writeError(w, doctorID, err, "Failed to unassign patient")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Patient unassigned successfully"})
}

func (h *DoctorHandler) linkIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	doctorID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return uuid.Nil, uuid.Nil, false
	}
	patientID, err := pathUUID(r, "patientId")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return uuid.Nil, uuid.Nil, false
	}
	return doctorID, patientID, true
}

func (h *DoctorHandler) writeError(w http.ResponseWriter, doctorID uuid.UUID, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor with ID "+doctorID.String()+" not found")
	case errors.Is(err, usecase.ErrMedicalLicenseExists):
		response.Conflict(w, "Medical license already exists")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "You can only manage your own patients")
	default:
		response.InternalServerError(w, fallback)
	}
}
