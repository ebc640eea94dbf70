package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/usecase"
	"dabetai-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		if errors.Is(err, usecase.ErrAuditLogNotFound) {
			response.NotFound(w, "Audit log with ID "+strconv.FormatInt(auditLogID, 10)+" not found")
			return
		}
		response.InternalServerError(w, "Failed to get audit log")
		return
	}

	response.JSON(w, http.StatusOK, auditLog)
}

// GetAllAuditLogs accepts the optional query parameters action, userId and limit.
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := dto.AuditLogQuery{Action: strings.TrimSpace(params.Get("action"))}

	if raw := params.Get("userId"); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid user ID")
			return
		}
		query.ActorID = &actorID
	}

	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.BadRequest(w, "Query parameter limit must be a positive integer")
			return
		}
		query.Limit = limit
	}

	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.JSON(w, http.StatusOK, auditLogs)
}
