package dto

import (
	"time"

	"dabetai-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AuditLogQuery holds the optional filters of the audit trail listing.
type AuditLogQuery struct {
	Action  string
	ActorID *uuid.UUID
	Limit   int
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	UserID    *uuid.UUID  `json:"userId"`
	Action    string      `json:"action"`
	Entity    string      `json:"entity,omitempty"`
	EntityID  string      `json:"entityId,omitempty"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"createdAt"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
