package converter

import (
	"dabetai-api/internal/delivery/dto"
	"dabetai-api/internal/domain/entity"
)

// AuditLogToResponse lifts the affected record out of the metadata so clients
// can tell which patient, doctor or session an entry refers to.
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	return &dto.AuditLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		Entity:    metadataString(log.Metadata, "entity"),
		EntityID:  metadataString(log.Metadata, "entity_id"),
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
}

func metadataString(metadata entity.JSON, key string) string {
	value, _ := metadata[key].(string)
	return value
}

func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}
