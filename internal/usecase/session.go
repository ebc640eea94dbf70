package usecase

import (
	"context"

	"dabetai-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// revokeSessions drops every token of a deactivated account. The account is
// already inactive at this point, so a registry failure is only logged.
func revokeSessions(ctx context.Context, log *logrus.Logger, tokenStore service.TokenStore, userID uuid.UUID) {
	if err := tokenStore.RevokeAll(ctx, userID); err != nil {
		log.Warnf("Failed to revoke tokens: %+v", err)
	}
}
