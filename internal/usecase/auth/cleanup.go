package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"admin-dashboard/internal/logger"
)

// StartTokenCleanupJob periodically sweeps expired refresh tokens and
// expired or used password-reset tokens. Runs until the context is
// cancelled.
func (s *Service) StartTokenCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Token cleanup job started",
		zap.Duration("interval", interval),
	)

	s.cleanupExpiredTokens(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token cleanup job stopped")
			return
		case <-ticker.C:
			s.cleanupExpiredTokens(ctx)
		}
	}
}

func (s *Service) cleanupExpiredTokens(ctx context.Context) {
	refreshCount, err := s.refreshRepo.DeleteExpired(ctx)
	if err != nil {
		logger.Error("Failed to delete expired refresh tokens", zap.Error(err))
	}

	resetCount, err := s.resetRepo.DeleteExpired(ctx)
	if err != nil {
		logger.Error("Failed to delete expired password resets", zap.Error(err))
	}

	if refreshCount > 0 || resetCount > 0 {
		logger.Debug("Expired tokens cleaned up",
			zap.Int64("refresh_tokens", refreshCount),
			zap.Int64("password_resets", resetCount),
		)
	}
}
