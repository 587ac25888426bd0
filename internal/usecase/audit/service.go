package audit

import (
	"context"

	"go.uber.org/zap"

	domainAudit "admin-dashboard/internal/domain/audit"
	"admin-dashboard/internal/logger"
)

// Service appends and lists audit entries.
type Service struct {
	repo domainAudit.Repository
}

func NewService(repo domainAudit.Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an audit entry. Audit writes are best-effort: a failure is
// logged and never propagated, so the primary action is not rolled back.
func (s *Service) Record(ctx context.Context, entry *domainAudit.Log) {
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("Failed to write audit log",
			zap.String("action", entry.Action),
			zap.String("entity", entry.Entity),
			zap.Error(err),
		)
	}
}

// List returns a page of the audit trail, newest first.
func (s *Service) List(ctx context.Context, params domainAudit.ListParams) ([]*domainAudit.Log, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 50
	}

	return s.repo.List(ctx, params)
}
