package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainAudit "admin-dashboard/internal/domain/audit"
	"admin-dashboard/internal/infrastructure/database/postgres/models"
)

// AuditLogRepository implements audit.Repository over postgres.
type AuditLogRepository struct {
	db *DB
}

func NewAuditLogRepository(db *DB) domainAudit.Repository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *domainAudit.Log) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()

	var changes []byte
	if entry.Changes != nil {
		var err error
		changes, err = json.Marshal(entry.Changes)
		if err != nil {
			return fmt.Errorf("failed to marshal audit changes: %w", err)
		}
	}

	dbModel := &models.AuditLogModel{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Action:    entry.Action,
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		Changes:   changes,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		CreatedAt: entry.CreatedAt,
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) List(ctx context.Context, params domainAudit.ListParams) ([]*domainAudit.Log, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.AuditLogModel{})

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Entity != "" {
		query = query.Where("entity = ?", params.Entity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	offset := (params.Page - 1) * params.Limit

	var dbModels []models.AuditLogModel
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(params.Limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}

	logs := make([]*domainAudit.Log, 0, len(dbModels))
	for i := range dbModels {
		entry, err := toAuditLogEntity(&dbModels[i])
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, entry)
	}

	return logs, total, nil
}

func toAuditLogEntity(m *models.AuditLogModel) (*domainAudit.Log, error) {
	var changes map[string]interface{}
	if len(m.Changes) > 0 {
		if err := json.Unmarshal(m.Changes, &changes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit changes: %w", err)
		}
	}

	return &domainAudit.Log{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    m.Action,
		Entity:    m.Entity,
		EntityID:  m.EntityID,
		Changes:   changes,
		IPAddress: m.IPAddress,
		UserAgent: m.UserAgent,
		CreatedAt: m.CreatedAt,
	}, nil
}
