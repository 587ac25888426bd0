package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainNotification "admin-dashboard/internal/domain/notification"
	"admin-dashboard/internal/infrastructure/database/postgres/models"
)

// NotificationRepository implements notification.Repository over postgres.
type NotificationRepository struct {
	db *DB
}

func NewNotificationRepository(db *DB) domainNotification.Repository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domainNotification.Notification) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	n.Read = false

	dbModel := &models.NotificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domainNotification.Notification, error) {
	var dbModel models.NotificationModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainNotification.ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return toNotificationEntity(&dbModel), nil
}

func (r *NotificationRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domainNotification.Notification, error) {
	var dbModels []models.NotificationModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*domainNotification.Notification, 0, len(dbModels))
	for i := range dbModels {
		notifications = append(notifications, toNotificationEntity(&dbModels[i]))
	}

	return notifications, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("id = ?", id).
		Update("read", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark notification as read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotification.ErrNotificationNotFound
	}

	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.NotificationModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainNotification.ErrNotificationNotFound
	}

	return nil
}

func toNotificationEntity(m *models.NotificationModel) *domainNotification.Notification {
	return &domainNotification.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Message:   m.Message,
		Type:      m.Type,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}
