package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domainNotification "admin-dashboard/internal/domain/notification"
	appErrors "admin-dashboard/pkg/errors"
	"admin-dashboard/pkg/utils"
)

type CreateRequest struct {
	UserID  uuid.UUID `json:"userId" validate:"required"`
	Title   string    `json:"title" validate:"required,max=255"`
	Message string    `json:"message" validate:"required"`
	Type    string    `json:"type" validate:"omitempty,oneof=info success warning error"`
}

// Publisher pushes a freshly created notification to connected clients.
type Publisher interface {
	Publish(n *domainNotification.Notification)
}

type Service struct {
	repo      domainNotification.Repository
	publisher Publisher
}

func NewService(repo domainNotification.Repository, publisher Publisher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*domainNotification.Notification, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	n := &domainNotification.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
	}
	if n.Type == "" {
		n.Type = domainNotification.TypeInfo
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(n)
	}

	return n, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domainNotification.Notification, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// MarkAsRead flips the read flag. Users may only touch their own
// notifications.
func (s *Service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainNotification.ErrNotificationNotFound) {
			return appErrors.ErrNotificationNotFound
		}
		return err
	}
	if n.UserID != userID {
		return appErrors.ErrInsufficientPermissions
	}

	return s.repo.MarkAsRead(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainNotification.ErrNotificationNotFound) {
			return appErrors.ErrNotificationNotFound
		}
		return err
	}
	if n.UserID != userID {
		return appErrors.ErrInsufficientPermissions
	}

	return s.repo.Delete(ctx, id)
}
