package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainAudit "admin-dashboard/internal/domain/audit"
	domainUser "admin-dashboard/internal/domain/user"
	"admin-dashboard/internal/logger"
	auditUsecase "admin-dashboard/internal/usecase/audit"
	appErrors "admin-dashboard/pkg/errors"
	"admin-dashboard/pkg/utils"
)

// Service implements admin user management. Every mutation is audited with
// the acting user, IP and user-agent.
type Service struct {
	userRepo domainUser.Repository
	audit    *auditUsecase.Service
}

func NewService(userRepo domainUser.Repository, audit *auditUsecase.Service) *Service {
	return &Service{
		userRepo: userRepo,
		audit:    audit,
	}
}

func (s *Service) List(ctx context.Context, params domainUser.ListParams) (*ListResponse, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 10
	}

	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(u))
	}

	totalPages := (total + int64(params.Limit) - 1) / int64(params.Limit)

	return &ListResponse{
		Data:       responses,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	return ToUserResponse(user), nil
}

// Create adds a user on behalf of an admin. Unlike self-registration the
// role may be set explicitly.
func (s *Service) Create(ctx context.Context, req *CreateUserRequest, meta Meta) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, appErrors.ErrEmailInUse
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = domainUser.RoleUser
	}

	user := &domainUser.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Avatar:       req.Avatar,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrEmailInUse) {
			return nil, appErrors.ErrEmailInUse
		}
		return nil, err
	}

	entityID := user.ID.String()
	s.audit.Record(ctx, &domainAudit.Log{
		UserID:   meta.ActorID,
		Action:   domainAudit.ActionCreate,
		Entity:   domainAudit.EntityUser,
		EntityID: &entityID,
		Changes: map[string]interface{}{
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		IPAddress: optional(meta.IPAddress),
		UserAgent: optional(meta.UserAgent),
	})

	logger.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "user_created"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, req *UpdateUserRequest, meta Meta) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	changes := make(map[string]interface{})

	if req.Name != nil {
		user.Name = *req.Name
		changes["name"] = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
		changes["email"] = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
		changes["role"] = *req.Role
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
		changes["avatar"] = *req.Avatar
	}
	if req.Password != nil {
		// Password writes always go through hashing.
		hashedPassword, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashedPassword
		changes["password"] = "[redacted]"
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domainUser.ErrUserNotFound):
			return nil, appErrors.ErrUserNotFound
		case errors.Is(err, domainUser.ErrEmailInUse):
			return nil, appErrors.ErrEmailInUse
		}
		return nil, err
	}

	entityID := userID.String()
	s.audit.Record(ctx, &domainAudit.Log{
		UserID:    meta.ActorID,
		Action:    domainAudit.ActionUpdate,
		Entity:    domainAudit.EntityUser,
		EntityID:  &entityID,
		Changes:   changes,
		IPAddress: optional(meta.IPAddress),
		UserAgent: optional(meta.UserAgent),
	})

	return ToUserResponse(user), nil
}

func (s *Service) Delete(ctx context.Context, userID uuid.UUID, meta Meta) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return err
	}

	entityID := userID.String()
	s.audit.Record(ctx, &domainAudit.Log{
		UserID:    meta.ActorID,
		Action:    domainAudit.ActionDelete,
		Entity:    domainAudit.EntityUser,
		EntityID:  &entityID,
		IPAddress: optional(meta.IPAddress),
		UserAgent: optional(meta.UserAgent),
	})

	logger.Info("User deleted by admin",
		zap.String("user_id", userID.String()),
		zap.String("event", "user_deleted"),
	)

	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
