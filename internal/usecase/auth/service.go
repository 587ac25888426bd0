package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"admin-dashboard/internal/config"
	domainAudit "admin-dashboard/internal/domain/audit"
	domainAuth "admin-dashboard/internal/domain/auth"
	domainUser "admin-dashboard/internal/domain/user"
	"admin-dashboard/internal/logger"
	"admin-dashboard/internal/mail"
	auditUsecase "admin-dashboard/internal/usecase/audit"
	appErrors "admin-dashboard/pkg/errors"
	"admin-dashboard/pkg/utils"
)

// Service orchestrates the authentication and session lifecycle: login,
// registration, refresh, logout, logout-all and the password-reset flow.
type Service struct {
	userRepo    domainUser.Repository
	refreshRepo domainAuth.RefreshTokenRepository
	resetRepo   domainAuth.PasswordResetRepository
	audit       *auditUsecase.Service
	mailer      mail.Mailer
	config      *config.Config
}

func NewService(
	userRepo domainUser.Repository,
	refreshRepo domainAuth.RefreshTokenRepository,
	resetRepo domainAuth.PasswordResetRepository,
	audit *auditUsecase.Service,
	mailer mail.Mailer,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		resetRepo:   resetRepo,
		audit:       audit,
		mailer:      mailer,
		config:      cfg,
	}
}

func (s *Service) accessTokenTTL() time.Duration {
	return time.Duration(s.config.JWT.AccessExpiryMinutes) * time.Minute
}

func (s *Service) refreshTokenTTL() time.Duration {
	return time.Duration(s.config.JWT.RefreshExpiryDays) * 24 * time.Hour
}

func (s *Service) resetTokenTTL() time.Duration {
	return time.Duration(s.config.JWT.ResetTokenExpiryMins) * time.Minute
}

// Login verifies credentials and issues an access/refresh token pair. The
// failure response never reveals whether the email existed.
func (s *Service) Login(ctx context.Context, req *LoginRequest, meta Meta) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	response, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.recordAuthAudit(ctx, domainAudit.ActionLogin, user.ID, meta)

	logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "user_login"),
	)

	return response, nil
}

// Register creates a new account. The role is always forced to USER;
// privilege cannot be self-escalated at registration.
func (s *Service) Register(ctx context.Context, req *RegisterRequest, meta Meta) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrEmailInUse
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         domainUser.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrEmailInUse) {
			return nil, appErrors.ErrEmailInUse
		}
		return nil, err
	}

	response, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.recordAuthAudit(ctx, domainAudit.ActionRegister, user.ID, meta)

	go func() {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.Name); err != nil {
			logger.Error("Failed to send welcome email",
				zap.String("email", user.Email),
				zap.Error(err),
			)
		}
	}()

	logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "user_registered"),
	)

	return response, nil
}

// Refresh mints a new access token for a presented refresh token. The refresh
// token itself is not rotated; it stays valid until expiry or revocation.
// An expired token is deleted before being rejected.
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*RefreshResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Refresh token required", err)
	}

	stored, err := s.refreshRepo.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, domainAuth.ErrTokenNotFound) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, err
	}

	if stored.IsExpired() {
		if _, err := s.refreshRepo.Delete(ctx, req.RefreshToken); err != nil {
			logger.Error("Failed to delete expired refresh token", zap.Error(err))
		}
		return nil, appErrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			// Owner is gone; the token is orphaned.
			if _, err := s.refreshRepo.Delete(ctx, req.RefreshToken); err != nil {
				logger.Error("Failed to delete orphaned refresh token", zap.Error(err))
			}
			return nil, appErrors.ErrInvalidToken
		}
		return nil, err
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role, s.config.JWT.Secret, s.accessTokenTTL())
	if err != nil {
		return nil, err
	}

	return &RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.accessTokenTTL().Seconds()),
	}, nil
}

// Logout revokes the presented refresh token. The operation is idempotent:
// revoking a token that no longer exists is not an error. The audit entry is
// written only when an authenticated identity is present.
func (s *Service) Logout(ctx context.Context, refreshToken string, actorID *uuid.UUID, meta Meta) error {
	if refreshToken != "" {
		if _, err := s.refreshRepo.Delete(ctx, refreshToken); err != nil {
			return err
		}
	}

	if actorID != nil {
		s.recordAuthAudit(ctx, domainAudit.ActionLogout, *actorID, meta)
	}

	return nil
}

// LogoutAll revokes every refresh token of the user, forcing
// re-authentication on all devices. Returns the number of revoked tokens.
func (s *Service) LogoutAll(ctx context.Context, userID uuid.UUID, meta Meta) (int64, error) {
	count, err := s.refreshRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	entry := s.authAuditEntry(domainAudit.ActionLogoutAll, userID, meta)
	entry.Changes = map[string]interface{}{"revoked_count": count}
	s.audit.Record(ctx, entry)

	logger.Info("All sessions revoked",
		zap.String("user_id", userID.String()),
		zap.Int64("revoked_count", count),
		zap.String("event", "logout_all"),
	)

	return count, nil
}

// ForgotPassword starts the reset flow. It always succeeds from the caller's
// perspective, whether or not the account exists, to prevent enumeration.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest, meta Meta) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Password reset requested for unknown email",
				zap.String("event", "password_reset_unknown_email"),
			)
			return nil
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	// At most one active reset token per user.
	if _, err := s.resetRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to purge prior reset tokens: %w", err)
	}

	token, err := utils.GenerateOpaqueToken()
	if err != nil {
		return err
	}

	reset := &domainAuth.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.resetTokenTTL()),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, token); err != nil {
		logger.Error("Failed to send password reset email",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	s.recordAuthAudit(ctx, domainAudit.ActionPasswordResetRequest, user.ID, meta)

	return nil
}

// ResetPassword consumes a reset token: hashes and persists the new password,
// marks the token used and revokes every refresh token for the user. A used
// or expired token can never be consumed again.
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest, meta Meta) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	reset, err := s.resetRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, domainAuth.ErrTokenNotFound) {
			return appErrors.NewAppError("INVALID_RESET_TOKEN", "Invalid or expired reset token", nil)
		}
		return err
	}

	if reset.Used {
		return appErrors.ErrResetTokenUsed
	}
	if reset.IsExpired() {
		return appErrors.NewAppError("INVALID_RESET_TOKEN", "Invalid or expired reset token", nil)
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, reset.UserID, hashedPassword); err != nil {
		return err
	}

	if _, err := s.resetRepo.MarkUsed(ctx, req.Token); err != nil {
		logger.Error("Failed to mark reset token as used",
			zap.String("user_id", reset.UserID.String()),
			zap.Error(err),
		)
	}

	// Force re-authentication everywhere.
	revoked, err := s.refreshRepo.DeleteByUserID(ctx, reset.UserID)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	entry := s.authAuditEntry(domainAudit.ActionPasswordResetComplete, reset.UserID, meta)
	entry.Changes = map[string]interface{}{"revoked_sessions": revoked}
	s.audit.Record(ctx, entry)

	logger.Info("Password reset completed",
		zap.String("user_id", reset.UserID.String()),
		zap.Int64("revoked_sessions", revoked),
		zap.String("event", "password_reset_complete"),
	)

	return nil
}

func (s *Service) issueTokenPair(ctx context.Context, user *domainUser.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Role, s.config.JWT.Secret, s.accessTokenTTL())
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateOpaqueToken()
	if err != nil {
		return nil, err
	}

	stored := &domainAuth.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTokenTTL()),
	}
	if err := s.refreshRepo.Create(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{
		User:         ToUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTokenTTL().Seconds()),
	}, nil
}

func (s *Service) authAuditEntry(action string, userID uuid.UUID, meta Meta) *domainAudit.Log {
	entry := &domainAudit.Log{
		UserID: &userID,
		Action: action,
		Entity: domainAudit.EntityAuth,
	}
	if meta.IPAddress != "" {
		entry.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		entry.UserAgent = &meta.UserAgent
	}
	return entry
}

func (s *Service) recordAuthAudit(ctx context.Context, action string, userID uuid.UUID, meta Meta) {
	s.audit.Record(ctx, s.authAuditEntry(action, userID, meta))
}
