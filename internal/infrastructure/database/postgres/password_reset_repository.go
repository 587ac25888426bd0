package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainAuth "admin-dashboard/internal/domain/auth"
	"admin-dashboard/internal/infrastructure/database/postgres/models"
)

// PasswordResetRepository implements auth.PasswordResetRepository over postgres.
type PasswordResetRepository struct {
	db *DB
}

func NewPasswordResetRepository(db *DB) domainAuth.PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, reset *domainAuth.PasswordReset) error {
	reset.ID = uuid.New()
	reset.CreatedAt = time.Now()
	reset.Used = false

	dbModel := &models.PasswordResetModel{
		ID:        reset.ID,
		UserID:    reset.UserID,
		Token:     reset.Token,
		ExpiresAt: reset.ExpiresAt,
		Used:      reset.Used,
		CreatedAt: reset.CreatedAt,
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create password reset: %w", err)
	}

	return nil
}

func (r *PasswordResetRepository) GetByToken(ctx context.Context, token string) (*domainAuth.PasswordReset, error) {
	var dbModel models.PasswordResetModel
	err := r.db.DB.WithContext(ctx).Where("token = ?", token).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainAuth.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get password reset: %w", err)
	}

	return &domainAuth.PasswordReset{
		ID:        dbModel.ID,
		UserID:    dbModel.UserID,
		Token:     dbModel.Token,
		ExpiresAt: dbModel.ExpiresAt,
		Used:      dbModel.Used,
		CreatedAt: dbModel.CreatedAt,
	}, nil
}

func (r *PasswordResetRepository) MarkUsed(ctx context.Context, token string) (bool, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.PasswordResetModel{}).
		Where("token = ?", token).
		Update("used", true)

	if result.Error != nil {
		return false, fmt.Errorf("failed to mark password reset as used: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *PasswordResetRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("expires_at < ? OR used = true", time.Now()).
		Delete(&models.PasswordResetModel{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired password resets: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *PasswordResetRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.PasswordResetModel{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete user password resets: %w", result.Error)
	}

	return result.RowsAffected, nil
}
