package auth

import (
	"context"

	"github.com/google/uuid"
)

// RefreshTokenRepository is the ledger of active refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	// Delete revokes a single token. Returns false if the token did not exist.
	Delete(ctx context.Context, token string) (bool, error)
	// DeleteByUserID revokes every token for a user, returning the count.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// PasswordResetRepository is the ledger of single-use reset tokens.
type PasswordResetRepository interface {
	// Create inserts a new reset record. Callers are expected to have purged
	// prior records for the user via DeleteByUserID first.
	Create(ctx context.Context, reset *PasswordReset) error
	GetByToken(ctx context.Context, token string) (*PasswordReset, error)
	MarkUsed(ctx context.Context, token string) (bool, error)
	// DeleteExpired removes records that are expired or already used.
	DeleteExpired(ctx context.Context) (int64, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
