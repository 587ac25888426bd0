package auth

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a long-lived opaque credential. Its validity is determined
// solely by ledger lookup; it is never a signed token.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// PasswordReset is a single-use, time-boxed credential authorizing exactly
// one password change. At most one active reset per user.
type PasswordReset struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

func (pr *PasswordReset) IsExpired() bool {
	return time.Now().After(pr.ExpiresAt)
}
