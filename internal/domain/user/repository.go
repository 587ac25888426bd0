package user

import (
	"context"

	"github.com/google/uuid"
)

// ListParams controls pagination and free-text search over name/email.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// Repository defines the persistence contract for users.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, params ListParams) ([]*User, int64, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, userID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
