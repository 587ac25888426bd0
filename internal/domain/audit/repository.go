package audit

import (
	"context"

	"github.com/google/uuid"
)

// ListParams filters and paginates the audit trail.
type ListParams struct {
	Page   int
	Limit  int
	UserID *uuid.UUID
	Entity string
}

// Repository appends and lists audit entries. There is no update or delete.
type Repository interface {
	Create(ctx context.Context, entry *Log) error
	List(ctx context.Context, params ListParams) ([]*Log, int64, error)
}
