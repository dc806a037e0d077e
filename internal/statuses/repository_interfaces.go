package statuses

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// StatusRepository exposes persistence operations for catalog entries.
// List returns records in catalog order (position, then name).
type StatusRepository interface {
	Create(ctx context.Context, status *Status) (*Status, error)
	Update(ctx context.Context, status *Status) (*Status, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Status, error)
	GetByName(ctx context.Context, name string) (*Status, error)
	List(ctx context.Context) ([]*Status, error)
	ListVisible(ctx context.Context) ([]*Status, error)
}

// NotFoundError is returned by repositories when a status cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
