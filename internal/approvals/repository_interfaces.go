package approvals

import (
	"context"
	"fmt"
)

// ApprovalRepository persists the transition ledger. Listings are most recent
// first: created_at descending, then id descending.
type ApprovalRepository interface {
	Create(ctx context.Context, approval *Approval) (*Approval, error)
	Latest(ctx context.Context, ref SubjectRef) (*Approval, error)
	ListBySubject(ctx context.Context, ref SubjectRef, opts ListOptions) ([]*Approval, error)
	CountBySubject(ctx context.Context, ref SubjectRef) (int, error)
	DeleteBySubject(ctx context.Context, ref SubjectRef) (int, error)
}

// NotFoundError is returned when a subject has no recorded approvals.
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
