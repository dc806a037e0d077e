package approvals

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SubjectRef identifies the record an approval belongs to. Type is the
// subject's kind (usually its table name) and ID its primary key rendered as
// text.
type SubjectRef struct {
	Type string
	ID   string
}

// IsZero reports whether either half of the reference is missing.
func (r SubjectRef) IsZero() bool {
	return r.Type == "" || r.ID == ""
}

func (r SubjectRef) String() string {
	return r.Type + ":" + r.ID
}

// Approval records one status transition of a subject. Rows are written once
// and only removed together with their subject.
type Approval struct {
	bun.BaseModel `bun:"table:approvals,alias:apr"`

	ID               uuid.UUID  `bun:",pk,type:uuid"                      json:"id"`
	ApprovableType   string     `bun:"approvable_type,notnull"            json:"approvable_type"`
	ApprovableID     string     `bun:"approvable_id,notnull"              json:"approvable_id"`
	ApprovalStatusID uuid.UUID  `bun:"approval_status_id,notnull,type:uuid" json:"approval_status_id"`
	ExpiresAt        *time.Time `bun:"expires_at"                         json:"expires_at,omitempty"`
	CreatedBy        *uuid.UUID `bun:"created_by,type:uuid"               json:"created_by,omitempty"`
	UpdatedBy        *uuid.UUID `bun:"updated_by,type:uuid"               json:"updated_by,omitempty"`
	CreatedAt        time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Subject returns the polymorphic reference of the approval.
func (a *Approval) Subject() SubjectRef {
	if a == nil {
		return SubjectRef{}
	}
	return SubjectRef{Type: a.ApprovableType, ID: a.ApprovableID}
}

// ActiveAt reports whether the approval still applies at t. Approvals without
// an expiry never lapse.
func (a *Approval) ActiveAt(t time.Time) bool {
	if a == nil {
		return false
	}
	if a.ExpiresAt == nil {
		return true
	}
	return t.Before(*a.ExpiresAt)
}

// ListOptions bounds history listings. A zero Limit means no limit, and
// Offset only applies together with a Limit.
type ListOptions struct {
	Limit  int
	Offset int
}

// NewID returns a time ordered identifier so that ties on created_at resolve
// in insertion order.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
