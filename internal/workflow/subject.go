package workflow

import "github.com/google/uuid"

// Subject is a persisted bun model that carries an approval status. The
// status pointer maps to a nullable column on the subject's table.
type Subject interface {
	ApprovalSubjectID() string
	ApprovalStatusID() *uuid.UUID
	SetApprovalStatusID(id *uuid.UUID)
}

const (
	defaultIDColumn     = "id"
	defaultStatusColumn = "approval_status_id"
)

// Config describes how a subject type is stored.
type Config[T Subject] struct {
	// SubjectType is recorded on every approval. Defaults to the table name.
	SubjectType string
	// NewRecord returns an empty model used for queries and lookups.
	NewRecord func() T
	// IDColumn defaults to "id".
	IDColumn string
	// StatusColumn defaults to "approval_status_id".
	StatusColumn string
}
