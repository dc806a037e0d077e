package approvals

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewApprovalRepository creates a generic repository for ledger rows.
func NewApprovalRepository(db *bun.DB) repository.Repository[*Approval] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Approval]{
		NewRecord: func() *Approval { return &Approval{} },
		GetID: func(a *Approval) uuid.UUID {
			return a.ID
		},
		SetID: func(a *Approval, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(a *Approval) string {
			return a.ID.String()
		},
	})
}
