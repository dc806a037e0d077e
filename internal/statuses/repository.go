package statuses

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewStatusRepository creates a generic repository for catalog records keyed
// by name.
func NewStatusRepository(db *bun.DB) repository.Repository[*Status] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Status]{
		NewRecord: func() *Status { return &Status{} },
		GetID: func(s *Status) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Status, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(s *Status) string {
			return s.Name
		},
	})
}
