package statuses

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Status is one named state in the approval catalog.
type Status struct {
	bun.BaseModel `bun:"table:approval_statuses,alias:ast"`

	ID        uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	Name      string    `bun:"name,notnull,unique"    json:"name"`
	Visible   bool      `bun:"visible,notnull"        json:"visible"`
	Position  int       `bun:"position,notnull"       json:"position"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Seed describes a status that should exist after bootstrap.
type Seed struct {
	Name    string
	Visible bool
}
