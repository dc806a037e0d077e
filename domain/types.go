package domain

import internaldomain "github.com/goliatone/go-approval/internal/domain"

// Status is a status name as stored in the catalog.
type Status = internaldomain.Status

const (
	// StatusPublished identifies records available to consumers.
	StatusPublished = internaldomain.StatusPublished
	// StatusDraft indicates records still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPending marks records waiting for review.
	StatusPending = internaldomain.StatusPending
	// StatusDeclined marks records rejected during review.
	StatusDeclined = internaldomain.StatusDeclined
	// StatusSpam flags records identified as spam.
	StatusSpam = internaldomain.StatusSpam
	// StatusEdited marks records changed after publication.
	StatusEdited = internaldomain.StatusEdited
	// StatusHidden marks records withdrawn from listings.
	StatusHidden = internaldomain.StatusHidden
)

// KnownStatuses returns the recognised status tokens.
func KnownStatuses() []Status {
	return internaldomain.KnownStatuses()
}

// IsKnownStatus reports whether name is a recognised status token.
func IsKnownStatus(name string) bool {
	return internaldomain.IsKnownStatus(name)
}
