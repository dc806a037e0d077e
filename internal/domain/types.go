package domain

// Status is a status name as stored in the catalog.
type Status string

const (
	// StatusPublished identifies records available to consumers
	StatusPublished Status = "published"
	// StatusDraft indicates records still under preparation
	StatusDraft Status = "draft"
	// StatusPending marks records waiting for review
	StatusPending Status = "pending"
	// StatusDeclined marks records rejected during review
	StatusDeclined Status = "declined"
	// StatusSpam flags records identified as spam
	StatusSpam Status = "spam"
	// StatusEdited marks records changed after publication
	StatusEdited Status = "edited"
	// StatusHidden marks records withdrawn from listings
	StatusHidden Status = "hidden"
)

// String returns the catalog name.
func (s Status) String() string {
	return string(s)
}
