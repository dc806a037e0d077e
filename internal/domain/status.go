package domain

import "slices"

var knownStatuses = []Status{
	StatusPublished,
	StatusDraft,
	StatusPending,
	StatusDeclined,
	StatusSpam,
	StatusEdited,
	StatusHidden,
}

// KnownStatuses returns the status tokens that get a dedicated workflow scope.
// Catalogs may hold additional names; those are reachable through the generic
// scope lookup only.
func KnownStatuses() []Status {
	return slices.Clone(knownStatuses)
}

// IsKnownStatus reports whether name matches one of the recognised tokens.
// Matching is case-sensitive.
func IsKnownStatus(name string) bool {
	return slices.Contains(knownStatuses, Status(name))
}

// DefaultVisibility reports whether a recognised status should appear in public
// listings when seeded without explicit configuration.
func DefaultVisibility(status Status) bool {
	return status == StatusPublished
}
