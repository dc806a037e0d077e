package workflow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrDuplicateSubject is returned when two workflows claim one subject type.
var ErrDuplicateSubject = errors.New("workflow: subject type already registered")

// Marker is the type-erased side of a Workflow.
type Marker interface {
	SubjectType() string
	MarkSubject(ctx context.Context, id string, name string, opts ...MarkOption) (Subject, error)
}

// Registry routes transitions to workflows by subject type.
type Registry struct {
	mu      sync.RWMutex
	markers map[string]Marker
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{markers: make(map[string]Marker)}
}

// Register adds marker under its subject type.
func (r *Registry) Register(marker Marker) error {
	if marker == nil {
		return ErrSubjectRequired
	}
	subjectType := marker.SubjectType()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.markers[subjectType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSubject, subjectType)
	}
	r.markers[subjectType] = marker
	return nil
}

// Lookup returns the marker registered for subjectType.
func (r *Registry) Lookup(subjectType string) (Marker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	marker, ok := r.markers[subjectType]
	return marker, ok
}

// Mark marks the subject identified by subjectType and id.
func (r *Registry) Mark(ctx context.Context, subjectType, id, name string, opts ...MarkOption) (Subject, error) {
	marker, ok := r.Lookup(subjectType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubject, subjectType)
	}
	return marker.MarkSubject(ctx, id, name, opts...)
}

// SubjectTypes lists registered subject types in sorted order.
func (r *Registry) SubjectTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.markers))
	for subjectType := range r.markers {
		types = append(types, subjectType)
	}
	slices.Sort(types)
	return types
}
