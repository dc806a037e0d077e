package workflow

import (
	"context"

	"github.com/goliatone/go-approval/internal/domain"
)

// Scope binds workflow operations to one status name.
type Scope[T Subject] struct {
	workflow *Workflow[T]
	name     string
}

// Name returns the status the scope is bound to.
func (s *Scope[T]) Name() string {
	return s.name
}

func (s *Scope[T]) Mark(ctx context.Context, subject T, opts ...MarkOption) (T, error) {
	return s.workflow.Mark(ctx, subject, s.name, opts...)
}

func (s *Scope[T]) MarkByID(ctx context.Context, id string, opts ...MarkOption) (T, error) {
	return s.workflow.MarkByID(ctx, id, s.name, opts...)
}

func (s *Scope[T]) Is(ctx context.Context, subject T) (bool, error) {
	return s.workflow.Is(ctx, subject, s.name)
}

func (s *Scope[T]) Count(ctx context.Context, criteria ...Criteria) (int, error) {
	return s.workflow.Count(ctx, s.name, criteria...)
}

func (s *Scope[T]) Find(ctx context.Context, criteria ...Criteria) ([]T, error) {
	return s.workflow.Find(ctx, s.name, criteria...)
}

func (s *Scope[T]) FindOne(ctx context.Context, criteria ...Criteria) (T, error) {
	return s.workflow.FindOne(ctx, s.name, criteria...)
}

func (s *Scope[T]) FindByID(ctx context.Context, id string) (T, error) {
	return s.workflow.FindByID(ctx, s.name, id)
}

func (s *Scope[T]) FindBy(ctx context.Context, attribute string, value any) (T, error) {
	return s.workflow.FindBy(ctx, s.name, attribute, value)
}

// Scope returns the scope for name. Known statuses come from the table built
// at construction, any other name gets a fresh scope.
func (w *Workflow[T]) Scope(name string) *Scope[T] {
	if scope, ok := w.scopes[domain.Status(name)]; ok {
		return scope
	}
	return &Scope[T]{workflow: w, name: name}
}

func (w *Workflow[T]) Published() *Scope[T] { return w.scopes[domain.StatusPublished] }
func (w *Workflow[T]) Draft() *Scope[T]     { return w.scopes[domain.StatusDraft] }
func (w *Workflow[T]) Pending() *Scope[T]   { return w.scopes[domain.StatusPending] }
func (w *Workflow[T]) Declined() *Scope[T]  { return w.scopes[domain.StatusDeclined] }
func (w *Workflow[T]) Spam() *Scope[T]      { return w.scopes[domain.StatusSpam] }
func (w *Workflow[T]) Edited() *Scope[T]    { return w.scopes[domain.StatusEdited] }
func (w *Workflow[T]) Hidden() *Scope[T]    { return w.scopes[domain.StatusHidden] }
