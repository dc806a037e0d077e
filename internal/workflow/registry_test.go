package workflow

import (
	"context"
	"errors"
	"slices"
	"testing"
)

type stubMarker struct {
	subjectType string
	calls       []string
}

func (s *stubMarker) SubjectType() string { return s.subjectType }

func (s *stubMarker) MarkSubject(_ context.Context, id, name string, _ ...MarkOption) (Subject, error) {
	s.calls = append(s.calls, id+":"+name)
	return nil, nil
}

func TestRegistryRoutesBySubjectType(t *testing.T) {
	registry := NewRegistry()
	pages := &stubMarker{subjectType: "pages"}
	posts := &stubMarker{subjectType: "posts"}
	for _, marker := range []*stubMarker{posts, pages} {
		if err := registry.Register(marker); err != nil {
			t.Fatalf("register %s: %v", marker.subjectType, err)
		}
	}

	if _, err := registry.Mark(context.Background(), "pages", "7", "published"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if !slices.Equal(pages.calls, []string{"7:published"}) || len(posts.calls) != 0 {
		t.Fatalf("unexpected routing pages=%v posts=%v", pages.calls, posts.calls)
	}
	if got := registry.SubjectTypes(); !slices.Equal(got, []string{"pages", "posts"}) {
		t.Fatalf("unexpected subject types %v", got)
	}
}

func TestRegistryRejectsDuplicatesAndUnknownTypes(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&stubMarker{subjectType: "pages"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(&stubMarker{subjectType: "pages"}); !errors.Is(err, ErrDuplicateSubject) {
		t.Fatalf("expected ErrDuplicateSubject, got %v", err)
	}
	if _, err := registry.Mark(context.Background(), "comments", "1", "spam"); !errors.Is(err, ErrUnknownSubject) {
		t.Fatalf("expected ErrUnknownSubject, got %v", err)
	}
}
