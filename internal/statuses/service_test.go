package statuses

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestServiceCreateStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.MustParse("00000000-0000-0000-0000-00000000b001")

	svc := NewService(NewMemoryRepository(),
		WithIDDeriver(func(string) uuid.UUID { return id }),
		WithNow(func() time.Time { return now }),
	)

	status, err := svc.CreateStatus(ctx, CreateStatusInput{Name: "  published ", Visible: true})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}
	if status.ID != id {
		t.Fatalf("expected id %s, got %s", id, status.ID)
	}
	if status.Name != "published" {
		t.Fatalf("expected trimmed name, got %q", status.Name)
	}
	if !status.Visible {
		t.Fatalf("expected visible status")
	}
	if status.Position != 1 {
		t.Fatalf("expected first position, got %d", status.Position)
	}
	if !status.CreatedAt.Equal(now) || !status.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps")
	}
}

func TestServiceCreateStatusDerivesStableIDs(t *testing.T) {
	ctx := context.Background()
	first, err := NewService(NewMemoryRepository()).CreateStatus(ctx, CreateStatusInput{Name: "draft"})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}
	second, err := NewService(NewMemoryRepository()).CreateStatus(ctx, CreateStatusInput{Name: "draft"})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}
	if first.ID == uuid.Nil || first.ID != second.ID {
		t.Fatalf("expected stable derived id, got %s and %s", first.ID, second.ID)
	}
}

func TestServiceCreateStatusValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	cases := []struct {
		name   string
		input  string
		target error
	}{
		{name: "empty", input: "   ", target: ErrStatusNameRequired},
		{name: "spaces", input: "needs review", target: ErrStatusNameInvalid},
		{name: "too long", input: strings.Repeat("b", maxNameLength+1), target: ErrStatusNameInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateStatus(ctx, CreateStatusInput{Name: tc.input})
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if validation.Field != "name" {
				t.Fatalf("expected name field, got %s", validation.Field)
			}
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestServiceCreateStatusDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if _, err := svc.CreateStatus(ctx, CreateStatusInput{Name: "spam"}); err != nil {
		t.Fatalf("create status: %v", err)
	}
	_, err := svc.CreateStatus(ctx, CreateStatusInput{Name: "spam"})
	var validation *ValidationError
	if !errors.As(err, &validation) || !errors.Is(err, ErrStatusNameExists) {
		t.Fatalf("expected duplicate name validation error, got %v", err)
	}
}

func TestServiceLookupIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if _, err := svc.CreateStatus(ctx, CreateStatusInput{Name: "published", Visible: true}); err != nil {
		t.Fatalf("create status: %v", err)
	}
	if _, err := svc.GetStatusByName(ctx, "published"); err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if _, err := svc.GetStatusByName(ctx, "Published"); !errors.Is(err, ErrStatusNotFound) {
		t.Fatalf("expected not found for differently cased name, got %v", err)
	}
	if _, err := svc.GetStatusByName(ctx, ""); !errors.Is(err, ErrStatusNotFound) {
		t.Fatalf("expected not found for empty name, got %v", err)
	}
}

func TestServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(NewMemoryRepository(), WithNow(func() time.Time { return current }))

	created, err := svc.CreateStatus(ctx, CreateStatusInput{Name: "hidden"})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}

	current = current.Add(time.Hour)
	visible := true
	position := 9
	updated, err := svc.UpdateStatus(ctx, UpdateStatusInput{ID: created.ID, Visible: &visible, Position: &position})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if !updated.Visible || updated.Position != 9 {
		t.Fatalf("expected visible status at position 9, got %+v", updated)
	}
	if !updated.UpdatedAt.Equal(current) {
		t.Fatalf("expected updated_at %s, got %s", current, updated.UpdatedAt)
	}
	if updated.Name != "hidden" {
		t.Fatalf("name must not change, got %s", updated.Name)
	}

	if _, err := svc.UpdateStatus(ctx, UpdateStatusInput{ID: uuid.New()}); !errors.Is(err, ErrStatusNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceListsFollowCatalogOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if _, err := svc.EnsureStatuses(ctx, []Seed{
		{Name: "published", Visible: true},
		{Name: "draft"},
		{Name: "declined"},
	}); err != nil {
		t.Fatalf("ensure statuses: %v", err)
	}

	all, err := svc.ListStatuses(ctx)
	if err != nil {
		t.Fatalf("list statuses: %v", err)
	}
	if got := names(all); !equalStrings(got, []string{"published", "draft", "declined"}) {
		t.Fatalf("unexpected catalog order %v", got)
	}

	visible, err := svc.ListVisibleStatuses(ctx)
	if err != nil {
		t.Fatalf("list visible: %v", err)
	}
	if got := names(visible); !equalStrings(got, []string{"published"}) {
		t.Fatalf("unexpected visible statuses %v", got)
	}

	selectable, err := svc.SelectableNames(ctx)
	if err != nil {
		t.Fatalf("selectable names: %v", err)
	}
	if !equalStrings(selectable, []string{"", "published", "draft", "declined"}) {
		t.Fatalf("unexpected selectable names %v", selectable)
	}
}

func TestServiceSelectableNamesEmptyCatalog(t *testing.T) {
	selectable, err := NewService(NewMemoryRepository()).SelectableNames(context.Background())
	if err != nil {
		t.Fatalf("selectable names: %v", err)
	}
	if !equalStrings(selectable, []string{""}) {
		t.Fatalf("expected only the blank entry, got %v", selectable)
	}
}

func TestServiceEnsureStatusesIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	first, err := svc.EnsureStatuses(ctx, []Seed{{Name: "published", Visible: true}, {Name: "draft"}})
	if err != nil {
		t.Fatalf("ensure statuses: %v", err)
	}

	// existing visibility is kept even when the seed disagrees
	second, err := svc.EnsureStatuses(ctx, []Seed{{Name: "draft", Visible: true}, {Name: "published", Visible: true}, {Name: "spam"}})
	if err != nil {
		t.Fatalf("ensure statuses again: %v", err)
	}
	if len(second) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(second))
	}
	if second[0].ID != first[1].ID || second[0].Visible {
		t.Fatalf("expected existing draft to be returned unchanged, got %+v", second[0])
	}

	all, err := svc.ListStatuses(ctx)
	if err != nil {
		t.Fatalf("list statuses: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 catalog entries, got %d", len(all))
	}
}

func TestNewServicePanicsWithoutRepository(t *testing.T) {
	defer func() {
		if recovered := recover(); recovered != ErrStatusRepositoryRequired {
			t.Fatalf("expected ErrStatusRepositoryRequired panic, got %v", recovered)
		}
	}()
	NewService(nil)
}

func names(records []*Status) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.Name)
	}
	return out
}

func equalStrings(a, b []string) bool {
	return slices.Equal(a, b)
}
