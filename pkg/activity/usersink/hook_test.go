package usersink_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-approval/pkg/activity"
	"github.com/goliatone/go-approval/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsMarkedEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	tenantID := uuid.New()

	event := activity.Event{
		Verb:           "approval.marked",
		ActorID:        actorID.String(),
		TenantID:       tenantID.String(),
		ObjectType:     "pages",
		ObjectID:       "42",
		Channel:        "approval",
		DefinitionCode: "approval:published",
		Recipients:     []string{"editor@example.com"},
		Metadata: map[string]any{
			"status":          "published",
			"previous_status": "pending",
		},
		OccurredAt: now,
	}

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID {
		t.Fatalf("expected actor %s got %s", actorID, record.ActorID)
	}
	if record.UserID != uuid.Nil {
		t.Fatalf("expected empty user id, got %s", record.UserID)
	}
	if record.TenantID != tenantID {
		t.Fatalf("expected tenant %s got %s", tenantID, record.TenantID)
	}
	if record.Verb != "approval.marked" || record.ObjectType != "pages" || record.ObjectID != "42" {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "approval" {
		t.Fatalf("expected channel approval got %q", record.Channel)
	}
	if record.OccurredAt != now {
		t.Fatalf("expected occurred_at %v got %v", now, record.OccurredAt)
	}
	if record.Data["definition_code"] != "approval:published" {
		t.Fatalf("expected definition_code metadata got %v", record.Data["definition_code"])
	}
	if record.Data["status"] != "published" || record.Data["previous_status"] != "pending" {
		t.Fatalf("expected status metadata got %v", record.Data)
	}
	recipients, ok := record.Data["recipients"].([]string)
	if !ok || len(recipients) != 1 || recipients[0] != "editor@example.com" {
		t.Fatalf("expected recipients metadata got %v", record.Data["recipients"])
	}
}

func TestHookNotifySkipsMissingVerb(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})

	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
}

func TestHookNotifyReturnsSinkError(t *testing.T) {
	boom := errors.New("sink down")
	hook := usersink.Hook{Sink: &recordingSink{err: boom}}

	if err := hook.Notify(context.Background(), activity.Event{Verb: "approval.marked"}); !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
}
