// Package usersink forwards activity events to go-users activity sinks.
package usersink

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-approval/pkg/activity"
	"github.com/goliatone/go-approval/pkg/interfaces"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook maps events to go-users activity records.
type Hook struct {
	Sink interfaces.ActivitySink
}

// Notify converts event and logs it. Events without a verb are skipped.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil || strings.TrimSpace(event.Verb) == "" {
		return nil
	}

	data := make(map[string]any, len(event.Metadata)+2)
	maps.Copy(data, event.Metadata)
	if event.DefinitionCode != "" {
		data["definition_code"] = event.DefinitionCode
	}
	if len(event.Recipients) > 0 {
		data["recipients"] = append([]string(nil), event.Recipients...)
	}

	record := usertypes.ActivityRecord{
		UserID:     parseUUID(event.UserID),
		ActorID:    parseUUID(event.ActorID),
		TenantID:   parseUUID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		Data:       data,
		OccurredAt: event.OccurredAt,
	}
	return h.Sink.Log(ctx, record)
}

func parseUUID(value string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return id
}
