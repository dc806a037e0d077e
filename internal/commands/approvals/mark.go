package approvalcmd

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-approval/internal/commands"
	"github.com/goliatone/go-approval/internal/logging"
	"github.com/goliatone/go-approval/internal/workflow"
	"github.com/goliatone/go-approval/pkg/interfaces"
	"github.com/google/uuid"
)

const markSubjectMessageType = "approval.subject.mark"

// MarkSubjectCommand moves a stored subject to a status.
type MarkSubjectCommand struct {
	SubjectType string     `json:"subject_type"`
	SubjectID   string     `json:"subject_id"`
	Status      string     `json:"status"`
	ActorID     *uuid.UUID `json:"actor_id,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Type implements command.Message.
func (MarkSubjectCommand) Type() string { return markSubjectMessageType }

// Validate implements command.Message.
func (m MarkSubjectCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.SubjectType) == "" {
		errs["subject_type"] = validation.NewError("approval.subject.mark.subject_type_required", "subject_type is required")
	}
	if strings.TrimSpace(m.SubjectID) == "" {
		errs["subject_id"] = validation.NewError("approval.subject.mark.subject_id_required", "subject_id is required")
	}
	if m.Status == "" {
		errs["status"] = validation.NewError("approval.subject.mark.status_required", "status is required")
	}
	if m.ActorID != nil && *m.ActorID == uuid.Nil {
		errs["actor_id"] = validation.NewError("approval.subject.mark.actor_id_invalid", "actor_id must not be the nil uuid")
	}
	if m.ExpiresAt != nil && m.ExpiresAt.IsZero() {
		errs["expires_at"] = validation.NewError("approval.subject.mark.expires_at_invalid", "expires_at must be a valid time")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubjectMarker routes a transition to the workflow owning the subject type.
// *workflow.Registry satisfies it.
type SubjectMarker interface {
	Mark(ctx context.Context, subjectType, id, name string, opts ...workflow.MarkOption) (workflow.Subject, error)
}

// MarkSubjectHandler executes MarkSubjectCommand.
type MarkSubjectHandler struct {
	inner *commands.Handler[MarkSubjectCommand]
}

// NewMarkSubjectHandler constructs a handler dispatching to marker.
func NewMarkSubjectHandler(marker SubjectMarker, logger interfaces.Logger, opts ...commands.HandlerOption[MarkSubjectCommand]) *MarkSubjectHandler {
	exec := func(ctx context.Context, msg MarkSubjectCommand) error {
		var markOpts []workflow.MarkOption
		if msg.ActorID != nil {
			markOpts = append(markOpts, workflow.WithActor(*msg.ActorID))
		}
		if msg.ExpiresAt != nil {
			markOpts = append(markOpts, workflow.WithExpiry(*msg.ExpiresAt))
		}
		_, err := marker.Mark(ctx, strings.TrimSpace(msg.SubjectType), strings.TrimSpace(msg.SubjectID), msg.Status, markOpts...)
		return err
	}

	handlerOpts := []commands.HandlerOption[MarkSubjectCommand]{
		commands.WithLogger[MarkSubjectCommand](logger),
		commands.WithOperation[MarkSubjectCommand]("subject.mark"),
		commands.WithMessageFields(func(msg MarkSubjectCommand) map[string]any {
			fields := logging.SubjectFields(msg.SubjectType, msg.SubjectID, msg.Status)
			if msg.ActorID != nil {
				fields["actor_id"] = *msg.ActorID
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MarkSubjectHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[MarkSubjectCommand].
func (h *MarkSubjectHandler) Execute(ctx context.Context, msg MarkSubjectCommand) error {
	return h.inner.Execute(ctx, msg)
}
