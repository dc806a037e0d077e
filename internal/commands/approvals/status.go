package approvalcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-approval/internal/commands"
	"github.com/goliatone/go-approval/internal/statuses"
	"github.com/goliatone/go-approval/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	createStatusMessageType = "approval.status.create"
	updateStatusMessageType = "approval.status.update"
)

// CreateStatusCommand adds a status to the catalog.
type CreateStatusCommand struct {
	Name     string `json:"name"`
	Visible  bool   `json:"visible"`
	Position *int   `json:"position,omitempty"`
}

// Type implements command.Message.
func (CreateStatusCommand) Type() string { return createStatusMessageType }

// Validate checks presence only. Name format is enforced by the catalog.
func (m CreateStatusCommand) Validate() error {
	return validation.Errors{
		"name": validation.Validate(strings.TrimSpace(m.Name), validation.Required),
	}.Filter()
}

// CreateStatusHandler executes CreateStatusCommand.
type CreateStatusHandler struct {
	inner *commands.Handler[CreateStatusCommand]
}

// NewCreateStatusHandler constructs a handler wired to the catalog service.
func NewCreateStatusHandler(service statuses.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateStatusCommand]) *CreateStatusHandler {
	exec := func(ctx context.Context, msg CreateStatusCommand) error {
		_, err := service.CreateStatus(ctx, statuses.CreateStatusInput{
			Name:     msg.Name,
			Visible:  msg.Visible,
			Position: msg.Position,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CreateStatusCommand]{
		commands.WithLogger[CreateStatusCommand](logger),
		commands.WithOperation[CreateStatusCommand]("status.create"),
		commands.WithMessageFields(func(msg CreateStatusCommand) map[string]any {
			return map[string]any{"name": msg.Name, "visible": msg.Visible}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateStatusHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CreateStatusCommand].
func (h *CreateStatusHandler) Execute(ctx context.Context, msg CreateStatusCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateStatusCommand changes the visibility or position of a status.
type UpdateStatusCommand struct {
	ID       uuid.UUID `json:"id"`
	Visible  *bool     `json:"visible,omitempty"`
	Position *int      `json:"position,omitempty"`
}

// Type implements command.Message.
func (UpdateStatusCommand) Type() string { return updateStatusMessageType }

// Validate implements command.Message.
func (m UpdateStatusCommand) Validate() error {
	errs := validation.Errors{}
	if m.ID == uuid.Nil {
		errs["id"] = validation.NewError("approval.status.update.id_required", "id is required")
	}
	if m.Visible == nil && m.Position == nil {
		errs["visible"] = validation.NewError("approval.status.update.empty", "visible or position must be set")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateStatusHandler executes UpdateStatusCommand.
type UpdateStatusHandler struct {
	inner *commands.Handler[UpdateStatusCommand]
}

// NewUpdateStatusHandler constructs a handler wired to the catalog service.
func NewUpdateStatusHandler(service statuses.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateStatusCommand]) *UpdateStatusHandler {
	exec := func(ctx context.Context, msg UpdateStatusCommand) error {
		_, err := service.UpdateStatus(ctx, statuses.UpdateStatusInput{
			ID:       msg.ID,
			Visible:  msg.Visible,
			Position: msg.Position,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UpdateStatusCommand]{
		commands.WithLogger[UpdateStatusCommand](logger),
		commands.WithOperation[UpdateStatusCommand]("status.update"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateStatusHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[UpdateStatusCommand].
func (h *UpdateStatusHandler) Execute(ctx context.Context, msg UpdateStatusCommand) error {
	return h.inner.Execute(ctx, msg)
}
