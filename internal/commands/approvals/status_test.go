package approvalcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-approval/internal/statuses"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

func TestCreateStatusHandlerCreatesStatus(t *testing.T) {
	ctx := context.Background()
	service := statuses.NewService(statuses.NewMemoryRepository())
	handler := NewCreateStatusHandler(service, nil)

	if err := handler.Execute(ctx, CreateStatusCommand{Name: "archived", Visible: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	status, err := service.GetStatusByName(ctx, "archived")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if !status.Visible {
		t.Fatalf("expected visible status")
	}
}

func TestCreateStatusHandlerRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	service := statuses.NewService(statuses.NewMemoryRepository())
	handler := NewCreateStatusHandler(service, nil)

	if err := handler.Execute(ctx, CreateStatusCommand{Name: "spam"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	err := handler.Execute(ctx, CreateStatusCommand{Name: "spam"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if !errors.Is(err, statuses.ErrStatusNameExists) {
		t.Fatalf("expected ErrStatusNameExists, got %v", err)
	}
}

func TestCreateStatusCommandRequiresName(t *testing.T) {
	handler := NewCreateStatusHandler(statuses.NewService(statuses.NewMemoryRepository()), nil)
	if err := handler.Execute(context.Background(), CreateStatusCommand{Name: "  "}); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	ctx := context.Background()
	service := statuses.NewService(statuses.NewMemoryRepository())
	created, err := service.CreateStatus(ctx, statuses.CreateStatusInput{Name: "hidden"})
	if err != nil {
		t.Fatalf("create status: %v", err)
	}
	handler := NewUpdateStatusHandler(service, nil)

	visible := true
	if err := handler.Execute(ctx, UpdateStatusCommand{ID: created.ID, Visible: &visible}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	updated, _ := service.GetStatus(ctx, created.ID)
	if !updated.Visible {
		t.Fatalf("expected status to become visible")
	}

	if err := handler.Execute(ctx, UpdateStatusCommand{ID: created.ID}); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error for empty update, got %v", err)
	}
	if err := handler.Execute(ctx, UpdateStatusCommand{ID: uuid.New(), Visible: &visible}); !errors.Is(err, statuses.ErrStatusNotFound) {
		t.Fatalf("expected ErrStatusNotFound, got %v", err)
	}
}
