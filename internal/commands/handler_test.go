package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-approval/internal/statuses"
	"github.com/goliatone/go-approval/internal/workflow"
	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct {
	Subject string
}

func (testMessage) Type() string { return "approval.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "approval.test.invalid" }

func (invalidMessage) Validate() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerCategorisesDomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		validation bool
	}{
		{name: "unknown status", err: &workflow.UnknownStatusError{Name: "archived"}, validation: true},
		{name: "invalid status name", err: &statuses.ValidationError{Field: "name", Err: statuses.ErrStatusNameExists}, validation: true},
		{name: "missing subject", err: fmt.Errorf("mark: %w", &workflow.NotFoundError{SubjectType: "pages", ID: "9"})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler[testMessage](func(context.Context, testMessage) error { return tc.err })
			err := h.Execute(context.Background(), testMessage{})
			if got := goerrors.IsCategory(err, goerrors.CategoryValidation); got != tc.validation {
				t.Fatalf("validation category = %v, want %v (%v)", got, tc.validation, err)
			}
			if !tc.validation && !goerrors.IsCategory(err, goerrors.CategoryCommand) {
				t.Fatalf("expected command category, got %v", err)
			}
		})
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerTelemetryReceivesFields(t *testing.T) {
	var got []TelemetryInfo
	h := NewHandler[testMessage](
		func(context.Context, testMessage) error { return nil },
		WithOperation[testMessage]("subject.mark"),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"subject": msg.Subject}
		}),
		WithTelemetry(Telemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
			got = append(got, info)
		})),
	)

	if err := h.Execute(context.Background(), testMessage{Subject: "pages:1"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one telemetry call, got %d", len(got))
	}
	info := got[0]
	if info.Status != TelemetryStatusSuccess || info.Command != "approval.test.message" || info.Operation != "subject.mark" {
		t.Fatalf("unexpected telemetry %+v", info)
	}
	if info.Fields["subject"] != "pages:1" {
		t.Fatalf("expected message fields, got %v", info.Fields)
	}
}
