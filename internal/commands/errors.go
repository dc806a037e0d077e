package commands

import (
	"context"
	"errors"

	"github.com/goliatone/go-approval/internal/statuses"
	"github.com/goliatone/go-approval/internal/workflow"
	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
	unknownStatusCode       = "APPROVAL_UNKNOWN_STATUS"
	invalidStatusCode       = "APPROVAL_INVALID_STATUS"
	subjectNotFoundCode     = "APPROVAL_SUBJECT_NOT_FOUND"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

// wrapExecuteError tags domain failures the caller can fix as validation
// errors and everything else as command errors.
func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	var unknown *workflow.UnknownStatusError
	var invalid *statuses.ValidationError
	var notFound *workflow.NotFoundError
	switch {
	case errors.As(err, &unknown):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "unknown approval status").
			WithTextCode(unknownStatusCode)
	case errors.As(err, &invalid):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid approval status").
			WithTextCode(invalidStatusCode)
	case errors.As(err, &notFound):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "approval subject not found").
			WithTextCode(subjectNotFoundCode)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrapContextError(err)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(commandExecuteFailed)
}
