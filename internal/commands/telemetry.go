package commands

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-approval/internal/logging"
	"github.com/goliatone/go-approval/pkg/interfaces"
	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

// TelemetryStatus is the outcome of one execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to telemetry callbacks after each execution.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry runs after every execution, successful or not.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes with their duration. Failures carry the
// error text code so a missing subject and an unknown status can be told
// apart in the logs.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = logging.OrNoOp(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		if code := errorTextCode(info.Error); code != "" {
			args = append(args, "error_code", code)
		}
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("command.execute.success", args...)
		case TelemetryStatusContextError:
			entry.Error("command.execute.context_error", append(args, "error", info.Error)...)
		default:
			entry.Error("command.execute.failed", append(args, "error", info.Error)...)
		}
	}
}

func errorTextCode(err error) string {
	var wrapped *goerrors.Error
	if err == nil || !errors.As(err, &wrapped) {
		return ""
	}
	return wrapped.TextCode
}
