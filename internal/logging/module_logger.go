package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-approval/pkg/interfaces"
)

const (
	rootModule     = "approval"
	statusesModule = "approval.statuses"
	ledgerModule   = "approval.ledger"
	workflowModule = "approval.workflow"
)

const (
	fieldSubjectType = "subject_type"
	fieldSubjectID   = "subject_id"
	fieldStatus      = "status"
)

// ModuleLogger returns a logger scoped to module. A nil provider yields a
// no-op logger. The module name is attached as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// StatusesLogger returns the logger namespace reserved for the status catalog.
func StatusesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, statusesModule)
}

// LedgerLogger returns the logger namespace reserved for approval history.
func LedgerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, ledgerModule)
}

// WorkflowLogger returns the logger namespace reserved for subject workflows.
func WorkflowLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, workflowModule)
}

// SubjectFields returns the subject type, subject id and status fields used
// on transition entries. Empty values are skipped.
func SubjectFields(subjectType, subjectID, status string) map[string]any {
	fields := make(map[string]any, 3)
	if trimmed := strings.TrimSpace(subjectType); trimmed != "" {
		fields[fieldSubjectType] = trimmed
	}
	if trimmed := strings.TrimSpace(subjectID); trimmed != "" {
		fields[fieldSubjectID] = trimmed
	}
	if trimmed := strings.TrimSpace(status); trimmed != "" {
		fields[fieldStatus] = trimmed
	}
	return fields
}

// WithSubjectContext attaches SubjectFields to logger.
func WithSubjectContext(logger interfaces.Logger, subjectType, subjectID, status string) interfaces.Logger {
	return WithFields(logger, SubjectFields(subjectType, subjectID, status))
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
