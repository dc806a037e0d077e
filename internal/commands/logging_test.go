package commands

import (
	"context"
	"errors"
	"maps"
	"testing"
	"time"

	"github.com/goliatone/go-approval/internal/logging"
	"github.com/goliatone/go-approval/internal/workflow"
	"github.com/goliatone/go-approval/pkg/interfaces"
)

type logEntry struct {
	level  string
	msg    string
	args   []any
	fields map[string]any
}

type recordingLogger struct {
	fields  map[string]any
	entries *[]logEntry
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{entries: &[]logEntry{}}
}

func (l *recordingLogger) record(level, msg string, args []any) {
	*l.entries = append(*l.entries, logEntry{level: level, msg: msg, args: args, fields: maps.Clone(l.fields)})
}

func (l *recordingLogger) Trace(msg string, args ...any) { l.record("trace", msg, args) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args) }

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = map[string]any{}
	}
	maps.Copy(merged, fields)
	return &recordingLogger{fields: merged, entries: l.entries}
}

type recordingProvider struct {
	names  []string
	logger *recordingLogger
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return p.logger
}

func argValue(args []any, key string) (any, bool) {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == key {
			return args[i+1], true
		}
	}
	return nil, false
}

func TestCommandLoggerScopesWorkflowModule(t *testing.T) {
	provider := &recordingProvider{logger: newRecordingLogger()}

	CommandLogger(provider, "").Info("ready")

	if len(provider.names) != 1 || provider.names[0] != "approval.commands.workflow" {
		t.Fatalf("expected approval.commands.workflow, got %v", provider.names)
	}
	entries := *provider.logger.entries
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].fields
	if fields["module"] != "approval.commands.workflow" || fields["command_module"] != "workflow" || fields["component"] != "command" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestDefaultTelemetryLogsSubjectFieldsAndErrorCode(t *testing.T) {
	logger := newRecordingLogger()
	h := NewHandler[testMessage](
		func(context.Context, testMessage) error {
			return &workflow.NotFoundError{SubjectType: "pages", ID: "5000", Status: "declined"}
		},
		WithLogger[testMessage](logger),
		WithOperation[testMessage]("subject.mark"),
		WithMessageFields(func(testMessage) map[string]any {
			return logging.SubjectFields("pages", "5000", "declined")
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected error")
	}

	var failed *logEntry
	for i, entry := range *logger.entries {
		if entry.msg == "command.execute.failed" {
			failed = &(*logger.entries)[i]
		}
	}
	if failed == nil {
		t.Fatalf("expected a command.execute.failed entry, got %+v", *logger.entries)
	}
	if failed.level != "error" {
		t.Fatalf("expected error level, got %s", failed.level)
	}
	if failed.fields["subject_type"] != "pages" || failed.fields["subject_id"] != "5000" || failed.fields["status"] != "declined" {
		t.Fatalf("expected subject fields, got %v", failed.fields)
	}
	if code, _ := argValue(failed.args, "error_code"); code != subjectNotFoundCode {
		t.Fatalf("expected error_code %s, got %v", subjectNotFoundCode, code)
	}
	if _, ok := argValue(failed.args, "duration_ms"); !ok {
		t.Fatalf("expected duration_ms, got %v", failed.args)
	}
}

func TestDefaultTelemetrySuccessWithoutFields(t *testing.T) {
	logger := newRecordingLogger()
	telemetry := DefaultTelemetry[testMessage](logger)

	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Status:   TelemetryStatusSuccess,
		Duration: 5 * time.Millisecond,
	})

	entries := *logger.entries
	if len(entries) != 1 || entries[0].msg != "command.execute.success" || entries[0].level != "info" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if _, ok := argValue(entries[0].args, "error_code"); ok {
		t.Fatalf("expected no error_code on success, got %v", entries[0].args)
	}
	if ms, _ := argValue(entries[0].args, "duration_ms"); ms != int64(5) {
		t.Fatalf("expected duration_ms 5, got %v", ms)
	}
}

func TestDefaultTelemetryToleratesNilLogger(t *testing.T) {
	telemetry := DefaultTelemetry[testMessage](nil)
	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Status: TelemetryStatusFailed,
		Error:  errors.New("boom"),
		Fields: map[string]any{"subject_type": "pages"},
	})
}
