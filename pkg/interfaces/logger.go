package interfaces

import "context"

// Logger is what the catalog, the ledger and each subject workflow log
// through. A go-logger glog.Logger satisfies it as-is.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider resolves module loggers by name: approval.statuses,
// approval.ledger, approval.workflow and approval.commands.<group>.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is optional. When a logger implements it, transition entries
// carry subject_type, subject_id and status as structured fields; otherwise
// those fields are dropped.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
