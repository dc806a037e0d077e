package approval

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-approval/internal/approvals"
	"github.com/goliatone/go-approval/internal/di"
	"github.com/goliatone/go-approval/internal/statuses"
	"github.com/goliatone/go-approval/internal/workflow"
	"github.com/uptrace/bun"
)

// StatusService exports the status catalog contract.
type StatusService = statuses.Service

// ApprovalService exports the approval history contract.
type ApprovalService = approvals.Service

type (
	Status            = statuses.Status
	CreateStatusInput = statuses.CreateStatusInput
	UpdateStatusInput = statuses.UpdateStatusInput
	Approval          = approvals.Approval
	SubjectRef        = approvals.SubjectRef
	ListOptions       = approvals.ListOptions
	Subject           = workflow.Subject
	Criteria          = workflow.Criteria
	MarkOption        = workflow.MarkOption
	WorkflowOption    = workflow.Option
	Registry          = workflow.Registry

	UnknownStatusError = workflow.UnknownStatusError
	NotFoundError      = workflow.NotFoundError
	ValidationError    = statuses.ValidationError
)

// Workflow tracks approvals for one subject type.
type Workflow[T Subject] = workflow.Workflow[T]

// SubjectConfig describes how a subject type is stored.
type SubjectConfig[T Subject] = workflow.Config[T]

// Scope binds a workflow to one status name.
type Scope[T Subject] = workflow.Scope[T]

var (
	ErrStatusNotFound   = statuses.ErrStatusNotFound
	ErrApprovalNotFound = approvals.ErrApprovalNotFound
	ErrDatabaseRequired = workflow.ErrDatabaseRequired
	ErrUnknownSubject   = workflow.ErrUnknownSubject
)

var (
	Where   = workflow.Where
	OrderBy = workflow.OrderBy
	Limit   = workflow.Limit
	Offset  = workflow.Offset

	WithActor  = workflow.WithActor
	WithExpiry = workflow.WithExpiry
)

// Option configures the module container.
type Option = di.Option

var (
	WithBunDB          = di.WithBunDB
	WithCache          = di.WithCache
	WithLoggerProvider = di.WithLoggerProvider
	WithActivityHooks  = di.WithActivityHooks
	WithStatusService  = di.WithStatusService
	WithClock          = di.WithClock
)

// OpenDB wraps sqlDB with the bun dialect matching cfg.Storage.Dialect.
func OpenDB(sqlDB *sql.DB, cfg Config) (*bun.DB, error) {
	return di.OpenBunDB(sqlDB, cfg.Storage.Dialect)
}

// Module represents the top level approval runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Migrate applies the embedded schema to the module database.
func (m *Module) Migrate(ctx context.Context) ([]int64, error) {
	db := m.DB()
	if db == nil {
		return nil, ErrDatabaseRequired
	}
	return ApplyMigrations(ctx, db.DB, m.container.Config.Storage.Dialect)
}

// Bootstrap ensures the configured seed statuses exist.
func (m *Module) Bootstrap(ctx context.Context) error {
	return m.container.Bootstrap(ctx)
}

// Statuses returns the status catalog.
func (m *Module) Statuses() StatusService {
	return m.container.StatusService()
}

// Approvals returns the approval history service.
func (m *Module) Approvals() ApprovalService {
	return m.container.ApprovalService()
}

// Registry returns the workflows registered through NewWorkflow.
func (m *Module) Registry() *Registry {
	return m.container.Registry()
}

// DB returns the bun database, nil for memory storage.
func (m *Module) DB() *bun.DB {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.DB()
}

// Mark moves the subject identified by subjectType and id to the named status.
func (m *Module) Mark(ctx context.Context, subjectType, id, name string, opts ...MarkOption) (Subject, error) {
	return m.container.Registry().Mark(ctx, subjectType, id, name, opts...)
}

// NewWorkflow builds a workflow for T on the module database and registers
// it so commands can address it by subject type.
func NewWorkflow[T Subject](m *Module, cfg SubjectConfig[T], opts ...WorkflowOption) (*Workflow[T], error) {
	db := m.DB()
	if db == nil {
		return nil, ErrDatabaseRequired
	}

	defaults := m.container.Config.Workflow
	if strings.TrimSpace(cfg.IDColumn) == "" {
		cfg.IDColumn = defaults.IDColumn
	}
	if strings.TrimSpace(cfg.StatusColumn) == "" {
		cfg.StatusColumn = defaults.StatusColumn
	}

	options := append(m.container.WorkflowOptions(), opts...)
	wf, err := workflow.New(db, m.container.StatusService(), cfg, options...)
	if err != nil {
		return nil, err
	}
	if err := m.container.Registry().Register(wf); err != nil {
		return nil, err
	}
	return wf, nil
}
