package workflow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-approval/internal/approvals"
	"github.com/goliatone/go-approval/internal/domain"
	"github.com/goliatone/go-approval/internal/logging"
	"github.com/goliatone/go-approval/internal/statuses"
	"github.com/goliatone/go-approval/pkg/activity"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MarkedVerb is the activity verb emitted after a transition.
const MarkedVerb = "approval.marked"

// Workflow records status transitions for one subject type and answers
// status filtered queries over it.
type Workflow[T Subject] struct {
	settings

	db           *bun.DB
	catalog      statuses.Service
	ledger       approvals.Service
	subjectType  string
	newRecord    func() T
	idColumn     string
	statusColumn string
	scopes       map[domain.Status]*Scope[T]
}

// New builds a workflow for the subject type described by cfg.
func New[T Subject](db *bun.DB, catalog statuses.Service, cfg Config[T], opts ...Option) (*Workflow[T], error) {
	if db == nil {
		return nil, ErrDatabaseRequired
	}
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if cfg.NewRecord == nil {
		return nil, ErrNewRecordRequired
	}

	idColumn := strings.TrimSpace(cfg.IDColumn)
	if idColumn == "" {
		idColumn = defaultIDColumn
	}
	statusColumn := strings.TrimSpace(cfg.StatusColumn)
	if statusColumn == "" {
		statusColumn = defaultStatusColumn
	}
	for _, column := range []string{idColumn, statusColumn} {
		if !validIdentifier(column) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColumn, column)
		}
	}

	subjectType := strings.TrimSpace(cfg.SubjectType)
	if subjectType == "" {
		subjectType = tableName(db, cfg.NewRecord())
	}

	w := &Workflow[T]{
		settings: settings{
			logger: logging.NoOp(),
			now:    time.Now,
			newID:  approvals.NewID,
		},
		db:           db,
		catalog:      catalog,
		subjectType:  subjectType,
		newRecord:    cfg.NewRecord,
		idColumn:     idColumn,
		statusColumn: statusColumn,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&w.settings)
		}
	}

	w.ledger = approvals.NewService(approvals.NewBunApprovalRepository(db),
		approvals.WithNow(w.now),
		approvals.WithIDGenerator(w.newID),
		approvals.WithLogger(w.logger),
	)

	known := domain.KnownStatuses()
	w.scopes = make(map[domain.Status]*Scope[T], len(known))
	for _, status := range known {
		w.scopes[status] = &Scope[T]{workflow: w, name: status.String()}
	}
	return w, nil
}

// SubjectType returns the type recorded on approvals.
func (w *Workflow[T]) SubjectType() string {
	return w.subjectType
}

// Ref returns the ledger reference of subject.
func (w *Workflow[T]) Ref(subject T) approvals.SubjectRef {
	return approvals.SubjectRef{Type: w.subjectType, ID: subject.ApprovalSubjectID()}
}

// Mark moves subject to the named status. The approval row and the subject's
// status column are written in one transaction, then the subject is reloaded
// from storage. A reload failure after commit is logged and not returned, so
// callers never retry a mark that already landed. Marking twice with the same
// status records two approvals.
func (w *Workflow[T]) Mark(ctx context.Context, subject T, name string, opts ...MarkOption) (T, error) {
	if isNilSubject(subject) {
		return subject, ErrSubjectRequired
	}

	status, err := w.resolve(ctx, name)
	if err != nil {
		return subject, err
	}

	var ms markSettings
	for _, opt := range opts {
		if opt != nil {
			opt(&ms)
		}
	}

	ref := w.Ref(subject)
	logger := logging.WithSubjectContext(w.logger, ref.Type, ref.ID, status.Name)
	previous := copyID(subject.ApprovalStatusID())

	now := w.now().UTC()
	approval := &approvals.Approval{
		ID:               w.newID(),
		ApprovableType:   ref.Type,
		ApprovableID:     ref.ID,
		ApprovalStatusID: status.ID,
		ExpiresAt:        ms.expiresAt,
		CreatedBy:        ms.actor,
		UpdatedBy:        ms.actor,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = w.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := approvals.InsertApproval(ctx, tx, approval); err != nil {
			return err
		}
		res, err := tx.NewUpdate().
			Model(subject).
			Set("? = ?", bun.Ident(w.statusColumn), status.ID).
			Where("? = ?", bun.Ident(w.idColumn), ref.ID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update subject status: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return &NotFoundError{SubjectType: ref.Type, ID: ref.ID}
		}
		return nil
	})
	if err != nil {
		logger.Error("workflow.mark.failed", "error", err)
		return subject, err
	}

	// the transition is committed; a failed reload keeps the in-memory copy
	id := status.ID
	if err := w.db.NewSelect().Model(subject).WherePK().Scan(ctx); err != nil {
		logger.Warn("workflow.mark.reload_failed", "approval_id", approval.ID, "error", err)
	}
	subject.SetApprovalStatusID(&id)

	logger.Info("workflow.mark.success", "approval_id", approval.ID, "status_id", status.ID)
	w.emitMarked(ctx, ref, status, previous, approval)
	return subject, nil
}

// MarkByID loads the subject with the given primary key and marks it.
func (w *Workflow[T]) MarkByID(ctx context.Context, id string, name string, opts ...MarkOption) (T, error) {
	subject, err := w.Get(ctx, id)
	if err != nil {
		return subject, err
	}
	return w.Mark(ctx, subject, name, opts...)
}

// MarkSubject is MarkByID returning the plain Subject interface, so workflows
// of different types can share a Registry.
func (w *Workflow[T]) MarkSubject(ctx context.Context, id string, name string, opts ...MarkOption) (Subject, error) {
	subject, err := w.MarkByID(ctx, id, name, opts...)
	if err != nil {
		return nil, err
	}
	return subject, nil
}

// Get loads a subject by primary key regardless of its status.
func (w *Workflow[T]) Get(ctx context.Context, id string) (T, error) {
	record := w.newRecord()
	err := w.db.NewSelect().
		Model(record).
		Where("?TableAlias.? = ?", bun.Ident(w.idColumn), id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, &NotFoundError{SubjectType: w.subjectType, ID: id}
		}
		return zero, err
	}
	return record, nil
}

// Status returns the name of the subject's current status. ok is false when
// the subject has no status.
func (w *Workflow[T]) Status(ctx context.Context, subject T) (name string, ok bool, err error) {
	if isNilSubject(subject) {
		return "", false, ErrSubjectRequired
	}
	id := subject.ApprovalStatusID()
	if id == nil || *id == uuid.Nil {
		return "", false, nil
	}
	status, err := w.catalog.GetStatus(ctx, *id)
	if err != nil {
		if errors.Is(err, statuses.ErrStatusNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return status.Name, true, nil
}

// Is reports whether subject is currently in the named status.
func (w *Workflow[T]) Is(ctx context.Context, subject T, name string) (bool, error) {
	current, ok, err := w.Status(ctx, subject)
	if err != nil || !ok {
		return false, err
	}
	return current == name, nil
}

// Count returns how many subjects are in the named status. A name missing
// from the catalog counts subjects without any status.
func (w *Workflow[T]) Count(ctx context.Context, name string, criteria ...Criteria) (int, error) {
	q, err := w.inStatus(ctx, w.db.NewSelect().Model(w.newRecord()), name)
	if err != nil {
		return 0, err
	}
	return applyCriteria(q, criteria).Count(ctx)
}

// Find returns every subject in the named status that also matches criteria.
func (w *Workflow[T]) Find(ctx context.Context, name string, criteria ...Criteria) ([]T, error) {
	var records []T
	q, err := w.inStatus(ctx, w.db.NewSelect().Model(&records), name)
	if err != nil {
		return nil, err
	}
	if err := applyCriteria(q, criteria).Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return records, nil
}

// FindOne returns the first subject in the named status matching criteria.
func (w *Workflow[T]) FindOne(ctx context.Context, name string, criteria ...Criteria) (T, error) {
	return w.findOne(ctx, name, "", criteria)
}

// FindByID returns the subject with the given primary key only if it is in
// the named status.
func (w *Workflow[T]) FindByID(ctx context.Context, name string, id string) (T, error) {
	return w.findOne(ctx, name, id, []Criteria{
		Where("?TableAlias.? = ?", bun.Ident(w.idColumn), id),
	})
}

// FindBy returns the first subject in the named status whose attribute
// equals value. attribute must be a plain column name.
func (w *Workflow[T]) FindBy(ctx context.Context, name string, attribute string, value any) (T, error) {
	if !validIdentifier(attribute) {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrInvalidColumn, attribute)
	}
	return w.findOne(ctx, name, "", []Criteria{
		Where("?TableAlias.? = ?", bun.Ident(attribute), value),
	})
}

// Latest returns the most recent approval of subject.
func (w *Workflow[T]) Latest(ctx context.Context, subject T) (*approvals.Approval, error) {
	if isNilSubject(subject) {
		return nil, ErrSubjectRequired
	}
	return w.ledger.Latest(ctx, w.Ref(subject))
}

// History lists the approvals of subject, most recent first.
func (w *Workflow[T]) History(ctx context.Context, subject T, opts ...approvals.ListOptions) ([]*approvals.Approval, error) {
	if isNilSubject(subject) {
		return nil, ErrSubjectRequired
	}
	return w.ledger.History(ctx, w.Ref(subject), opts...)
}

// HistoryCount returns the number of approvals recorded for subject.
func (w *Workflow[T]) HistoryCount(ctx context.Context, subject T) (int, error) {
	if isNilSubject(subject) {
		return 0, ErrSubjectRequired
	}
	return w.ledger.Count(ctx, w.Ref(subject))
}

// Destroy deletes subject together with its approval history.
func (w *Workflow[T]) Destroy(ctx context.Context, subject T) error {
	if isNilSubject(subject) {
		return ErrSubjectRequired
	}
	ref := w.Ref(subject)
	err := w.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := approvals.DeleteSubjectApprovals(ctx, tx, ref); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model(subject).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("delete subject: %w", err)
		}
		return nil
	})
	if err != nil {
		w.logger.Error("workflow.destroy.failed", "subject_type", ref.Type, "subject_id", ref.ID, "error", err)
		return err
	}
	w.logger.Info("workflow.destroy.success", "subject_type", ref.Type, "subject_id", ref.ID)
	return nil
}

func (w *Workflow[T]) findOne(ctx context.Context, name, id string, criteria []Criteria) (T, error) {
	var zero T
	record := w.newRecord()
	q, err := w.inStatus(ctx, w.db.NewSelect().Model(record), name)
	if err != nil {
		return zero, err
	}
	if err := applyCriteria(q, criteria).Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, w.missing(ctx, name, id)
		}
		return zero, err
	}
	return record, nil
}

// missing builds the NotFoundError for a status-scoped lookup by id, loading
// the record without the status filter to tell a missing record from one in
// another status.
func (w *Workflow[T]) missing(ctx context.Context, name, id string) error {
	notFound := &NotFoundError{SubjectType: w.subjectType, ID: id, Status: name}
	if id == "" {
		return notFound
	}
	record, err := w.Get(ctx, id)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return notFound
		}
		return err
	}
	notFound.Exists = true
	current, _, err := w.Status(ctx, record)
	if err != nil {
		return err
	}
	notFound.CurrentStatus = current
	return notFound
}

// inStatus filters q on the status column. Names missing from the catalog
// match subjects whose status is NULL.
func (w *Workflow[T]) inStatus(ctx context.Context, q *bun.SelectQuery, name string) (*bun.SelectQuery, error) {
	status, err := w.catalog.GetStatusByName(ctx, name)
	switch {
	case err == nil:
		return q.Where("?TableAlias.? = ?", bun.Ident(w.statusColumn), status.ID), nil
	case errors.Is(err, statuses.ErrStatusNotFound):
		w.logger.Debug("workflow.query.unknown_status", "subject_type", w.subjectType, "status", name)
		return q.Where("?TableAlias.? IS NULL", bun.Ident(w.statusColumn)), nil
	default:
		return nil, err
	}
}

func (w *Workflow[T]) resolve(ctx context.Context, name string) (*statuses.Status, error) {
	status, err := w.catalog.GetStatusByName(ctx, name)
	if err != nil {
		if errors.Is(err, statuses.ErrStatusNotFound) {
			w.logger.Warn("workflow.mark.unknown_status", "subject_type", w.subjectType, "status", name)
			return nil, &UnknownStatusError{Name: name}
		}
		return nil, err
	}
	return status, nil
}

func (w *Workflow[T]) emitMarked(ctx context.Context, ref approvals.SubjectRef, status *statuses.Status, previous *uuid.UUID, approval *approvals.Approval) {
	if !w.activity.Enabled() {
		return
	}

	previousName := ""
	if previous != nil {
		if prior, err := w.catalog.GetStatus(ctx, *previous); err == nil {
			previousName = prior.Name
		}
	}
	meta := map[string]any{
		"status":          status.Name,
		"previous_status": previousName,
		"approval_id":     approval.ID.String(),
	}
	if approval.ExpiresAt != nil {
		meta["expires_at"] = approval.ExpiresAt.Format(time.RFC3339)
	}

	event := activity.Event{
		Verb:           MarkedVerb,
		ObjectType:     ref.Type,
		ObjectID:       ref.ID,
		DefinitionCode: "approval:" + status.Name,
		Metadata:       meta,
		OccurredAt:     approval.CreatedAt,
	}
	if approval.CreatedBy != nil {
		event.ActorID = approval.CreatedBy.String()
	}
	if err := w.activity.Emit(ctx, event); err != nil {
		w.logger.Warn("workflow.activity.failed", "subject_type", ref.Type, "subject_id", ref.ID, "error", err)
	}
}

func tableName(db *bun.DB, record any) string {
	typ := reflect.TypeOf(record)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return db.Table(typ).Name
}

func isNilSubject(subject Subject) bool {
	if subject == nil {
		return true
	}
	v := reflect.ValueOf(subject)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	cloned := *id
	return &cloned
}
