package approvals

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// BunApprovalRepository implements ApprovalRepository on bun.
type BunApprovalRepository struct {
	db   *bun.DB
	repo repository.Repository[*Approval]
}

// NewBunApprovalRepository creates a ledger repository backed by db.
func NewBunApprovalRepository(db *bun.DB) *BunApprovalRepository {
	return &BunApprovalRepository{db: db, repo: NewApprovalRepository(db)}
}

func (r *BunApprovalRepository) Create(ctx context.Context, approval *Approval) (*Approval, error) {
	record, err := r.repo.Create(ctx, approval)
	if err != nil {
		return nil, mapRepositoryError(err, approval.ID.String())
	}
	return record, nil
}

func (r *BunApprovalRepository) Latest(ctx context.Context, ref SubjectRef) (*Approval, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return HistoryOrder(ForSubject(q, ref))
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, ref.String())
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "approval", Key: ref.String()}
	}
	return records[0], nil
}

func (r *BunApprovalRepository) ListBySubject(ctx context.Context, ref SubjectRef, opts ListOptions) ([]*Approval, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = HistoryOrder(ForSubject(q, ref))
			if opts.Limit > 0 {
				q = q.Limit(opts.Limit).Offset(opts.Offset)
			}
			return q
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, ref.String())
	}
	return records, nil
}

func (r *BunApprovalRepository) CountBySubject(ctx context.Context, ref SubjectRef) (int, error) {
	count, err := ForSubject(r.db.NewSelect().Model((*Approval)(nil)), ref).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("approval repository error: %w", err)
	}
	return count, nil
}

func (r *BunApprovalRepository) DeleteBySubject(ctx context.Context, ref SubjectRef) (int, error) {
	return DeleteSubjectApprovals(ctx, r.db, ref)
}

// InsertApproval writes one ledger row through db, which may be a transaction.
func InsertApproval(ctx context.Context, db bun.IDB, approval *Approval) error {
	if _, err := db.NewInsert().Model(approval).Exec(ctx); err != nil {
		return fmt.Errorf("insert approval: %w", err)
	}
	return nil
}

// DeleteSubjectApprovals removes the whole history of ref through db and
// returns the number of deleted rows.
func DeleteSubjectApprovals(ctx context.Context, db bun.IDB, ref SubjectRef) (int, error) {
	res, err := db.NewDelete().
		Model((*Approval)(nil)).
		Where("approvable_type = ?", ref.Type).
		Where("approvable_id = ?", ref.ID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete approvals: %w", err)
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

// ForSubject restricts q to the approvals of ref.
func ForSubject(q *bun.SelectQuery, ref SubjectRef) *bun.SelectQuery {
	return q.Where("?TableAlias.approvable_type = ?", ref.Type).
		Where("?TableAlias.approvable_id = ?", ref.ID)
}

// HistoryOrder sorts q most recent first.
func HistoryOrder(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.created_at DESC, ?TableAlias.id DESC")
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "approval", Key: key}
	}
	return fmt.Errorf("approval repository error: %w", err)
}
