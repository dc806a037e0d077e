package approvals_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-approval/internal/approvals"
	"github.com/goliatone/go-approval/pkg/testsupport"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newLedgerDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if _, err := bunDB.NewCreateTable().Model((*approvals.Approval)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create approvals table: %v", err)
	}
	return bunDB
}

func TestBunApprovalRepositoryLedger(t *testing.T) {
	ctx := context.Background()
	repo := approvals.NewBunApprovalRepository(newLedgerDB(t))

	current := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	svc := approvals.NewService(repo, approvals.WithNow(func() time.Time { return current }))

	ref := approvals.SubjectRef{Type: "pages", ID: "7"}
	statusIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, statusID := range statusIDs {
		if _, err := svc.Append(ctx, approvals.AppendInput{Subject: ref, StatusID: statusID}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if _, err := svc.Append(ctx, approvals.AppendInput{Subject: approvals.SubjectRef{Type: "posts", ID: "7"}, StatusID: statusIDs[0]}); err != nil {
		t.Fatalf("append other subject: %v", err)
	}

	count, err := svc.Count(ctx, ref)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 approvals, got %d", count)
	}

	// all three share created_at, so the time ordered id decides
	latest, err := svc.Latest(ctx, ref)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ApprovalStatusID != statusIDs[2] {
		t.Fatalf("expected latest status %s, got %s", statusIDs[2], latest.ApprovalStatusID)
	}

	history, err := svc.History(ctx, ref, approvals.ListOptions{Limit: 2})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].ApprovalStatusID != statusIDs[2] || history[1].ApprovalStatusID != statusIDs[1] {
		t.Fatalf("unexpected history %+v", history)
	}

	deleted, err := svc.Purge(ctx, ref)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", deleted)
	}
	if _, err := svc.Latest(ctx, ref); !errors.Is(err, approvals.ErrApprovalNotFound) {
		t.Fatalf("expected ErrApprovalNotFound after purge, got %v", err)
	}
	if remaining, _ := svc.Count(ctx, approvals.SubjectRef{Type: "posts", ID: "7"}); remaining != 1 {
		t.Fatalf("expected other subject to keep its history, got %d", remaining)
	}
}

func TestBunApprovalRepositoryLatestNotFound(t *testing.T) {
	repo := approvals.NewBunApprovalRepository(newLedgerDB(t))

	_, err := repo.Latest(context.Background(), approvals.SubjectRef{Type: "pages", ID: "missing"})
	var notFound *approvals.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
