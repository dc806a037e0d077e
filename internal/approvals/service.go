package approvals

import (
	"context"
	"time"

	"github.com/goliatone/go-approval/internal/logging"
	"github.com/goliatone/go-approval/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes the transition ledger.
type Service interface {
	History(ctx context.Context, ref SubjectRef, opts ...ListOptions) ([]*Approval, error)
	Latest(ctx context.Context, ref SubjectRef) (*Approval, error)
	Count(ctx context.Context, ref SubjectRef) (int, error)
	Append(ctx context.Context, input AppendInput) (*Approval, error)
	Purge(ctx context.Context, ref SubjectRef) (int, error)
}

// AppendInput describes a transition to record.
type AppendInput struct {
	Subject   SubjectRef
	StatusID  uuid.UUID
	ActorID   *uuid.UUID
	ExpiresAt *time.Time
}

// ServiceOption configures the ledger service.
type ServiceOption func(*service)

// WithNow overrides the time source.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides approval ID generation.
func WithIDGenerator(gen func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if gen != nil {
			s.id = gen
		}
	}
}

// WithLogger sets the ledger logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		s.logger = logging.OrNoOp(logger)
	}
}

type service struct {
	repo   ApprovalRepository
	now    func() time.Time
	id     func() uuid.UUID
	logger interfaces.Logger
}

// NewService constructs the ledger service.
func NewService(repo ApprovalRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrApprovalRepositoryRequired)
	}
	s := &service{
		repo:   repo,
		now:    time.Now,
		id:     NewID,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) History(ctx context.Context, ref SubjectRef, opts ...ListOptions) ([]*Approval, error) {
	if ref.IsZero() {
		return nil, ErrSubjectRequired
	}
	var options ListOptions
	if len(opts) > 0 {
		options = opts[0]
	}
	records, err := s.repo.ListBySubject(ctx, ref, options)
	if err != nil {
		return nil, err
	}
	return cloneApprovalSlice(records), nil
}

func (s *service) Latest(ctx context.Context, ref SubjectRef) (*Approval, error) {
	if ref.IsZero() {
		return nil, ErrSubjectRequired
	}
	record, err := s.repo.Latest(ctx, ref)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrApprovalNotFound
		}
		return nil, err
	}
	return cloneApproval(record), nil
}

func (s *service) Count(ctx context.Context, ref SubjectRef) (int, error) {
	if ref.IsZero() {
		return 0, ErrSubjectRequired
	}
	return s.repo.CountBySubject(ctx, ref)
}

func (s *service) Append(ctx context.Context, input AppendInput) (*Approval, error) {
	if input.Subject.IsZero() {
		return nil, ErrSubjectRequired
	}
	if input.StatusID == uuid.Nil {
		return nil, ErrStatusRequired
	}

	now := s.now().UTC()
	approval := &Approval{
		ID:               s.id(),
		ApprovableType:   input.Subject.Type,
		ApprovableID:     input.Subject.ID,
		ApprovalStatusID: input.StatusID,
		ExpiresAt:        input.ExpiresAt,
		CreatedBy:        input.ActorID,
		UpdatedBy:        input.ActorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	created, err := s.repo.Create(ctx, approval)
	if err != nil {
		s.logger.Error("ledger.append.failed", "subject_type", input.Subject.Type, "subject_id", input.Subject.ID, "error", err)
		return nil, err
	}
	s.logger.Debug("ledger.append.success",
		"subject_type", created.ApprovableType,
		"subject_id", created.ApprovableID,
		"status_id", created.ApprovalStatusID,
		"approval_id", created.ID,
	)
	return cloneApproval(created), nil
}

func (s *service) Purge(ctx context.Context, ref SubjectRef) (int, error) {
	if ref.IsZero() {
		return 0, ErrSubjectRequired
	}
	deleted, err := s.repo.DeleteBySubject(ctx, ref)
	if err != nil {
		return 0, err
	}
	s.logger.Info("ledger.purge.success", "subject_type", ref.Type, "subject_id", ref.ID, "deleted", deleted)
	return deleted, nil
}
