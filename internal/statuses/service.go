package statuses

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-approval/internal/identity"
	"github.com/goliatone/go-approval/internal/logging"
	"github.com/goliatone/go-approval/pkg/interfaces"
	"github.com/google/uuid"
)

// Service describes the status catalog.
type Service interface {
	CreateStatus(ctx context.Context, input CreateStatusInput) (*Status, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*Status, error)
	GetStatus(ctx context.Context, id uuid.UUID) (*Status, error)
	GetStatusByName(ctx context.Context, name string) (*Status, error)
	ListStatuses(ctx context.Context) ([]*Status, error)
	ListVisibleStatuses(ctx context.Context) ([]*Status, error)
	SelectableNames(ctx context.Context) ([]string, error)
	EnsureStatuses(ctx context.Context, seeds []Seed) ([]*Status, error)
}

// CreateStatusInput captures a new catalog entry. A nil Position appends the
// status after the existing ones.
type CreateStatusInput struct {
	Name     string
	Visible  bool
	Position *int
}

// UpdateStatusInput captures the mutable fields of a status. Names are fixed
// once created.
type UpdateStatusInput struct {
	ID       uuid.UUID
	Visible  *bool
	Position *int
}

// IDDeriver produces status IDs from names.
type IDDeriver func(name string) uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithIDDeriver overrides status ID derivation.
func WithIDDeriver(deriver IDDeriver) ServiceOption {
	return func(s *service) {
		if deriver != nil {
			s.id = deriver
		}
	}
}

// WithNow overrides the time source.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for catalog changes.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		s.logger = logging.OrNoOp(logger)
	}
}

type service struct {
	repo   StatusRepository
	id     IDDeriver
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs the catalog service.
func NewService(repo StatusRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrStatusRepositoryRequired)
	}

	s := &service{
		repo:   repo,
		id:     identity.StatusUUID,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateStatus(ctx context.Context, input CreateStatusInput) (*Status, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, &ValidationError{Field: "name", Err: ErrStatusNameExists}
	} else if err != nil && !isNotFound(err) {
		return nil, err
	}

	position := 0
	if input.Position != nil {
		position = *input.Position
	} else {
		next, err := s.nextPosition(ctx)
		if err != nil {
			return nil, err
		}
		position = next
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &Status{
		ID:        s.id(name),
		Name:      name,
		Visible:   input.Visible,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error("statuses.create.failed", "name", name, "error", err)
		return nil, err
	}

	s.logger.Info("statuses.create.success", "name", created.Name, "status_id", created.ID, "visible", created.Visible)
	return cloneStatus(created), nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*Status, error) {
	if input.ID == uuid.Nil {
		return nil, ErrStatusNotFound
	}
	status, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if input.Visible != nil {
		status.Visible = *input.Visible
	}
	if input.Position != nil {
		status.Position = *input.Position
	}
	status.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, status)
	if err != nil {
		return nil, translateRepoError(err)
	}
	s.logger.Info("statuses.update.success", "name", updated.Name, "visible", updated.Visible)
	return cloneStatus(updated), nil
}

func (s *service) GetStatus(ctx context.Context, id uuid.UUID) (*Status, error) {
	if id == uuid.Nil {
		return nil, ErrStatusNotFound
	}
	status, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return cloneStatus(status), nil
}

// GetStatusByName matches name exactly, including case.
func (s *service) GetStatusByName(ctx context.Context, name string) (*Status, error) {
	if name == "" {
		return nil, ErrStatusNotFound
	}
	status, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return cloneStatus(status), nil
}

func (s *service) ListStatuses(ctx context.Context) ([]*Status, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return cloneStatusSlice(records), nil
}

func (s *service) ListVisibleStatuses(ctx context.Context) ([]*Status, error) {
	records, err := s.repo.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	return cloneStatusSlice(records), nil
}

// SelectableNames returns every catalog name in catalog order, preceded by an
// empty entry for "no selection".
func (s *service) SelectableNames(ctx context.Context) ([]string, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records)+1)
	names = append(names, "")
	for _, record := range records {
		names = append(names, record.Name)
	}
	return names, nil
}

// EnsureStatuses creates the seeds that are missing. Existing statuses are
// left untouched. The result follows seed order.
func (s *service) EnsureStatuses(ctx context.Context, seeds []Seed) ([]*Status, error) {
	out := make([]*Status, 0, len(seeds))
	for _, seed := range seeds {
		existing, err := s.repo.GetByName(ctx, strings.TrimSpace(seed.Name))
		if err == nil {
			out = append(out, cloneStatus(existing))
			continue
		}
		if !isNotFound(err) {
			return nil, err
		}
		created, err := s.CreateStatus(ctx, CreateStatusInput{Name: seed.Name, Visible: seed.Visible})
		if err != nil {
			return nil, err
		}
		out = append(out, created)
	}
	return out, nil
}

func (s *service) nextPosition(ctx context.Context) (int, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	next := 1
	for _, record := range records {
		if record.Position >= next {
			next = record.Position + 1
		}
	}
	return next, nil
}

func translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return ErrStatusNotFound
	}
	return err
}
