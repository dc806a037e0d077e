package statuses

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunStatusRepository implements StatusRepository on bun with optional caching.
type BunStatusRepository struct {
	repo repository.Repository[*Status]
}

// NewBunStatusRepository creates a status repository without caching.
func NewBunStatusRepository(db *bun.DB) *BunStatusRepository {
	return NewBunStatusRepositoryWithCache(db, nil, nil)
}

// NewBunStatusRepositoryWithCache creates a status repository whose reads go
// through go-repository-cache when both cacheService and serializer are set.
func NewBunStatusRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunStatusRepository {
	base := NewStatusRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunStatusRepository{repo: base}
}

func (r *BunStatusRepository) Create(ctx context.Context, status *Status) (*Status, error) {
	return r.repo.Create(ctx, status)
}

func (r *BunStatusRepository) Update(ctx context.Context, status *Status) (*Status, error) {
	updated, err := r.repo.Update(ctx, status,
		repository.UpdateByID(status.ID.String()),
		repository.UpdateColumns(
			"visible",
			"position",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, status.ID.String())
	}
	return updated, nil
}

func (r *BunStatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*Status, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunStatusRepository) GetByName(ctx context.Context, name string) (*Status, error) {
	record, err := r.repo.GetByIdentifier(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err, name)
	}
	return record, nil
}

func (r *BunStatusRepository) List(ctx context.Context) ([]*Status, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(catalogOrder))
	return records, err
}

func (r *BunStatusRepository) ListVisible(ctx context.Context) ([]*Status, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return catalogOrder(q.Where("?TableAlias.visible = ?", true))
	}))
	return records, err
}

func catalogOrder(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("?TableAlias.position ASC, ?TableAlias.name ASC")
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "status", Key: key}
	}
	return fmt.Errorf("status repository error: %w", err)
}
