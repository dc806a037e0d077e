package statuses

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Status
	byName map[string]uuid.UUID
	order  []uuid.UUID
}

// NewMemoryRepository constructs an in-memory status repository. Lists are
// ordered by position, then name, like the bun repository.
func NewMemoryRepository() StatusRepository {
	return &memoryRepository{
		byID:   make(map[uuid.UUID]*Status),
		byName: make(map[string]uuid.UUID),
	}
}

func (m *memoryRepository) Create(_ context.Context, status *Status) (*Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneStatus(status)
	if _, exists := m.byID[cloned.ID]; !exists {
		m.order = append(m.order, cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	m.byName[cloned.Name] = cloned.ID
	return cloneStatus(cloned), nil
}

func (m *memoryRepository) Update(_ context.Context, status *Status) (*Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[status.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "status", Key: status.ID.String()}
	}
	existing.Visible = status.Visible
	existing.Position = status.Position
	existing.UpdatedAt = status.UpdatedAt
	return cloneStatus(existing), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "status", Key: id.String()}
	}
	return cloneStatus(record), nil
}

func (m *memoryRepository) GetByName(_ context.Context, name string) (*Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[name]
	if !ok {
		return nil, &NotFoundError{Resource: "status", Key: name}
	}
	return cloneStatus(m.byID[id]), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*Status, error) {
	return m.collect(func(*Status) bool { return true }), nil
}

func (m *memoryRepository) ListVisible(_ context.Context) ([]*Status, error) {
	return m.collect(func(s *Status) bool { return s.Visible }), nil
}

func (m *memoryRepository) collect(keep func(*Status) bool) []*Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Status, 0, len(m.order))
	for _, id := range m.order {
		if record := m.byID[id]; record != nil && keep(record) {
			records = append(records, cloneStatus(record))
		}
	}
	slices.SortStableFunc(records, func(a, b *Status) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), strings.Compare(a.Name, b.Name))
	})
	return records
}
