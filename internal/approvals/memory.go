package approvals

import (
	"bytes"
	"context"
	"slices"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	records []*Approval
}

// NewMemoryRepository constructs an in-memory ledger.
func NewMemoryRepository() ApprovalRepository {
	return &memoryRepository{}
}

func (m *memoryRepository) Create(_ context.Context, approval *Approval) (*Approval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneApproval(approval)
	m.records = append(m.records, cloned)
	return cloneApproval(cloned), nil
}

func (m *memoryRepository) Latest(_ context.Context, ref SubjectRef) (*Approval, error) {
	records := m.subject(ref)
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "approval", Key: ref.String()}
	}
	return records[0], nil
}

func (m *memoryRepository) ListBySubject(_ context.Context, ref SubjectRef, opts ListOptions) ([]*Approval, error) {
	records := m.subject(ref)
	if opts.Limit <= 0 {
		return records, nil
	}
	if opts.Offset >= len(records) {
		return nil, nil
	}
	records = records[max(opts.Offset, 0):]
	if opts.Limit < len(records) {
		records = records[:opts.Limit]
	}
	return records, nil
}

func (m *memoryRepository) CountBySubject(_ context.Context, ref SubjectRef) (int, error) {
	return len(m.subject(ref)), nil
}

func (m *memoryRepository) DeleteBySubject(_ context.Context, ref SubjectRef) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.records)
	m.records = slices.DeleteFunc(m.records, func(a *Approval) bool {
		return a.Subject() == ref
	})
	return before - len(m.records), nil
}

// subject returns clones of the approvals of ref, most recent first.
func (m *memoryRepository) subject(ref SubjectRef) []*Approval {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Approval
	for _, record := range m.records {
		if record.Subject() == ref {
			out = append(out, cloneApproval(record))
		}
	}
	slices.SortStableFunc(out, func(a, b *Approval) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(b.ID[:], a.ID[:])
	})
	return out
}
