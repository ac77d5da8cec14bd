package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used in dev mode
// and in tests. Documents are namespaced per owner.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Resume // ownerID -> resumes
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Resume),
	}
}

// Create appends a new resume under the owner's namespace.
func (m *MemoryRepo) Create(ctx context.Context, r Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[r.OwnerID] = append(m.data[r.OwnerID], r.Clone())
	return nil
}

// GetByID returns the resume with the given id for an owner.
func (m *MemoryRepo) GetByID(ctx context.Context, ownerID, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.data[ownerID] {
		if r.ID == id {
			return r.Clone(), nil
		}
	}
	return Resume{}, ErrNotFound
}

// Save overwrites a stored resume.
func (m *MemoryRepo) Save(ctx context.Context, r Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.data[r.OwnerID]
	for i := range list {
		if list[i].ID == r.ID {
			list[i] = r.Clone()
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a resume. Deleting an unknown id is reported as
// ErrNotFound and leaves the store unchanged.
func (m *MemoryRepo) Delete(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.data[ownerID]
	for i := range list {
		if list[i].ID == id {
			m.data[ownerID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListByOwner returns the owner's resumes, most recently updated first.
func (m *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.data[ownerID]
	out := make([]Resume, 0, len(list))
	for _, r := range list {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// CountByOwner returns how many resumes the owner holds.
func (m *MemoryRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[ownerID]), nil
}

var _ Repo = (*MemoryRepo)(nil)
