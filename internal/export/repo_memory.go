package export

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used in dev mode
// and in tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Artifact // ownerID -> artifacts
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Artifact),
	}
}

// Create appends an artifact under the owner's namespace.
func (m *MemoryRepo) Create(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[a.OwnerID] = append(m.data[a.OwnerID], a)
	return nil
}

// GetByID returns an artifact by ID for an owner.
func (m *MemoryRepo) GetByID(ctx context.Context, ownerID, artifactID string) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.data[ownerID] {
		if a.ID == artifactID {
			return a, nil
		}
	}
	return Artifact{}, ErrNotFound
}

// ListByOwner lists artifacts ordered newest-first.
func (m *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := append([]Artifact(nil), m.data[ownerID]...)
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

var _ Repo = (*MemoryRepo)(nil)
