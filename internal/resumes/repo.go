package resumes

import "context"

// Repo defines persistence operations for resumes. Every read and write
// is owner-scoped: one owner's documents are never visible to another
// owner's calls.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	GetByID(ctx context.Context, ownerID, id string) (Resume, error)
	// Save overwrites the stored resume. The caller is responsible for
	// merge semantics and the UpdatedAt refresh; storage is last writer
	// wins with no version check.
	Save(ctx context.Context, r Resume) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Resume, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
