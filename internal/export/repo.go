package export

import "context"

// Repo defines persistence operations for export artifacts.
type Repo interface {
	Create(ctx context.Context, a Artifact) error
	GetByID(ctx context.Context, ownerID, artifactID string) (Artifact, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Artifact, error)
}
