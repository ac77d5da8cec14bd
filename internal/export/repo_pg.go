package export

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts an export artifact.
func (r *PGRepo) Create(ctx context.Context, a Artifact) error {
	const query = `
INSERT INTO exports (
    id, owner_id, resume_id, template_id, file_name, storage_key, mime_type, size_bytes, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.OwnerID,
		a.ResumeID,
		a.TemplateID,
		a.FileName,
		a.StorageKey,
		a.MimeType,
		a.SizeBytes,
		a.CreatedAt,
	)
	return err
}

// GetByID returns an artifact by ID for an owner.
func (r *PGRepo) GetByID(ctx context.Context, ownerID, artifactID string) (Artifact, error) {
	const query = `
SELECT id, owner_id, resume_id, template_id, file_name, storage_key, mime_type, size_bytes, created_at
FROM exports
WHERE id = $1 AND owner_id = $2
LIMIT 1`
	var a Artifact
	err := r.DB.QueryRowContext(ctx, query, artifactID, ownerID).Scan(
		&a.ID,
		&a.OwnerID,
		&a.ResumeID,
		&a.TemplateID,
		&a.FileName,
		&a.StorageKey,
		&a.MimeType,
		&a.SizeBytes,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, err
	}
	return a, nil
}

// ListByOwner lists artifacts ordered newest-first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]Artifact, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, owner_id, resume_id, template_id, file_name, storage_key, mime_type, size_bytes, created_at
FROM exports
WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(
			&a.ID,
			&a.OwnerID,
			&a.ResumeID,
			&a.TemplateID,
			&a.FileName,
			&a.StorageKey,
			&a.MimeType,
			&a.SizeBytes,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
