package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Content sections are stored as
// JSONB columns; reads and writes are always owner-scoped.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `
id, owner_id, name, template_id, color_id, colors, personal_info,
education, experience, skills, languages, certifications, created_at, updated_at`

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, doc Resume) error {
	const query = `
INSERT INTO resumes (
    id, owner_id, name, template_id, color_id, colors, personal_info,
    education, experience, skills, languages, certifications, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	cols, err := sectionJSON(doc)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.OwnerID,
		doc.Name,
		doc.TemplateID,
		doc.ColorID,
		cols.colors,
		cols.personalInfo,
		cols.education,
		cols.experience,
		cols.skills,
		cols.languages,
		cols.certifications,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// GetByID fetches one resume scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, ownerID, id string) (Resume, error) {
	query := `SELECT ` + resumeColumns + `
FROM resumes
WHERE owner_id = $1 AND id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, ownerID, id)
	doc, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return doc, nil
}

// Save overwrites a stored resume. Missing rows are reported, not
// silently swallowed.
func (r *PGRepo) Save(ctx context.Context, doc Resume) error {
	const query = `
UPDATE resumes
SET name = $3, template_id = $4, color_id = $5, colors = $6,
    personal_info = $7, education = $8, experience = $9, skills = $10,
    languages = $11, certifications = $12, updated_at = $13
WHERE owner_id = $1 AND id = $2`

	cols, err := sectionJSON(doc)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		doc.OwnerID,
		doc.ID,
		doc.Name,
		doc.TemplateID,
		doc.ColorID,
		cols.colors,
		cols.personalInfo,
		cols.education,
		cols.experience,
		cols.skills,
		cols.languages,
		cols.certifications,
		doc.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes a resume.
func (r *PGRepo) Delete(ctx context.Context, ownerID, id string) error {
	const query = `DELETE FROM resumes WHERE owner_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner lists resumes for an owner, most recently updated first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + `
FROM resumes
WHERE owner_id = $1
ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		doc, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// CountByOwner returns how many resumes the owner holds.
func (r *PGRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	const query = `SELECT COUNT(*) FROM resumes WHERE owner_id = $1`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, ownerID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type sectionColumns struct {
	colors         []byte
	personalInfo   []byte
	education      []byte
	experience     []byte
	skills         []byte
	languages      []byte
	certifications []byte
}

func sectionJSON(doc Resume) (sectionColumns, error) {
	var cols sectionColumns
	var err error
	marshal := func(dst *[]byte, v any, what string) {
		if err != nil {
			return
		}
		*dst, err = json.Marshal(v)
		if err != nil {
			err = fmt.Errorf("marshal %s: %w", what, err)
		}
	}
	marshal(&cols.colors, doc.Colors, "colors")
	marshal(&cols.personalInfo, doc.PersonalInfo, "personal info")
	marshal(&cols.education, emptyIfNil(doc.Education), "education")
	marshal(&cols.experience, emptyIfNil(doc.Experience), "experience")
	marshal(&cols.skills, emptyIfNil(doc.Skills), "skills")
	marshal(&cols.languages, emptyIfNil(doc.Languages), "languages")
	marshal(&cols.certifications, emptyIfNil(doc.Certifications), "certifications")
	return cols, err
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var doc Resume
	var colorID sql.NullString
	var colors, personalInfo, education, experience, skills, languages, certifications []byte

	if err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Name,
		&doc.TemplateID,
		&colorID,
		&colors,
		&personalInfo,
		&education,
		&experience,
		&skills,
		&languages,
		&certifications,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	if colorID.Valid {
		doc.ColorID = colorID.String
	}

	var err error
	unmarshal := func(src []byte, v any, what string) {
		if err != nil || len(src) == 0 {
			return
		}
		if e := json.Unmarshal(src, v); e != nil {
			err = fmt.Errorf("unmarshal %s: %w", what, e)
		}
	}
	unmarshal(colors, &doc.Colors, "colors")
	unmarshal(personalInfo, &doc.PersonalInfo, "personal info")
	unmarshal(education, &doc.Education, "education")
	unmarshal(experience, &doc.Experience, "experience")
	unmarshal(skills, &doc.Skills, "skills")
	unmarshal(languages, &doc.Languages, "languages")
	unmarshal(certifications, &doc.Certifications, "certifications")
	return doc, err
}

var _ Repo = (*PGRepo)(nil)
