package resumes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/templates"
)

// DefaultMaxPerOwner is the free plan document cap.
const DefaultMaxPerOwner = 3

// Patch is a shallow partial update: each non-nil field replaces the
// corresponding field of the stored document wholesale. Fields left nil
// are untouched.
type Patch struct {
	Name           *string          `json:"name,omitempty"`
	TemplateID     *string          `json:"templateId,omitempty"`
	ColorID        *string          `json:"colorId,omitempty"`
	PersonalInfo   *PersonalInfo    `json:"personalInfo,omitempty"`
	Education      *[]Education     `json:"education,omitempty"`
	Experience     *[]Experience    `json:"experience,omitempty"`
	Skills         *[]Skill         `json:"skills,omitempty"`
	Languages      *[]Language      `json:"languages,omitempty"`
	Certifications *[]Certification `json:"certifications,omitempty"`
}

// Service contains business logic for resumes: quota enforcement,
// template/color resolution and shallow-merge updates.
type Service struct {
	Repo        Repo
	Registry    *templates.Registry
	MaxPerOwner int
}

// NewService constructs a Service with the default free plan cap.
func NewService(repo Repo, reg *templates.Registry) *Service {
	return &Service{Repo: repo, Registry: reg, MaxPerOwner: DefaultMaxPerOwner}
}

// Create makes a new resume from a template and optional color choice.
// The quota check happens before any write: a rejected create leaves no
// partial document behind.
func (s *Service) Create(ctx context.Context, ownerID, templateID, colorID string) (Resume, error) {
	if ownerID == "" {
		return Resume{}, fmt.Errorf("%w: owner id required", ErrInvalidInput)
	}

	count, err := s.Repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return Resume{}, err
	}
	if count >= s.maxPerOwner() {
		return Resume{}, fmt.Errorf("%w: cap is %d", ErrQuotaExceeded, s.maxPerOwner())
	}

	tpl, err := s.Registry.Get(templateID)
	if err != nil {
		return Resume{}, err
	}
	scheme, err := s.Registry.ColorScheme(templateID, colorID)
	if err != nil {
		return Resume{}, err
	}

	now := time.Now().UTC()
	doc := Resume{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       "Untitled Resume",
		CreatedAt:  now,
		UpdatedAt:  now,
		TemplateID: tpl.ID,
		ColorID:    scheme.ID,
		Colors: Colors{
			Primary:   scheme.Primary,
			Secondary: scheme.Secondary,
			Accent:    scheme.Accent,
		},
		PersonalInfo:   PersonalInfo{},
		Education:      []Education{},
		Experience:     []Experience{},
		Skills:         []Skill{},
		Languages:      []Language{},
		Certifications: []Certification{},
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Resume{}, err
	}
	return doc, nil
}

// Get returns one resume for an owner.
func (s *Service) Get(ctx context.Context, ownerID, id string) (Resume, error) {
	if ownerID == "" || id == "" {
		return Resume{}, fmt.Errorf("%w: owner id and resume id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, ownerID, id)
}

// List returns all resumes for an owner.
func (s *Service) List(ctx context.Context, ownerID string) ([]Resume, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id required", ErrInvalidInput)
	}
	return s.Repo.ListByOwner(ctx, ownerID)
}

// Update shallow-merges a patch into the stored document and refreshes
// UpdatedAt. An empty patch still advances UpdatedAt. Updating a missing
// id reports ErrNotFound.
func (s *Service) Update(ctx context.Context, ownerID, id string, p Patch) (Resume, error) {
	doc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return Resume{}, err
	}

	doc, err = s.applyPatch(doc, p)
	if err != nil {
		return Resume{}, err
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Save(ctx, doc); err != nil {
		return Resume{}, err
	}
	return doc, nil
}

// Delete hard-deletes a resume. Deleting a missing id reports
// ErrNotFound but leaves the store unchanged.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" || id == "" {
		return fmt.Errorf("%w: owner id and resume id required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, ownerID, id)
}

// ApplyPatch merges a patch into an in-memory document without touching
// storage; the editor session uses it so live edits and stored writes go
// through the same merge rules.
func (s *Service) ApplyPatch(doc Resume, p Patch) (Resume, error) {
	return s.applyPatch(doc, p)
}

func (s *Service) applyPatch(doc Resume, p Patch) (Resume, error) {
	if p.TemplateID != nil && *p.TemplateID != doc.TemplateID {
		// Selecting another template re-resolves the color scheme: keep
		// the current color id if the new template declares it, fall back
		// to the template's first option otherwise.
		scheme, err := s.Registry.ColorScheme(*p.TemplateID, doc.ColorID)
		if err != nil {
			scheme, err = s.Registry.ColorScheme(*p.TemplateID, "")
			if err != nil {
				return Resume{}, err
			}
		}
		doc.TemplateID = *p.TemplateID
		doc.ColorID = scheme.ID
		doc.Colors = Colors{Primary: scheme.Primary, Secondary: scheme.Secondary, Accent: scheme.Accent}
	}
	if p.ColorID != nil {
		scheme, err := s.Registry.ColorScheme(doc.TemplateID, *p.ColorID)
		if err != nil {
			return Resume{}, err
		}
		doc.ColorID = scheme.ID
		doc.Colors = Colors{Primary: scheme.Primary, Secondary: scheme.Secondary, Accent: scheme.Accent}
	}
	if p.Name != nil {
		doc.Name = *p.Name
	}
	if p.PersonalInfo != nil {
		doc.PersonalInfo = *p.PersonalInfo
	}
	if p.Education != nil {
		doc.Education = append([]Education(nil), (*p.Education)...)
	}
	if p.Experience != nil {
		doc.Experience = append([]Experience(nil), (*p.Experience)...)
	}
	if p.Skills != nil {
		skills := append([]Skill(nil), (*p.Skills)...)
		for i := range skills {
			skills[i].Level = ClampLevel(skills[i].Level)
		}
		doc.Skills = skills
	}
	if p.Languages != nil {
		doc.Languages = append([]Language(nil), (*p.Languages)...)
	}
	if p.Certifications != nil {
		doc.Certifications = append([]Certification(nil), (*p.Certifications)...)
	}
	return doc, nil
}

func (s *Service) maxPerOwner() int {
	if s.MaxPerOwner > 0 {
		return s.MaxPerOwner
	}
	return DefaultMaxPerOwner
}
