package export

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/render"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/util"
)

// DocumentSource is the slice of the editor manager the exporter needs:
// the live document, unsaved edits included, and a way to make those
// edits durable before the export starts.
type DocumentSource interface {
	Snapshot(ctx context.Context, ownerID, resumeID string) (resumes.Resume, error)
	Flush(ctx context.Context, ownerID, resumeID string) error
}

// Service contains business logic for exports: snapshot the document,
// run the pipeline, store the artifact.
type Service struct {
	Pipeline *Pipeline
	Repo     Repo
	Store    object.ObjectStore
	Source   DocumentSource
}

// NewService constructs a Service.
func NewService(pipeline *Pipeline, repo Repo, store object.ObjectStore, source DocumentSource) *Service {
	return &Service{Pipeline: pipeline, Repo: repo, Store: store, Source: source}
}

// Export produces a PDF for the resume's current state. With save set,
// pending editor changes are flushed to the store first; without it the
// document is exported as-is and the store is left alone. The PDF is
// kept in the object store under the owner's namespace either way.
func (s *Service) Export(ctx context.Context, ownerID, resumeID string, save bool) (Artifact, []byte, error) {
	if ownerID == "" || resumeID == "" {
		return Artifact{}, nil, ErrInvalidInput
	}

	doc, err := s.Source.Snapshot(ctx, ownerID, resumeID)
	if err != nil {
		return Artifact{}, nil, err
	}
	if save {
		if err := s.Source.Flush(ctx, ownerID, resumeID); err != nil {
			return Artifact{}, nil, err
		}
	}

	pdf, err := s.Pipeline.Export(ctx, doc)
	if err != nil {
		return Artifact{}, nil, err
	}

	fileName := FileName(doc.Name)
	storageKey, size, mimeType, err := s.Store.Save(ctx, ownerID, fileName, bytes.NewReader(pdf))
	if err != nil {
		return Artifact{}, nil, err
	}
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	artifact := Artifact{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		ResumeID:   doc.ID,
		TemplateID: doc.TemplateID,
		FileName:   fileName,
		StorageKey: storageKey,
		MimeType:   mimeType,
		SizeBytes:  size,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, artifact); err != nil {
		return Artifact{}, nil, err
	}
	return artifact, pdf, nil
}

// Preview lays out the live document as interactive HTML without
// touching storage or Chrome. An explicit templateID previews another
// catalog entry without saving the switch.
func (s *Service) Preview(ctx context.Context, ownerID, resumeID, templateID string, zoom float64) (render.Page, error) {
	if ownerID == "" || resumeID == "" {
		return render.Page{}, ErrInvalidInput
	}
	doc, err := s.Source.Snapshot(ctx, ownerID, resumeID)
	if err != nil {
		return render.Page{}, err
	}
	return s.Pipeline.Engine.Render(doc, templateID, render.Options{
		Mode: render.ModeInteractive,
		Zoom: zoom,
	})
}

// Get returns one artifact for an owner.
func (s *Service) Get(ctx context.Context, ownerID, artifactID string) (Artifact, error) {
	if ownerID == "" || artifactID == "" {
		return Artifact{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, ownerID, artifactID)
}

// List returns an owner's artifacts, newest first.
func (s *Service) List(ctx context.Context, ownerID string, limit, offset int) ([]Artifact, error) {
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByOwner(ctx, ownerID, limit, offset)
}

// FileName derives the download name from the document name. Unnamed or
// unusable names fall back to resume.pdf.
func FileName(docName string) string {
	trimmed := strings.TrimSpace(docName)
	if trimmed == "" {
		return "resume.pdf"
	}
	safe, err := util.SanitizeFileName(trimmed)
	if err != nil {
		return "resume.pdf"
	}
	if !strings.HasSuffix(strings.ToLower(safe), ".pdf") {
		safe += ".pdf"
	}
	return safe
}
