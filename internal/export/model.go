package export

import "time"

// Artifact is a stored export: one PDF in the object store plus the
// metadata row pointing at it.
type Artifact struct {
	ID         string
	OwnerID    string
	ResumeID   string
	TemplateID string
	FileName   string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}

// Stage is the export pipeline's observable state for one resume.
type Stage string

const (
	StageIdle        Stage = "idle"
	StageRendering   Stage = "rendering"
	StageRasterizing Stage = "rasterizing"
	StagePackaging   Stage = "packaging"
)
