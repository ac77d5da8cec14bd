package export

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resume-builder/internal/render"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

// DefaultRasterScale oversamples the page to keep text crisp in the
// packaged PDF.
const DefaultRasterScale = 2.0

// Rasterizer turns a laid-out page into a PNG at the given device
// scale factor.
type Rasterizer interface {
	Rasterize(ctx context.Context, page render.Page, scale float64) ([]byte, error)
}

// Pipeline runs one export: render the document to a page, rasterize
// the page, package the raster into a single-page PDF. The current
// stage is observable per resume and always returns to idle, success
// or failure.
type Pipeline struct {
	Engine *render.Engine
	Raster Rasterizer
	// Scale overrides DefaultRasterScale when positive.
	Scale float64

	mu     sync.Mutex
	stages map[string]Stage
}

// NewPipeline constructs a Pipeline.
func NewPipeline(engine *render.Engine, raster Rasterizer) *Pipeline {
	return &Pipeline{
		Engine: engine,
		Raster: raster,
		stages: make(map[string]Stage),
	}
}

// Stage reports the pipeline stage for a resume; resumes with no export
// in flight are idle.
func (p *Pipeline) Stage(resumeID string) Stage {
	p.mu.Lock()
	defer p.mu.Unlock()
	if st, ok := p.stages[resumeID]; ok {
		return st
	}
	return StageIdle
}

// Export runs the three stages against a snapshot of the document and
// returns the PDF bytes.
func (p *Pipeline) Export(ctx context.Context, doc resumes.Resume) ([]byte, error) {
	started := time.Now()
	metrics.IncExportStarted()
	defer p.reset(doc.ID)

	p.setStage(doc.ID, StageRendering)
	page, err := p.Engine.Render(doc, "", render.Options{Mode: render.ModePrint})
	if err != nil {
		metrics.IncExportFailed()
		return nil, fmt.Errorf("render stage: %w", err)
	}

	p.setStage(doc.ID, StageRasterizing)
	png, err := p.Raster.Rasterize(ctx, page, p.scale())
	if err != nil {
		metrics.IncExportFailed()
		return nil, fmt.Errorf("rasterize stage: %w", err)
	}

	p.setStage(doc.ID, StagePackaging)
	pdf, err := packagePDF(png, page)
	if err != nil {
		metrics.IncExportFailed()
		return nil, fmt.Errorf("package stage: %w", err)
	}

	elapsed := time.Since(started)
	metrics.IncExportCompleted()
	metrics.ObserveExportDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("export completed", map[string]any{
		"resume_id":   doc.ID,
		"template_id": page.TemplateID,
		"size_bytes":  len(pdf),
		"duration_ms": elapsed.Milliseconds(),
	})
	return pdf, nil
}

func (p *Pipeline) setStage(resumeID string, st Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stages[resumeID] = st
}

func (p *Pipeline) reset(resumeID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.stages, resumeID)
}

func (p *Pipeline) scale() float64 {
	if p.Scale > 0 {
		return p.Scale
	}
	return DefaultRasterScale
}
