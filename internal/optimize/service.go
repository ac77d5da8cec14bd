package optimize

import (
	"context"
	"errors"
	"sync"
	"time"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

// DocumentSessions is the slice of the editor manager the optimizer
// needs: read the live document and write a merged result back through
// the same path user edits take.
type DocumentSessions interface {
	Snapshot(ctx context.Context, ownerID, resumeID string) (resumes.Resume, error)
	Mutate(ctx context.Context, ownerID, resumeID string, fn func(resumes.Resume) (resumes.Resume, error)) (resumes.Resume, error)
}

// Service owns the optimization round trip: it builds the request from
// the live document, tracks the pending job, and reconciles the result
// against whatever the document looks like when the answer lands.
type Service struct {
	Client   Client
	Sessions DocumentSessions

	mu      sync.Mutex
	pending map[string]job // resumeID -> job
}

type job struct {
	OwnerID     string
	RequestedAt time.Time
}

// NewService constructs a Service.
func NewService(client Client, sessions DocumentSessions) *Service {
	return &Service{
		Client:   client,
		Sessions: sessions,
		pending:  make(map[string]job),
	}
}

// Start snapshots the live document and hands it to the optimizer. The
// call returns as soon as the job is registered; an inline response
// resolves in the background, an asynchronous one waits for the
// webhook. One job per resume at a time.
func (s *Service) Start(ctx context.Context, ownerID, resumeID, targetJob string) error {
	doc, err := s.Sessions.Snapshot(ctx, ownerID, resumeID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.pending[resumeID]; ok {
		s.mu.Unlock()
		return ErrAlreadyPending
	}
	s.pending[resumeID] = job{OwnerID: ownerID, RequestedAt: time.Now().UTC()}
	s.mu.Unlock()

	metrics.IncOptimizeStarted()
	go s.run(buildRequest(doc, targetJob))
	return nil
}

// Pending reports whether an optimization is in flight for the resume.
func (s *Service) Pending(resumeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[resumeID]
	return ok
}

// Resolve merges a result into the current document and clears the
// pending job. Results for unknown jobs report ErrUnknownJob; results
// for documents deleted mid-flight are dropped silently.
func (s *Service) Resolve(ctx context.Context, resumeID string, res Result) error {
	s.mu.Lock()
	j, ok := s.pending[resumeID]
	if ok {
		delete(s.pending, resumeID)
	}
	s.mu.Unlock()
	if !ok {
		return ErrUnknownJob
	}

	_, err := s.Sessions.Mutate(ctx, j.OwnerID, resumeID, func(cur resumes.Resume) (resumes.Resume, error) {
		return applyResult(cur, res), nil
	})
	if errors.Is(err, resumes.ErrNotFound) {
		telemetry.Info("optimization result dropped for deleted resume", map[string]any{
			"resume_id": resumeID,
		})
		return nil
	}
	if err == nil {
		metrics.IncOptimizeCompleted()
	}
	return err
}

func (s *Service) run(req Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := s.Client.Optimize(ctx, req)
	if err != nil {
		// The document stays exactly as it was; only the job is cleared
		// so the user can retry.
		s.drop(req.ResumeID)
		metrics.IncOptimizeFailed()
		telemetry.Error("optimization request failed", map[string]any{
			"resume_id": req.ResumeID,
			"error":     err.Error(),
		})
		return
	}
	if res == nil {
		// Accepted for asynchronous delivery: the webhook resolves it.
		return
	}
	if err := s.Resolve(ctx, req.ResumeID, *res); err != nil {
		telemetry.Error("optimization result apply failed", map[string]any{
			"resume_id": req.ResumeID,
			"error":     err.Error(),
		})
	}
}

func (s *Service) drop(resumeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, resumeID)
}

func buildRequest(doc resumes.Resume, targetJob string) Request {
	edus := make([]string, 0, len(doc.Education))
	for _, e := range doc.Education {
		edus = append(edus, e.Description)
	}
	exps := make([]string, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		exps = append(exps, e.Description)
	}
	return Request{
		ResumeID:               doc.ID,
		Summary:                doc.PersonalInfo.Summary,
		EducationDescriptions:  edus,
		ExperienceDescriptions: exps,
		TargetJob:              targetJob,
	}
}

// applyResult rewrites only the fields the optimizer declared, against
// the document's current entries. Descriptions are matched by position;
// entries removed while the job was in flight simply drop their
// rewrite, and everything else on the document is left alone.
func applyResult(doc resumes.Resume, res Result) resumes.Resume {
	if res.Summary != nil {
		doc.PersonalInfo.Summary = *res.Summary
	}
	if res.EducationDescriptions != nil {
		for i, d := range *res.EducationDescriptions {
			if i < len(doc.Education) {
				doc.Education[i].Description = d
			}
		}
	}
	if res.ExperienceDescriptions != nil {
		for i, d := range *res.ExperienceDescriptions {
			if i < len(doc.Experience) {
				doc.Experience[i].Description = d
			}
		}
	}
	return doc
}
