package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

// errSessionDetached reports that a session has been evicted from the
// manager's map. A caller still holding the pointer must reopen; the
// orphan never accepts another edit.
var errSessionDetached = errors.New("editor session detached")

// session holds the live in-memory state of one open document. Edits
// land here first; a debounced autosave writes the state back to the
// store. The session never blocks an edit on a storage write.
type session struct {
	mu sync.Mutex

	svc     *resumes.Service
	ownerID string

	doc   resumes.Resume
	dirty bool

	interval time.Duration
	timer    *time.Timer

	// onIdle is called after the debounce timer has fired and the
	// session is clean again; the manager uses it to evict.
	onIdle func()

	discarded bool
	detached  bool
}

// apply merges a patch into the live document and arms the autosave
// timer. Every edit resets the timer, so a burst of edits produces one
// write.
func (s *session) apply(p resumes.Patch) (resumes.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discarded {
		return resumes.Resume{}, resumes.ErrNotFound
	}
	if s.detached {
		return resumes.Resume{}, errSessionDetached
	}

	doc, err := s.svc.ApplyPatch(s.doc, p)
	if err != nil {
		return resumes.Resume{}, err
	}
	doc.UpdatedAt = time.Now().UTC()
	s.doc = doc
	s.dirty = true
	s.armLocked()
	return s.doc.Clone(), nil
}

// mutate applies an arbitrary transform to the live document and
// persists the result immediately. Used for server-initiated changes
// (optimization results) that must not wait out the debounce window.
func (s *session) mutate(ctx context.Context, fn func(resumes.Resume) (resumes.Resume, error)) (resumes.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discarded {
		return resumes.Resume{}, resumes.ErrNotFound
	}
	if s.detached {
		return resumes.Resume{}, errSessionDetached
	}

	doc, err := fn(s.doc.Clone())
	if err != nil {
		return resumes.Resume{}, err
	}
	doc.ID = s.doc.ID
	doc.OwnerID = s.doc.OwnerID
	doc.UpdatedAt = time.Now().UTC()

	if err := s.svc.Repo.Save(ctx, doc); err != nil {
		return resumes.Resume{}, err
	}
	s.doc = doc
	// Pending user edits were part of s.doc and are now persisted too.
	s.dirty = false
	s.stopTimerLocked()
	return s.doc.Clone(), nil
}

// snapshot returns a copy of the live document.
func (s *session) snapshot() (resumes.Resume, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discarded || s.detached {
		return resumes.Resume{}, false
	}
	return s.doc.Clone(), true
}

// flush persists the live document now and disarms the timer.
func (s *session) flush(ctx context.Context) error {
	s.mu.Lock()
	if s.discarded || !s.dirty {
		s.mu.Unlock()
		return nil
	}
	doc := s.doc.Clone()
	s.dirty = false
	s.stopTimerLocked()
	s.mu.Unlock()

	if err := s.svc.Repo.Save(ctx, doc); err != nil {
		s.mu.Lock()
		if !s.discarded {
			s.dirty = true
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *session) id() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.ID
}

func (s *session) hasUnsaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty && !s.discarded
}

// discard drops the session without writing anything.
func (s *session) discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discarded = true
	s.dirty = false
	s.stopTimerLocked()
}

// detachIfClean marks the session detached unless it holds unsaved
// edits. The dirty check and the flag flip happen under one lock hold,
// so an edit racing the eviction either lands before the flip (and
// keeps the session alive) or fails with errSessionDetached.
func (s *session) detachIfClean() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		return false
	}
	s.detached = true
	s.stopTimerLocked()
	return true
}

func (s *session) armLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.interval, s.autosave)
}

func (s *session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// autosave runs when the debounce window closes. It persists whatever
// the live document holds at fire time, including edits made after the
// user navigated away. A document deleted in the meantime stays
// deleted: the store rejects the write and the session is dropped.
func (s *session) autosave() {
	s.mu.Lock()
	if s.discarded || !s.dirty {
		onIdle := s.onIdle
		s.mu.Unlock()
		if onIdle != nil {
			onIdle()
		}
		return
	}
	doc := s.doc.Clone()
	s.dirty = false
	s.timer = nil
	onIdle := s.onIdle
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.svc.Repo.Save(ctx, doc); err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			telemetry.Info("autosave dropped for deleted resume", map[string]any{
				"resume_id": doc.ID,
			})
		} else {
			telemetry.Error("autosave failed", map[string]any{
				"resume_id": doc.ID,
				"error":     err.Error(),
			})
			s.mu.Lock()
			if !s.discarded && !s.detached {
				s.dirty = true
				s.armLocked()
			}
			s.mu.Unlock()
			return
		}
	} else {
		metrics.IncAutosave()
	}
	if onIdle != nil {
		onIdle()
	}
}
