package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/telemetry"
)

// DefaultAutosaveInterval is the debounce window between the last edit
// and the write-back to the store.
const DefaultAutosaveInterval = 30 * time.Second

// Manager tracks open editor sessions, one per (owner, resume). It
// satisfies resumes.SessionGateway so document PATCHes flow through the
// live session instead of hitting storage on every keystroke.
type Manager struct {
	mu       sync.Mutex
	svc      *resumes.Service
	interval time.Duration
	sessions map[string]*session
}

// NewManager constructs a Manager. A non-positive interval falls back
// to the default.
func NewManager(svc *resumes.Service, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Manager{
		svc:      svc,
		interval: interval,
		sessions: make(map[string]*session),
	}
}

func sessionKey(ownerID, resumeID string) string {
	return ownerID + "/" + resumeID
}

// Update applies a patch through the owner's session for the resume,
// opening one from the stored document if needed. A session evicted
// between lookup and apply refuses the edit; the loop reopens from the
// store, which holds the same state the evicted session did.
func (m *Manager) Update(ctx context.Context, ownerID, resumeID string, p resumes.Patch) (resumes.Resume, error) {
	for {
		s, err := m.open(ctx, ownerID, resumeID)
		if err != nil {
			return resumes.Resume{}, err
		}
		doc, err := s.apply(p)
		if errors.Is(err, errSessionDetached) {
			continue
		}
		return doc, err
	}
}

// Mutate runs a transform against the live document (or the stored one
// when no session is open) and persists the result immediately. The
// transform sees the current state, so it can merge a server-side
// result without clobbering edits made since the work was started.
func (m *Manager) Mutate(ctx context.Context, ownerID, resumeID string, fn func(resumes.Resume) (resumes.Resume, error)) (resumes.Resume, error) {
	for {
		s, err := m.open(ctx, ownerID, resumeID)
		if err != nil {
			return resumes.Resume{}, err
		}
		doc, err := s.mutate(ctx, fn)
		if errors.Is(err, errSessionDetached) {
			continue
		}
		return doc, err
	}
}

// Snapshot returns the live document when a session is open, falling
// back to the store otherwise. Exports read through here so they see
// unsaved edits.
func (m *Manager) Snapshot(ctx context.Context, ownerID, resumeID string) (resumes.Resume, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionKey(ownerID, resumeID)]
	m.mu.Unlock()
	if ok {
		if doc, live := s.snapshot(); live {
			return doc, nil
		}
	}
	return m.svc.Get(ctx, ownerID, resumeID)
}

// Flush writes the session's state to the store now. A resume with no
// open session or no pending edits is a no-op.
func (m *Manager) Flush(ctx context.Context, ownerID, resumeID string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionKey(ownerID, resumeID)]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return s.flush(ctx)
}

// Discard drops any open session without flushing it.
func (m *Manager) Discard(ownerID, resumeID string) {
	key := sessionKey(ownerID, resumeID)
	m.mu.Lock()
	s, ok := m.sessions[key]
	if ok {
		delete(m.sessions, key)
	}
	m.mu.Unlock()
	if ok {
		s.discard()
	}
}

// HasUnsavedChanges reports whether the session holds edits that have
// not reached the store yet.
func (m *Manager) HasUnsavedChanges(ownerID, resumeID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[sessionKey(ownerID, resumeID)]
	m.mu.Unlock()
	return ok && s.hasUnsaved()
}

// Close flushes every open session. Called on shutdown so pending
// autosaves are not lost.
func (m *Manager) Close(ctx context.Context) {
	m.mu.Lock()
	open := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		open = append(open, s)
	}
	m.sessions = make(map[string]*session)
	m.mu.Unlock()

	for _, s := range open {
		if err := s.flush(ctx); err != nil {
			telemetry.Error("session flush on shutdown failed", map[string]any{
				"resume_id": s.id(),
				"error":     err.Error(),
			})
		}
	}
}

// open returns the existing session or loads the stored document into a
// fresh one.
func (m *Manager) open(ctx context.Context, ownerID, resumeID string) (*session, error) {
	key := sessionKey(ownerID, resumeID)

	m.mu.Lock()
	if s, ok := m.sessions[key]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	doc, err := m.svc.Get(ctx, ownerID, resumeID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Lost the race to another opener: use theirs.
	if s, ok := m.sessions[key]; ok {
		return s, nil
	}
	s := &session{
		svc:      m.svc,
		ownerID:  ownerID,
		doc:      doc,
		interval: m.interval,
	}
	s.onIdle = func() { m.evict(key, s) }
	m.sessions[key] = s
	return s, nil
}

// evict removes a clean session after its debounce window has closed.
// The session is detached before it leaves the map, so a caller still
// holding the pointer cannot land an edit on the orphan and have its
// autosave clobber state written through a replacement session.
func (m *Manager) evict(key string, s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[key]; ok && cur == s && s.detachIfClean() {
		delete(m.sessions, key)
	}
}

var _ resumes.SessionGateway = (*Manager)(nil)
