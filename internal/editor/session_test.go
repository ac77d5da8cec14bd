package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-builder/internal/resumes"
	"resume-builder/internal/templates"
)

func newTestManager(t *testing.T, interval time.Duration) (*Manager, *resumes.Service, resumes.Resume) {
	t.Helper()
	repo := resumes.NewMemoryRepo()
	svc := resumes.NewService(repo, templates.NewRegistry())
	doc, err := svc.Create(context.Background(), "guest:u1", "modern", "")
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}
	return NewManager(svc, interval), svc, doc
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func strptr(s string) *string { return &s }

func TestUpdateDebouncesWrites(t *testing.T) {
	m, svc, doc := newTestManager(t, 40*time.Millisecond)
	ctx := context.Background()

	if _, err := m.Update(ctx, doc.OwnerID, doc.ID, resumes.Patch{Name: strptr("Draft A")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := m.Update(ctx, doc.OwnerID, doc.ID, resumes.Patch{Name: strptr("Draft B")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// Neither edit has reached the store yet.
	stored, err := svc.Get(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Untitled Resume" {
		t.Fatalf("store written before debounce window closed: %q", stored.Name)
	}
	if !m.HasUnsavedChanges(doc.OwnerID, doc.ID) {
		t.Fatal("expected dirty session")
	}

	waitFor(t, "debounced autosave", func() bool {
		stored, err := svc.Get(ctx, doc.OwnerID, doc.ID)
		return err == nil && stored.Name == "Draft B"
	})
	if m.HasUnsavedChanges(doc.OwnerID, doc.ID) {
		t.Fatal("session still dirty after autosave")
	}
}

func TestOptimizationMergePreservesConcurrentEdit(t *testing.T) {
	m, svc, doc := newTestManager(t, time.Minute)
	ctx := context.Background()

	// The user edits their phone number while an optimization round
	// trip is in flight.
	pi := doc.PersonalInfo
	pi.Phone = "555-0100"
	if _, err := m.Update(ctx, doc.OwnerID, doc.ID, resumes.Patch{PersonalInfo: &pi}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// The result lands: it rewrites the summary against the current
	// live document, not the state it was started from.
	merged, err := m.Mutate(ctx, doc.OwnerID, doc.ID, func(cur resumes.Resume) (resumes.Resume, error) {
		cur.PersonalInfo.Summary = "Seasoned engineer with a decade of delivery."
		return cur, nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	if merged.PersonalInfo.Phone != "555-0100" {
		t.Fatal("concurrent phone edit lost during merge")
	}
	if merged.PersonalInfo.Summary == "" {
		t.Fatal("optimized summary not applied")
	}

	// The merge persists immediately, pending edits included.
	stored, err := svc.Get(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.PersonalInfo.Phone != "555-0100" || stored.PersonalInfo.Summary == "" {
		t.Fatalf("store missing merged state: %+v", stored.PersonalInfo)
	}
	if m.HasUnsavedChanges(doc.OwnerID, doc.ID) {
		t.Fatal("session dirty after immediate persist")
	}
}

func TestAutosaveFiresAfterAbandonment(t *testing.T) {
	m, svc, doc := newTestManager(t, 30*time.Millisecond)
	ctx := context.Background()

	if _, err := m.Update(ctx, doc.OwnerID, doc.ID, resumes.Patch{Name: strptr("Abandoned")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	// No flush, no further requests: the timer alone must persist.
	waitFor(t, "abandoned autosave", func() bool {
		stored, err := svc.Get(ctx, doc.OwnerID, doc.ID)
		return err == nil && stored.Name == "Abandoned"
	})
}

func TestDiscardDropsPendingEdits(t *testing.T) {
	m, svc, doc := newTestManager(t, 30*time.Millisecond)
	ctx := context.Background()

	if _, err := m.Update(ctx, doc.OwnerID, doc.ID, resumes.Patch{Name: strptr("Never saved")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	m.Discard(doc.OwnerID, doc.ID)

	time.Sleep(100 * time.Millisecond)
	stored, err := svc.Get(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Untitled Resume" {
		t.Fatalf("discarded edit reached the store: %q", stored.Name)
	}
	if m.HasUnsavedChanges(doc.OwnerID, doc.ID) {
		t.Fatal("discarded session still reports unsaved changes")
	}
}

func TestAutosaveCannotResurrectDeletedResume(t *testing.T) {
	m, svc, doc := newTestManager(t, 30*time.Millisecond)
	ctx := context.Background()

	if _, err := m.Update(ctx, doc.OwnerID, doc.ID, resumes.Patch{Name: strptr("Zombie")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(ctx, doc.OwnerID, doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if _, err := svc.Get(ctx, doc.OwnerID, doc.ID); !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("deleted resume came back: err=%v", err)
	}
}

func TestEvictedSessionCannotClobberNewerEdits(t *testing.T) {
	m, svc, doc := newTestManager(t, 40*time.Millisecond)
	ctx := context.Background()

	// A request holds the session pointer while the debounce window
	// closes and the idle session is evicted from the map.
	orphan, err := m.open(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	m.evict(sessionKey(doc.OwnerID, doc.ID), orphan)

	// The orphan refuses the late edit instead of arming its own
	// autosave.
	if _, err := orphan.apply(resumes.Patch{Name: strptr("Stale edit")}); !errors.Is(err, errSessionDetached) {
		t.Fatalf("detached session accepted an edit: err=%v", err)
	}

	// Newer state flows through a replacement session and persists.
	if _, err := m.Update(ctx, doc.OwnerID, doc.ID, resumes.Patch{Name: strptr("Newer edit")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := m.Flush(ctx, doc.OwnerID, doc.ID); err != nil {
		t.Fatalf("flush: %v", err)
	}

	// Well past the debounce interval, the store must still hold the
	// newer edit: no stale write from the orphan.
	time.Sleep(120 * time.Millisecond)
	stored, err := svc.Get(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Newer edit" {
		t.Fatalf("stale session write clobbered newer edit: %q", stored.Name)
	}
}

func TestEvictionKeepsDirtySession(t *testing.T) {
	m, _, doc := newTestManager(t, time.Minute)
	ctx := context.Background()

	if _, err := m.Update(ctx, doc.OwnerID, doc.ID, resumes.Patch{Name: strptr("Pending")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	m.mu.Lock()
	s := m.sessions[sessionKey(doc.OwnerID, doc.ID)]
	m.mu.Unlock()
	m.evict(sessionKey(doc.OwnerID, doc.ID), s)

	if !m.HasUnsavedChanges(doc.OwnerID, doc.ID) {
		t.Fatal("eviction dropped a session with unsaved edits")
	}
	snap, err := m.Snapshot(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Name != "Pending" {
		t.Fatalf("live edit lost: %q", snap.Name)
	}
}

func TestSnapshotSeesUnsavedEdits(t *testing.T) {
	m, svc, doc := newTestManager(t, time.Minute)
	ctx := context.Background()

	if _, err := m.Update(ctx, doc.OwnerID, doc.ID, resumes.Patch{Name: strptr("Live")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	snap, err := m.Snapshot(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Name != "Live" {
		t.Fatalf("snapshot missed live edit: %q", snap.Name)
	}

	stored, err := svc.Get(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name == "Live" {
		t.Fatal("snapshot should not have forced a store write")
	}
}

func TestFlushPersistsImmediately(t *testing.T) {
	m, svc, doc := newTestManager(t, time.Minute)
	ctx := context.Background()

	if _, err := m.Update(ctx, doc.OwnerID, doc.ID, resumes.Patch{Name: strptr("Flushed")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := m.Flush(ctx, doc.OwnerID, doc.ID); err != nil {
		t.Fatalf("flush: %v", err)
	}

	stored, err := svc.Get(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Flushed" {
		t.Fatalf("flush did not persist: %q", stored.Name)
	}
	if m.HasUnsavedChanges(doc.OwnerID, doc.ID) {
		t.Fatal("session dirty after explicit flush")
	}
}
