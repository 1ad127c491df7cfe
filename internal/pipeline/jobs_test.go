package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestNewJob(t *testing.T) {
	src := []byte("mainmatter: []\n")
	job := NewJob("book.yaml", src)

	if job.ID == "" {
		t.Error("expected a job ID")
	}
	if job.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, job.Status)
	}
	if job.ContentHash != ContentHashHex(src) {
		t.Errorf("expected content hash of source, got %q", job.ContentHash)
	}
	if got := job.Snapshot().ContentHash; got != ContentHashHex(src) {
		t.Errorf("expected snapshot content hash %q, got %q", ContentHashHex(src), got)
	}
	if string(job.Source()) != string(src) {
		t.Errorf("expected source %q, got %q", src, job.Source())
	}

	other := NewJob("book.yaml", src)
	if other.ID == job.ID {
		t.Error("expected distinct job IDs")
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusBuilding, "building"},
		{StatusPartial, "done"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("mainmatter[0]: shape: integer is not a chapter")
	job.AddError("backmatter[2]: depth: nesting deeper than 32")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "mainmatter[0]: shape: integer is not a chapter" {
		t.Errorf("unexpected first error %q", snap.Progress.Errors[0])
	}

	// Snapshot errors must not alias the job's slice.
	snap.Progress.Errors[0] = "changed"
	if job.Snapshot().Progress.Errors[0] == "changed" {
		t.Error("expected snapshot errors to be a copy")
	}
}

func TestJob_SetResult(t *testing.T) {
	job := &Job{ID: "result-test", UpdatedAt: time.Now()}
	o := &outline.Outline{
		FrontMatter: []outline.Chapter{{Title: "Preface", Path: "preface.md"}},
		MainMatter: []outline.Chapter{
			{Title: "One", Sections: []outline.Chapter{{Title: "Sketch", Draft: true}}},
			{},
		},
		BackMatter: []outline.Chapter{},
	}
	job.SetResult(o)

	snap := job.Snapshot()
	if snap.Result != o {
		t.Error("expected snapshot to carry the outline")
	}
	if snap.Progress.Chapters != 4 {
		t.Errorf("expected 4 chapters, got %d", snap.Progress.Chapters)
	}
	if snap.Progress.Drafts != 1 {
		t.Errorf("expected 1 draft, got %d", snap.Progress.Drafts)
	}
	if snap.Progress.Empty != 1 {
		t.Errorf("expected 1 empty chapter, got %d", snap.Progress.Empty)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Result != nil {
		t.Error("expected no result before the build finishes")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
