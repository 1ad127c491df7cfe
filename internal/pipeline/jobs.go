package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/google/uuid"
)

// JobStatus represents the state of an outline build job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusBuilding  JobStatus = "building"
	StatusCompleted JobStatus = "completed"
	StatusPartial   JobStatus = "partial" // built, but some nodes were degraded
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of a single outline build.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	source []byte
	result *outline.Outline
	errors []string
}

// Progress summarizes the built outline.
type Progress struct {
	Chapters int      `json:"chapters"`
	Drafts   int      `json:"drafts"`
	Empty    int      `json:"empty"`
	Errors   []string `json:"errors"`
}

// NewJob creates a queued job for an outline file.
func NewJob(filename string, source []byte) *Job {
	now := time.Now()
	return &Job{
		ID:          uuid.NewString(),
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		ContentHash: ContentHashHex(source),
		CreatedAt:   now,
		UpdatedAt:   now,
		source:      source,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetResult stores the built outline and its counts. The outline must not be
// modified afterwards.
func (j *Job) SetResult(o *outline.Outline) {
	stats := o.Stats()
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = o
	j.Progress.Chapters = stats.Chapters
	j.Progress.Drafts = stats.Drafts
	j.Progress.Empty = stats.Empty
	j.UpdatedAt = time.Now()
}

// Source returns the raw outline file bytes.
func (j *Job) Source() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.source
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string           `json:"job_id"`
	Status      JobStatus        `json:"status"`
	Phase       string           `json:"phase"`
	Filename    string           `json:"filename"`
	ContentHash string           `json:"content_hash"`
	Progress    Progress         `json:"progress"`
	Result      *outline.Outline `json:"result,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	return JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		ContentHash: j.ContentHash,
		Progress: Progress{
			Chapters: j.Progress.Chapters,
			Drafts:   j.Progress.Drafts,
			Empty:    j.Progress.Empty,
			Errors:   errs,
		},
		Result: j.result,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
