package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/markup"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

const defaultFilename = "outline.yaml"

// buildResponse is the body of a synchronous build.
type buildResponse struct {
	*outline.Outline
	Issues []string      `json:"issues"`
	Stats  outline.Stats `json:"stats"`
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readOutline(w, r)
	if !ok {
		return
	}

	o, err := markup.Build(r.Context(), s.builder, filename, data)
	if o == nil {
		jsonError(w, "invalid outline: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	var issues outline.Errors
	if err != nil && !errors.As(err, &issues) {
		s.log.Error("build failed", "filename", filename, "error", err)
		jsonError(w, "build failed", http.StatusInternalServerError)
		return
	}

	msgs := issues.Messages()
	if len(issues) > 0 {
		s.log.Warn("outline built with issues", "filename", filename, "issues", len(issues))
	}
	writeJSON(w, http.StatusOK, buildResponse{
		Outline: o,
		Issues:  msgs,
		Stats:   o.Stats(),
	})
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readOutline(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(filename, data)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":       job.ID,
		"status":       pipeline.StatusQueued,
		"content_hash": job.ContentHash,
		"poll_url":     fmt.Sprintf("/api/outline/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// readOutline reads the raw outline file from the request body. The filename
// query parameter selects the format.
func (s *Server) readOutline(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	filename := defaultFilename
	if v := r.URL.Query().Get("filename"); v != "" {
		filename = sanitizeFilename(v)
	}
	if !isOutlineFile(filename) {
		jsonError(w, fmt.Sprintf("unsupported outline type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("outline exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return "", nil, false
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return "", nil, false
	}
	return filename, data, true
}

func isOutlineFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return markup.IsSummary(name)
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
