package api

import (
	"errors"
	"io/fs"
	"net/http"
)

func (s *Server) handleTitle(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")
	if p == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	title, err := s.titles.TitleFor(r.Context(), p)
	if err != nil {
		s.log.Warn("title lookup failed", "path", p, "error", err)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			jsonError(w, "chapter not found", http.StatusNotFound)
		case errors.Is(err, fs.ErrInvalid):
			jsonError(w, "invalid path", http.StatusBadRequest)
		default:
			jsonError(w, "title lookup failed", http.StatusUnprocessableEntity)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"path": p, "title": title})
}
