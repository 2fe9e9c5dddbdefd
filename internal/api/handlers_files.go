package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/qbexport/internal/outputs"
	"github.com/go-chi/chi/v5"
)

// handleListFiles lists retained output files, newest first.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.converter.Store().List()
	if err != nil {
		jsonError(w, "failed to list files: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"files": files,
		"max":   s.cfg.MaxOutputFiles,
	})
}

// handleDownloadFile serves a retained output file by name.
func (s *Server) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	f, info, err := s.converter.Store().Open(name)
	if errors.Is(err, outputs.ErrNotFound) {
		jsonError(w, "file not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	sendAttachment(w, r, f, info, mime.TypeByExtension(filepath.Ext(name)), name)
}
