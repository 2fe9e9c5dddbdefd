package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	files, err := s.converter.Store().List()
	if err != nil {
		jsonError(w, "failed to list files: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"window":         s.cfg.StatsWindow.String(),
		"stats":          s.converter.Stats().Snapshot(),
		"retained_files": len(files),
	})
}
