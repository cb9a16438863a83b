package api

import (
	"net/http"

	"github.com/dgallion1/wordjson/internal/convert"
	"github.com/go-chi/chi/v5"
)

// handleWordToJSON converts a stored upload and returns its structure.
func (s *Server) handleWordToJSON(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	log := s.log.With("file_id", fileID)

	rec, err := s.store.Get(r.Context(), fileID)
	if err != nil {
		log.Error("lookup failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonError(w, "File not found", http.StatusNotFound)
		return
	}

	if !s.uploads.Exists(rec.FilePath) {
		jsonError(w, "File not found on disk", http.StatusNotFound)
		return
	}
	path, err := s.uploads.Abs(rec.FilePath)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	doc, err := s.converter.Convert(path)
	if err != nil {
		log.Error("conversion failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := convert.WriteJSON(w, doc); err != nil {
		log.Warn("write response failed", "error", err)
	}
}
