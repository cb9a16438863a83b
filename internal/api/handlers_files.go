package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/wordjson/internal/parser"
	"github.com/dgallion1/wordjson/internal/store"
	"github.com/dgallion1/wordjson/internal/upload"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := upload.SanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("Invalid file type. Only %s files are allowed.",
			strings.Join(parser.ExtensionList(), ", ")), http.StatusBadRequest)
		return
	}

	fileID := s.newID()
	log := s.log.With("file_id", fileID, "filename", filename)

	relPath, size, err := s.uploads.Save(fileID, filename, file, s.cfg.MaxUploadBytes)
	if errors.Is(err, upload.ErrTooLarge) {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		log.Error("save upload failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rec := store.File{
		FileID:     fileID,
		Filename:   filename,
		FilePath:   relPath,
		UploadDate: store.FormatTime(time.Now()),
		FileType:   strings.ToLower(filepath.Ext(filename)),
	}
	if err := s.store.Insert(r.Context(), rec); err != nil {
		log.Error("store file record failed", "error", err)
		if rmErr := s.uploads.Remove(relPath); rmErr != nil {
			log.Warn("cleanup after failed insert", "error", rmErr)
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info("file uploaded", "bytes", size, "path", relPath)
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list files failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	ctx := r.Context()
	log := s.log.With("file_id", fileID)

	rec, err := s.store.Get(ctx, fileID)
	if err != nil {
		log.Error("lookup failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonError(w, "File not found", http.StatusNotFound)
		return
	}

	deleted, err := s.store.Delete(ctx, fileID)
	if err != nil {
		log.Error("delete record failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		jsonError(w, "Failed to delete file from database", http.StatusInternalServerError)
		return
	}

	if err := s.uploads.Remove(rec.FilePath); err != nil {
		log.Error("delete file from disk failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Info("file deleted")
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
