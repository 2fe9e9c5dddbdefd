package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/qbexport/internal/export"
	"github.com/dgallion1/qbexport/internal/outputs"
	"github.com/dgallion1/qbexport/internal/pipeline"
	"github.com/dgallion1/qbexport/internal/question"
	"github.com/dgallion1/qbexport/internal/source"
)

const (
	headerRecordCount = "X-Record-Count"
	headerContentHash = "X-Content-Hash"
	headerIssueCount  = "X-Issue-Count"
)

type convertRequest struct {
	LaTeXCode string `json:"latex_code"`
	Format    string `json:"format,omitempty"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", s.cfg.MaxRequestBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.LaTeXCode == "" {
		jsonError(w, "No LaTeX code provided", http.StatusBadRequest)
		return
	}

	s.convertAndSend(w, r, pipeline.Request{
		LaTeX:  req.LaTeXCode,
		Format: req.Format,
		Source: "json",
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes+1024*1024)

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

	filename := sanitizeFilename(header.Filename)
	reader, err := source.ForFile(filename)
	if err != nil {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}
	if header.Size > s.cfg.MaxRequestBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxRequestBytes), http.StatusRequestEntityTooLarge)
		return
	}

	text, err := reader.Read(file, filename)
	if err != nil {
		s.log.Warn("upload read failed", "file", filename, "error", err)
		jsonError(w, "failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(text) == "" {
		jsonError(w, "No LaTeX code provided", http.StatusBadRequest)
		return
	}

	s.convertAndSend(w, r, pipeline.Request{
		LaTeX:  text,
		Format: r.FormValue("format"),
		Source: filename,
	})
}

// convertAndSend runs a conversion and streams the stored file back as
// an attachment.
func (s *Server) convertAndSend(w http.ResponseWriter, r *http.Request, req pipeline.Request) {
	res, err := s.converter.Convert(r.Context(), req)
	switch {
	case errors.Is(err, export.ErrUnknownFormat):
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, pipeline.ErrEmptyResult):
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		s.log.Error("conversion failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	defer res.Body.Close()

	w.Header().Set(headerRecordCount, strconv.Itoa(res.Records))
	w.Header().Set(headerContentHash, res.ContentHash)
	w.Header().Set(headerIssueCount, strconv.Itoa(len(res.Issues)))
	sendAttachment(w, r, res.Body, res.File, res.ContentType, downloadName(s.cfg.DownloadName, res.Extension))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.LaTeXCode == "" {
		jsonError(w, "No LaTeX code provided", http.StatusBadRequest)
		return
	}

	records, issues := s.converter.Preview(req.LaTeXCode)
	if len(records) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if issues == nil {
		issues = []question.Issue{}
	}
	rows := make([]map[string]*string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Values())
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"columns": question.Columns(records),
		"records": rows,
		"issues":  issues,
	})
}

func sendAttachment(w http.ResponseWriter, r *http.Request, content io.ReadSeeker, info outputs.File, contentType, name string) {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(name))
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	http.ServeContent(w, r, name, info.ModTime, content)
}

// downloadName swaps the extension of the configured download name for
// the format actually produced.
func downloadName(base, ext string) string {
	if base == "" {
		base = "output"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + ext
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
