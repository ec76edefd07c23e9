package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"taskboard/internal/config"
	"taskboard/internal/domain/services"
	"taskboard/internal/httputil"
)

// ArchiveHandler serves project archive export and import endpoints.
type ArchiveHandler struct {
	archiveService services.ArchiveService
	logger         *slog.Logger
}

// NewArchiveHandler creates an archive handler
func NewArchiveHandler(archiveService services.ArchiveService, logger *slog.Logger) *ArchiveHandler {
	return &ArchiveHandler{archiveService: archiveService, logger: logger}
}

// RegisterRoutes registers archive endpoints on the mux
func (h *ArchiveHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/archives/export/{projectId}", h.ExportProject)
	mux.HandleFunc("GET /api/archives/export-all", h.ExportAll)
	mux.HandleFunc("POST /api/archives/inspect", h.Inspect)
	mux.HandleFunc("POST /api/archives/import/{projectId}", h.ImportProject)
}

func (h *ArchiveHandler) ExportProject(w http.ResponseWriter, r *http.Request) {
	// Buffer the archive so errors can still produce a problem response
	// instead of a truncated download.
	var buf bytes.Buffer
	name, err := h.archiveService.ExportProject(r.Context(), r.PathValue("projectId"), httputil.GetUserID(r), &buf)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	serveZip(w, name, buf.Bytes())
}

func (h *ArchiveHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := h.archiveService.ExportAll(r.Context(), httputil.GetUserID(r), &buf)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	serveZip(w, name, buf.Bytes())
}

func (h *ArchiveHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	archive, size, err := readUploadedArchive(w, r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	inspection, err := h.archiveService.Inspect(r.Context(), archive, size)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, inspection)
}

func (h *ArchiveHandler) ImportProject(w http.ResponseWriter, r *http.Request) {
	archive, size, err := readUploadedArchive(w, r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.archiveService.ImportProject(r.Context(), r.PathValue("projectId"), httputil.GetUserID(r), archive, size)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

// readUploadedArchive extracts the "archive" file from a multipart
// upload, enforcing the size cap.
func readUploadedArchive(w http.ResponseWriter, r *http.Request) (*bytes.Reader, int64, error) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxArchiveUploadBytes)

	if err := r.ParseMultipartForm(config.MaxArchiveUploadBytes); err != nil {
		return nil, 0, fmt.Errorf("invalid multipart upload: %w", err)
	}

	file, header, err := r.FormFile("archive")
	if err != nil {
		return nil, 0, fmt.Errorf("archive file is required: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, 0, fmt.Errorf("failed to read upload: %w", err)
	}

	return bytes.NewReader(buf.Bytes()), header.Size, nil
}

func serveZip(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
