package handler

import (
	"log/slog"
	"net/http"

	"taskboard/internal/domain/services"
	"taskboard/internal/httputil"
)

// DocumentHandler serves the aggregated document listing endpoints.
type DocumentHandler struct {
	documentService services.DocumentService
	logger          *slog.Logger
}

// NewDocumentHandler creates a document handler
func NewDocumentHandler(documentService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, logger: logger}
}

// RegisterRoutes registers document endpoints on the mux
func (h *DocumentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/documents", h.ListAll)
	mux.HandleFunc("GET /api/documents/categories", h.ListCategories)
	mux.HandleFunc("GET /api/documents/project/{projectId}", h.ListProject)
}

func (h *DocumentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := services.NewListOptions(
		query.Get("category"),
		query.Get("sortBy"),
		query.Get("order"),
		query.Get("search"),
	)

	listing, err := h.documentService.ListAll(r.Context(), httputil.GetUserID(r), opts)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, listing)
}

func (h *DocumentHandler) ListProject(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := services.NewListOptions(
		"",
		query.Get("sortBy"),
		query.Get("order"),
		"",
	)

	listing, err := h.documentService.ListProject(r.Context(), httputil.GetUserID(r), r.PathValue("projectId"), opts)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, listing)
}

func (h *DocumentHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	listing, err := h.documentService.ListCategories(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, listing)
}
