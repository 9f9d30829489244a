package handler

import (
	"log/slog"
	"net/http"

	"mneme/internal/domain/models"
	"mneme/internal/domain/services"
	"mneme/internal/httputil"
)

// SourceHandler handles source HTTP requests
type SourceHandler struct {
	sourceService services.SourceService
	logger        *slog.Logger
}

// NewSourceHandler creates a new source handler
func NewSourceHandler(sourceService services.SourceService, logger *slog.Logger) *SourceHandler {
	return &SourceHandler{
		sourceService: sourceService,
		logger:        logger,
	}
}

// CreateSource creates a new source
// POST /api/sources
func (h *SourceHandler) CreateSource(w http.ResponseWriter, r *http.Request) {
	var req services.CreateSourceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	source, err := h.sourceService.CreateSource(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, source)
}

// GetSource retrieves a source by ID
// GET /api/sources/{id}
func (h *SourceHandler) GetSource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "source ID is required")
		return
	}

	source, err := h.sourceService.GetSource(r.Context(), httputil.GetPrincipal(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, source)
}

// ListSources lists all sources visible to the caller
// GET /api/sources
func (h *SourceHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.sourceService.ListSources(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, err)
		return
	}

	if sources == nil {
		sources = []models.Source{}
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"sources": sources})
}

// UpdateSource updates a source
// PUT /api/sources/{id}
func (h *SourceHandler) UpdateSource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "source ID is required")
		return
	}

	var req services.UpdateSourceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	source, err := h.sourceService.UpdateSource(r.Context(), httputil.GetPrincipal(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, source)
}

// DeleteSource soft-deletes a source
// DELETE /api/sources/{id}
func (h *SourceHandler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "source ID is required")
		return
	}

	if err := h.sourceService.DeleteSource(r.Context(), httputil.GetPrincipal(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
