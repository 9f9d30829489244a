package handler

import (
	"log/slog"
	"net/http"

	"mneme/internal/domain/models"
	"mneme/internal/domain/services"
	"mneme/internal/httputil"
)

// GroupHandler handles group HTTP requests
type GroupHandler struct {
	groupService services.GroupService
	logger       *slog.Logger
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupService services.GroupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		logger:       logger,
	}
}

// memberRequest is the payload for membership changes
type memberRequest struct {
	UserID string `json:"user_id"`
}

// CreateGroup creates a new group
// POST /api/groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req services.CreateGroupRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, group)
}

// GetGroup retrieves a group by ID
// GET /api/groups/{id}
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "group ID is required")
		return
	}

	group, err := h.groupService.GetGroup(r.Context(), httputil.GetPrincipal(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, group)
}

// ListGroups lists groups the caller created or belongs to
// GET /api/groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListGroups(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, err)
		return
	}

	if groups == nil {
		groups = []models.Group{}
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

// UpdateGroup updates a group
// PUT /api/groups/{id}
func (h *GroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "group ID is required")
		return
	}

	var req services.UpdateGroupRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.groupService.UpdateGroup(r.Context(), httputil.GetPrincipal(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, group)
}

// DeleteGroup soft-deletes a group
// DELETE /api/groups/{id}
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "group ID is required")
		return
	}

	if err := h.groupService.DeleteGroup(r.Context(), httputil.GetPrincipal(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMember adds a user to a group
// POST /api/groups/{id}/members
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "group ID is required")
		return
	}

	var req memberRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil || req.UserID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := h.groupService.AddMember(r.Context(), httputil.GetPrincipal(r), id, req.UserID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveMember removes a user from a group
// DELETE /api/groups/{id}/members/{userID}
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	userID := r.PathValue("userID")
	if id == "" || userID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "group ID and user ID are required")
		return
	}

	if err := h.groupService.RemoveMember(r.Context(), httputil.GetPrincipal(r), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
