package handler

import (
	"log/slog"
	"net/http"

	"mneme/internal/domain/models"
	"mneme/internal/domain/services"
	"mneme/internal/httputil"
)

// CourseHandler handles course HTTP requests
type CourseHandler struct {
	courseService services.CourseService
	logger        *slog.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService services.CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// CreateCourse creates a new course
// POST /api/courses
// Returns 409 if a relationship edge would create a cycle
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCourseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, course)
}

// GetCourse retrieves a course by ID
// GET /api/courses/{id}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "course ID is required")
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), httputil.GetPrincipal(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, course)
}

// ListCourses lists all courses visible to the caller
// GET /api/courses
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, err)
		return
	}

	if courses == nil {
		courses = []models.Course{}
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

// UpdateCourse updates a course
// PUT /api/courses/{id}
// Returns 409 if a relationship edge would create a cycle
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "course ID is required")
		return
	}

	var req services.UpdateCourseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.courseService.UpdateCourse(r.Context(), httputil.GetPrincipal(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, course)
}

// DeleteCourse soft-deletes a course
// DELETE /api/courses/{id}
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "course ID is required")
		return
	}

	if err := h.courseService.DeleteCourse(r.Context(), httputil.GetPrincipal(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCourseContent expands the course's aggregated content
// GET /api/courses/{id}/content
func (h *CourseHandler) GetCourseContent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "course ID is required")
		return
	}

	content, err := h.courseService.GetCourseContent(r.Context(), httputil.GetPrincipal(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, content)
}
