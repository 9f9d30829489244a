package handler

import (
	"log/slog"
	"net/http"

	"mneme/internal/domain/models"
	"mneme/internal/domain/services"
	"mneme/internal/httputil"
	"mneme/internal/quiztypes"
)

// QuizHandler handles quiz HTTP requests
type QuizHandler struct {
	quizService services.QuizService
	registry    *quiztypes.Registry
	logger      *slog.Logger
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService services.QuizService, registry *quiztypes.Registry, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		registry:    registry,
		logger:      logger,
	}
}

// CreateQuiz creates a new quiz
// POST /api/quizzes
func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req services.CreateQuizRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quiz, err := h.quizService.CreateQuiz(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, quiz)
}

// GetQuiz retrieves a quiz by ID
// GET /api/quizzes/{id}
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "quiz ID is required")
		return
	}

	quiz, err := h.quizService.GetQuiz(r.Context(), httputil.GetPrincipal(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, quiz)
}

// ListQuizzes lists all quizzes visible to the caller
// GET /api/quizzes
func (h *QuizHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizService.ListQuizzes(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, err)
		return
	}

	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"quizzes": quizzes})
}

// UpdateQuiz updates a quiz
// PUT /api/quizzes/{id}
func (h *QuizHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "quiz ID is required")
		return
	}

	var req services.UpdateQuizRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quiz, err := h.quizService.UpdateQuiz(r.Context(), httputil.GetPrincipal(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, quiz)
}

// DeleteQuiz soft-deletes a quiz
// DELETE /api/quizzes/{id}
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "quiz ID is required")
		return
	}

	if err := h.quizService.DeleteQuiz(r.Context(), httputil.GetPrincipal(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListQuizTypes lists the registered quiz types and their authoring rules
// GET /api/quizzes/types
func (h *QuizHandler) ListQuizTypes(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"types": h.registry.List()})
}
