package services

import (
	"context"

	"mneme/internal/domain/models"
)

// CreateQuizRequest represents a request to create a quiz
type CreateQuizRequest struct {
	Type        string       `json:"type"`
	Prompt      string       `json:"prompt"`
	Choices     []string     `json:"choices"`
	Answers     []string     `json:"answers"`
	Tags        []string     `json:"tags"`
	NoteID      *string      `json:"note_id"`
	SourceID    *string      `json:"source_id"`
	Permissions models.Grant `json:"permissions"`
}

// UpdateQuizRequest represents a request to update a quiz
type UpdateQuizRequest struct {
	Type        string       `json:"type"`
	Prompt      string       `json:"prompt"`
	Choices     []string     `json:"choices"`
	Answers     []string     `json:"answers"`
	Tags        []string     `json:"tags"`
	NoteID      *string      `json:"note_id"`
	SourceID    *string      `json:"source_id"`
	Permissions models.Grant `json:"permissions"`
}

// QuizService defines business logic operations for quizzes
type QuizService interface {
	// CreateQuiz creates a new quiz owned by the principal
	CreateQuiz(ctx context.Context, principal *models.Principal, req *CreateQuizRequest) (*models.Quiz, error)

	// GetQuiz retrieves a quiz the principal may read
	GetQuiz(ctx context.Context, principal *models.Principal, id string) (*models.Quiz, error)

	// ListQuizzes lists all quizzes visible to the principal
	ListQuizzes(ctx context.Context, principal *models.Principal) ([]models.Quiz, error)

	// UpdateQuiz updates a quiz the principal may write
	UpdateQuiz(ctx context.Context, principal *models.Principal, id string, req *UpdateQuizRequest) (*models.Quiz, error)

	// DeleteQuiz soft-deletes a quiz the principal may write
	DeleteQuiz(ctx context.Context, principal *models.Principal, id string) error
}
