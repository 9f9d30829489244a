package repositories

import (
	"context"

	"mneme/internal/domain/models"
)

// QuizRepository defines data access operations for quizzes
type QuizRepository interface {
	// Create creates a new quiz
	Create(ctx context.Context, quiz *models.Quiz) error

	// GetByID retrieves a quiz by ID regardless of visibility.
	// Callers are responsible for access checks.
	GetByID(ctx context.Context, id string) (*models.Quiz, error)

	// Update updates an existing quiz
	Update(ctx context.Context, quiz *models.Quiz) error

	// Delete soft-deletes a quiz
	Delete(ctx context.Context, id string) error

	// ListReadable lists all quizzes visible to the principal,
	// filtered database-side by the pushed-down readable predicate.
	ListReadable(ctx context.Context, principal *models.Principal) ([]models.Quiz, error)
}
