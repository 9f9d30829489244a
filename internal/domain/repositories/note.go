package repositories

import (
	"context"

	"mneme/internal/domain/models"
)

// NoteRepository defines data access operations for notes
type NoteRepository interface {
	// Create creates a new note
	Create(ctx context.Context, note *models.Note) error

	// GetByID retrieves a note by ID regardless of visibility.
	// Callers are responsible for access checks.
	GetByID(ctx context.Context, id string) (*models.Note, error)

	// Update updates an existing note
	Update(ctx context.Context, note *models.Note) error

	// Delete soft-deletes a note
	Delete(ctx context.Context, id string) error

	// ListReadable lists all notes visible to the principal,
	// filtered database-side by the pushed-down readable predicate.
	ListReadable(ctx context.Context, principal *models.Principal) ([]models.Note, error)
}
