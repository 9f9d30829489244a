package repositories

import (
	"context"

	"mneme/internal/domain/models"
)

// SourceRepository defines data access operations for sources
type SourceRepository interface {
	// Create creates a new source
	Create(ctx context.Context, source *models.Source) error

	// GetByID retrieves a source by ID regardless of visibility.
	// Callers are responsible for access checks.
	GetByID(ctx context.Context, id string) (*models.Source, error)

	// Update updates an existing source
	Update(ctx context.Context, source *models.Source) error

	// Delete soft-deletes a source
	Delete(ctx context.Context, id string) error

	// ListReadable lists all sources visible to the principal,
	// filtered database-side by the pushed-down readable predicate.
	ListReadable(ctx context.Context, principal *models.Principal) ([]models.Source, error)
}
