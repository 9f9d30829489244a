package repositories

import (
	"context"

	"mneme/internal/domain/models"
)

// CourseRepository defines data access operations for courses
type CourseRepository interface {
	// Create creates a new course
	Create(ctx context.Context, course *models.Course) error

	// GetByID retrieves a course by ID regardless of visibility.
	// Callers are responsible for access checks.
	GetByID(ctx context.Context, id string) (*models.Course, error)

	// Update updates an existing course
	Update(ctx context.Context, course *models.Course) error

	// Delete soft-deletes a course
	Delete(ctx context.Context, id string) error

	// ListReadable lists all courses visible to the principal,
	// filtered database-side by the pushed-down readable predicate.
	ListReadable(ctx context.Context, principal *models.Principal) ([]models.Course, error)

	// ParentEdges returns the course's parent-course IDs.
	// Used by the hierarchy validator; a missing course yields an
	// empty edge list (it is a leaf as far as traversal goes).
	ParentEdges(ctx context.Context, courseID string) ([]string, error)

	// PrerequisiteEdges returns the course's prerequisite course IDs.
	PrerequisiteEdges(ctx context.Context, courseID string) ([]string, error)
}
