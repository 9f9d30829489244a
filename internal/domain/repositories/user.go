package repositories

import (
	"context"

	"mneme/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Upsert inserts the user or refreshes its profile fields
	Upsert(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GroupIDs returns the IDs of the groups the user belongs to.
	// Called per request to build the principal.
	GroupIDs(ctx context.Context, userID string) ([]string, error)
}
