package repositories

import (
	"context"

	"mneme/internal/domain/models"
)

// GroupRepository defines data access operations for groups and
// group membership.
type GroupRepository interface {
	// Create creates a new group
	Create(ctx context.Context, group *models.Group) error

	// GetByID retrieves a group by ID
	GetByID(ctx context.Context, id string) (*models.Group, error)

	// Update updates an existing group
	Update(ctx context.Context, group *models.Group) error

	// Delete soft-deletes a group
	Delete(ctx context.Context, id string) error

	// ListForUser lists groups the user created or belongs to
	ListForUser(ctx context.Context, userID string) ([]models.Group, error)

	// AddMember adds a user to a group
	AddMember(ctx context.Context, groupID, userID string) error

	// RemoveMember removes a user from a group
	RemoveMember(ctx context.Context, groupID, userID string) error

	// MemberIDs returns the IDs of a group's members
	MemberIDs(ctx context.Context, groupID string) ([]string, error)
}
