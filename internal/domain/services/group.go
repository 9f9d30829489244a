package services

import (
	"context"

	"mneme/internal/domain/models"
)

// CreateGroupRequest represents a request to create a group
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateGroupRequest represents a request to update a group
type UpdateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupService defines business logic operations for groups
type GroupService interface {
	// CreateGroup creates a new group; the creator becomes a member
	CreateGroup(ctx context.Context, principal *models.Principal, req *CreateGroupRequest) (*models.Group, error)

	// GetGroup retrieves a group visible to the principal
	GetGroup(ctx context.Context, principal *models.Principal, id string) (*models.Group, error)

	// ListGroups lists groups the principal created or belongs to
	ListGroups(ctx context.Context, principal *models.Principal) ([]models.Group, error)

	// UpdateGroup updates a group; only the creator may update
	UpdateGroup(ctx context.Context, principal *models.Principal, id string, req *UpdateGroupRequest) (*models.Group, error)

	// DeleteGroup soft-deletes a group; only the creator may delete
	DeleteGroup(ctx context.Context, principal *models.Principal, id string) error

	// AddMember adds a user to a group; only the creator may manage membership
	AddMember(ctx context.Context, principal *models.Principal, groupID, userID string) error

	// RemoveMember removes a user from a group
	RemoveMember(ctx context.Context, principal *models.Principal, groupID, userID string) error
}
