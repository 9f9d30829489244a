package services

import (
	"context"
	"time"

	"mneme/internal/domain/models"
)

// CreateSourceRequest represents a request to create a source
type CreateSourceRequest struct {
	Title        string       `json:"title"`
	Medium       string       `json:"medium"`
	URL          *string      `json:"url"`
	Contributors []string     `json:"contributors"`
	PublishDate  *time.Time   `json:"publish_date"`
	LastAccessed *time.Time   `json:"last_accessed"`
	Tags         []string     `json:"tags"`
	Permissions  models.Grant `json:"permissions"`
}

// UpdateSourceRequest represents a request to update a source
type UpdateSourceRequest struct {
	Title        string       `json:"title"`
	Medium       string       `json:"medium"`
	URL          *string      `json:"url"`
	Contributors []string     `json:"contributors"`
	PublishDate  *time.Time   `json:"publish_date"`
	LastAccessed *time.Time   `json:"last_accessed"`
	Tags         []string     `json:"tags"`
	Permissions  models.Grant `json:"permissions"`
}

// SourceService defines business logic operations for sources.
// Every operation that takes a principal enforces the access rules
// itself; handlers do not re-check.
type SourceService interface {
	// CreateSource creates a new source owned by the principal
	CreateSource(ctx context.Context, principal *models.Principal, req *CreateSourceRequest) (*models.Source, error)

	// GetSource retrieves a source the principal may read.
	// Returns ErrNotFound for absent ids and ErrForbidden when the
	// source exists but is not visible to the principal.
	GetSource(ctx context.Context, principal *models.Principal, id string) (*models.Source, error)

	// ListSources lists all sources visible to the principal
	ListSources(ctx context.Context, principal *models.Principal) ([]models.Source, error)

	// UpdateSource updates a source the principal may write
	UpdateSource(ctx context.Context, principal *models.Principal, id string, req *UpdateSourceRequest) (*models.Source, error)

	// DeleteSource soft-deletes a source the principal may write
	DeleteSource(ctx context.Context, principal *models.Principal, id string) error
}
