package services

import (
	"context"

	"mneme/internal/domain/models"
)

// CreateNoteRequest represents a request to create a note
type CreateNoteRequest struct {
	Title       string       `json:"title"`
	Text        string       `json:"text"`
	Tags        []string     `json:"tags"`
	SourceID    *string      `json:"source_id"`
	Permissions models.Grant `json:"permissions"`
}

// UpdateNoteRequest represents a request to update a note
type UpdateNoteRequest struct {
	Title       string       `json:"title"`
	Text        string       `json:"text"`
	Tags        []string     `json:"tags"`
	SourceID    *string      `json:"source_id"`
	Permissions models.Grant `json:"permissions"`
}

// NoteService defines business logic operations for notes
type NoteService interface {
	// CreateNote creates a new note owned by the principal
	CreateNote(ctx context.Context, principal *models.Principal, req *CreateNoteRequest) (*models.Note, error)

	// GetNote retrieves a note the principal may read
	GetNote(ctx context.Context, principal *models.Principal, id string) (*models.Note, error)

	// ListNotes lists all notes visible to the principal
	ListNotes(ctx context.Context, principal *models.Principal) ([]models.Note, error)

	// UpdateNote updates a note the principal may write
	UpdateNote(ctx context.Context, principal *models.Principal, id string, req *UpdateNoteRequest) (*models.Note, error)

	// DeleteNote soft-deletes a note the principal may write
	DeleteNote(ctx context.Context, principal *models.Principal, id string) error
}
