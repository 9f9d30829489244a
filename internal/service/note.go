package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"mneme/internal/access"
	"mneme/internal/config"
	"mneme/internal/domain"
	"mneme/internal/domain/models"
	"mneme/internal/domain/repositories"
	"mneme/internal/domain/services"
)

// noteService implements the NoteService interface
type noteService struct {
	noteRepo repositories.NoteRepository
	logger   *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo repositories.NoteRepository, logger *slog.Logger) services.NoteService {
	return &noteService{
		noteRepo: noteRepo,
		logger:   logger,
	}
}

// CreateNote creates a new note owned by the principal. SourceID is a
// weak back-reference; it is stored as given without checking that the
// source exists or is visible to the principal.
func (s *noteService) CreateNote(ctx context.Context, principal *models.Principal, req *services.CreateNoteRequest) (*models.Note, error) {
	if principal == nil {
		return nil, fmt.Errorf("%w: authentication required to create notes", domain.ErrUnauthorized)
	}
	if err := validateNoteFields(req.Title, req.Text); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	req.Permissions.Normalize()

	now := time.Now()
	note := &models.Note{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Text:        req.Text,
		Tags:        req.Tags,
		SourceID:    req.SourceID,
		CreatedBy:   principal.ID,
		Permissions: req.Permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		"id", note.ID,
		"title", note.Title,
		"created_by", principal.ID,
	)

	return note, nil
}

// GetNote retrieves a note the principal may read
func (s *noteService) GetNote(ctx context.Context, principal *models.Principal, id string) (*models.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(note, principal) {
		return nil, fmt.Errorf("note %s: %w", id, domain.ErrForbidden)
	}
	return note, nil
}

// ListNotes lists all notes visible to the principal
func (s *noteService) ListNotes(ctx context.Context, principal *models.Principal) ([]models.Note, error) {
	return s.noteRepo.ListReadable(ctx, principal)
}

// UpdateNote updates a note the principal may write
func (s *noteService) UpdateNote(ctx context.Context, principal *models.Principal, id string, req *services.UpdateNoteRequest) (*models.Note, error) {
	if err := validateNoteFields(req.Title, req.Text); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(note, principal) {
		return nil, fmt.Errorf("note %s: %w", id, domain.ErrForbidden)
	}

	req.Permissions.Normalize()

	note.Title = req.Title
	note.Text = req.Text
	note.Tags = req.Tags
	note.SourceID = req.SourceID
	note.Permissions = req.Permissions
	note.UpdatedAt = time.Now()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note updated", "id", note.ID, "updated_by", principal.ID)

	return note, nil
}

// DeleteNote soft-deletes a note the principal may write
func (s *noteService) DeleteNote(ctx context.Context, principal *models.Principal, id string) error {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanWrite(note, principal) {
		return fmt.Errorf("note %s: %w", id, domain.ErrForbidden)
	}

	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("note deleted", "id", id, "deleted_by", principal.ID)

	return nil
}

func validateNoteFields(title, text string) error {
	if err := validation.Validate(title,
		validation.Required,
		validation.Length(1, config.MaxTitleLength),
	); err != nil {
		return fmt.Errorf("title: %v", err)
	}
	if err := validation.Validate(text,
		validation.Required,
		validation.Length(1, config.MaxNoteTextLength),
	); err != nil {
		return fmt.Errorf("text: %v", err)
	}
	return nil
}
