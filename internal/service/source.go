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

// sourceService implements the SourceService interface
type sourceService struct {
	sourceRepo repositories.SourceRepository
	logger     *slog.Logger
}

// NewSourceService creates a new source service
func NewSourceService(sourceRepo repositories.SourceRepository, logger *slog.Logger) services.SourceService {
	return &sourceService{
		sourceRepo: sourceRepo,
		logger:     logger,
	}
}

// CreateSource creates a new source owned by the principal
func (s *sourceService) CreateSource(ctx context.Context, principal *models.Principal, req *services.CreateSourceRequest) (*models.Source, error) {
	if principal == nil {
		return nil, fmt.Errorf("%w: authentication required to create sources", domain.ErrUnauthorized)
	}
	if err := validateSourceFields(req.Title, req.Medium, req.URL); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	req.Permissions.Normalize()

	now := time.Now()
	source := &models.Source{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Medium:       req.Medium,
		URL:          req.URL,
		Contributors: req.Contributors,
		PublishDate:  req.PublishDate,
		LastAccessed: req.LastAccessed,
		Tags:         req.Tags,
		CreatedBy:    principal.ID,
		Permissions:  req.Permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sourceRepo.Create(ctx, source); err != nil {
		return nil, err
	}

	s.logger.Info("source created",
		"id", source.ID,
		"title", source.Title,
		"created_by", principal.ID,
	)

	return source, nil
}

// GetSource retrieves a source the principal may read
func (s *sourceService) GetSource(ctx context.Context, principal *models.Principal, id string) (*models.Source, error) {
	source, err := s.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(source, principal) {
		return nil, fmt.Errorf("source %s: %w", id, domain.ErrForbidden)
	}
	return source, nil
}

// ListSources lists all sources visible to the principal
func (s *sourceService) ListSources(ctx context.Context, principal *models.Principal) ([]models.Source, error) {
	return s.sourceRepo.ListReadable(ctx, principal)
}

// UpdateSource updates a source the principal may write.
// All mutable fields are replaced with the request's values.
func (s *sourceService) UpdateSource(ctx context.Context, principal *models.Principal, id string, req *services.UpdateSourceRequest) (*models.Source, error) {
	if err := validateSourceFields(req.Title, req.Medium, req.URL); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	source, err := s.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(source, principal) {
		return nil, fmt.Errorf("source %s: %w", id, domain.ErrForbidden)
	}

	req.Permissions.Normalize()

	source.Title = req.Title
	source.Medium = req.Medium
	source.URL = req.URL
	source.Contributors = req.Contributors
	source.PublishDate = req.PublishDate
	source.LastAccessed = req.LastAccessed
	source.Tags = req.Tags
	source.Permissions = req.Permissions
	source.UpdatedAt = time.Now()

	if err := s.sourceRepo.Update(ctx, source); err != nil {
		return nil, err
	}

	s.logger.Info("source updated", "id", source.ID, "updated_by", principal.ID)

	return source, nil
}

// DeleteSource soft-deletes a source the principal may write
func (s *sourceService) DeleteSource(ctx context.Context, principal *models.Principal, id string) error {
	source, err := s.sourceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanWrite(source, principal) {
		return fmt.Errorf("source %s: %w", id, domain.ErrForbidden)
	}

	if err := s.sourceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("source deleted", "id", id, "deleted_by", principal.ID)

	return nil
}

// validateSourceFields validates the shared create/update fields
func validateSourceFields(title, medium string, url *string) error {
	if err := validation.Validate(title,
		validation.Required,
		validation.Length(1, config.MaxTitleLength),
	); err != nil {
		return fmt.Errorf("title: %v", err)
	}
	if err := validation.Validate(medium,
		validation.Required,
		validation.Length(1, config.MaxTitleLength),
	); err != nil {
		return fmt.Errorf("medium: %v", err)
	}
	if url != nil {
		if err := validation.Validate(*url, validation.Length(0, config.MaxURLLength)); err != nil {
			return fmt.Errorf("url: %v", err)
		}
	}
	return nil
}
