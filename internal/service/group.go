package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"mneme/internal/config"
	"mneme/internal/domain"
	"mneme/internal/domain/models"
	"mneme/internal/domain/repositories"
	"mneme/internal/domain/services"
)

// groupService implements the GroupService interface
type groupService struct {
	groupRepo repositories.GroupRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewGroupService creates a new group service
func NewGroupService(
	groupRepo repositories.GroupRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.GroupService {
	return &groupService{
		groupRepo: groupRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateGroup creates a new group; the creator becomes a member
func (s *groupService) CreateGroup(ctx context.Context, principal *models.Principal, req *services.CreateGroupRequest) (*models.Group, error) {
	if principal == nil {
		return nil, fmt.Errorf("%w: authentication required to create groups", domain.ErrUnauthorized)
	}
	if err := validateGroupFields(req.Name, req.Description); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	group := &models.Group{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   principal.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.groupRepo.Create(txCtx, group); err != nil {
			return err
		}
		return s.groupRepo.AddMember(txCtx, group.ID, principal.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("group created",
		"id", group.ID,
		"name", group.Name,
		"created_by", principal.ID,
	)

	return group, nil
}

// GetGroup retrieves a group visible to the principal. A group is
// visible to its creator and its members.
func (s *groupService) GetGroup(ctx context.Context, principal *models.Principal, id string) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if principal == nil || (group.CreatedBy != principal.ID && !principal.InGroup(id)) {
		return nil, fmt.Errorf("group %s: %w", id, domain.ErrForbidden)
	}
	return group, nil
}

// ListGroups lists groups the principal created or belongs to
func (s *groupService) ListGroups(ctx context.Context, principal *models.Principal) ([]models.Group, error) {
	if principal == nil {
		return nil, nil
	}
	return s.groupRepo.ListForUser(ctx, principal.ID)
}

// UpdateGroup updates a group; only the creator may update
func (s *groupService) UpdateGroup(ctx context.Context, principal *models.Principal, id string, req *services.UpdateGroupRequest) (*models.Group, error) {
	if err := validateGroupFields(req.Name, req.Description); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if principal == nil || group.CreatedBy != principal.ID {
		return nil, fmt.Errorf("group %s: %w", id, domain.ErrForbidden)
	}

	group.Name = req.Name
	group.Description = req.Description
	group.UpdatedAt = time.Now()

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}

	s.logger.Info("group updated", "id", group.ID, "updated_by", principal.ID)

	return group, nil
}

// DeleteGroup soft-deletes a group; only the creator may delete.
// Grants referencing the group simply stop matching anyone.
func (s *groupService) DeleteGroup(ctx context.Context, principal *models.Principal, id string) error {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if principal == nil || group.CreatedBy != principal.ID {
		return fmt.Errorf("group %s: %w", id, domain.ErrForbidden)
	}

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("group deleted", "id", id, "deleted_by", principal.ID)

	return nil
}

// AddMember adds a user to a group; only the creator may manage membership
func (s *groupService) AddMember(ctx context.Context, principal *models.Principal, groupID, userID string) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if principal == nil || group.CreatedBy != principal.ID {
		return fmt.Errorf("group %s: %w", groupID, domain.ErrForbidden)
	}

	if err := s.groupRepo.AddMember(ctx, groupID, userID); err != nil {
		return err
	}

	s.logger.Info("group member added", "group_id", groupID, "user_id", userID)

	return nil
}

// RemoveMember removes a user from a group. The creator may remove
// anyone; a member may remove themselves.
func (s *groupService) RemoveMember(ctx context.Context, principal *models.Principal, groupID, userID string) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if principal == nil || (group.CreatedBy != principal.ID && principal.ID != userID) {
		return fmt.Errorf("group %s: %w", groupID, domain.ErrForbidden)
	}

	if err := s.groupRepo.RemoveMember(ctx, groupID, userID); err != nil {
		return err
	}

	s.logger.Info("group member removed", "group_id", groupID, "user_id", userID)

	return nil
}

func validateGroupFields(name, description string) error {
	if err := validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxTitleLength),
	); err != nil {
		return fmt.Errorf("name: %v", err)
	}
	if err := validation.Validate(description,
		validation.Length(0, config.MaxDescriptionLength),
	); err != nil {
		return fmt.Errorf("description: %v", err)
	}
	return nil
}
