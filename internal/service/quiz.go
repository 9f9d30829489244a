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
	"mneme/internal/quiztypes"
)

// quizService implements the QuizService interface
type quizService struct {
	quizRepo repositories.QuizRepository
	registry *quiztypes.Registry
	logger   *slog.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(quizRepo repositories.QuizRepository, registry *quiztypes.Registry, logger *slog.Logger) services.QuizService {
	return &quizService{
		quizRepo: quizRepo,
		registry: registry,
		logger:   logger,
	}
}

// CreateQuiz creates a new quiz owned by the principal. The quiz type
// must be registered and the choices/answers must satisfy the type's
// authoring rules.
func (s *quizService) CreateQuiz(ctx context.Context, principal *models.Principal, req *services.CreateQuizRequest) (*models.Quiz, error) {
	if principal == nil {
		return nil, fmt.Errorf("%w: authentication required to create quizzes", domain.ErrUnauthorized)
	}
	if err := s.validateQuizFields(req.Type, req.Prompt, req.Choices, req.Answers); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	req.Permissions.Normalize()

	now := time.Now()
	quiz := &models.Quiz{
		ID:          uuid.NewString(),
		Type:        req.Type,
		Prompt:      req.Prompt,
		Choices:     req.Choices,
		Answers:     req.Answers,
		Tags:        req.Tags,
		NoteID:      req.NoteID,
		SourceID:    req.SourceID,
		CreatedBy:   principal.ID,
		Permissions: req.Permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}

	s.logger.Info("quiz created",
		"id", quiz.ID,
		"type", quiz.Type,
		"created_by", principal.ID,
	)

	return quiz, nil
}

// GetQuiz retrieves a quiz the principal may read
func (s *quizService) GetQuiz(ctx context.Context, principal *models.Principal, id string) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(quiz, principal) {
		return nil, fmt.Errorf("quiz %s: %w", id, domain.ErrForbidden)
	}
	return quiz, nil
}

// ListQuizzes lists all quizzes visible to the principal
func (s *quizService) ListQuizzes(ctx context.Context, principal *models.Principal) ([]models.Quiz, error) {
	return s.quizRepo.ListReadable(ctx, principal)
}

// UpdateQuiz updates a quiz the principal may write
func (s *quizService) UpdateQuiz(ctx context.Context, principal *models.Principal, id string, req *services.UpdateQuizRequest) (*models.Quiz, error) {
	if err := s.validateQuizFields(req.Type, req.Prompt, req.Choices, req.Answers); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(quiz, principal) {
		return nil, fmt.Errorf("quiz %s: %w", id, domain.ErrForbidden)
	}

	req.Permissions.Normalize()

	quiz.Type = req.Type
	quiz.Prompt = req.Prompt
	quiz.Choices = req.Choices
	quiz.Answers = req.Answers
	quiz.Tags = req.Tags
	quiz.NoteID = req.NoteID
	quiz.SourceID = req.SourceID
	quiz.Permissions = req.Permissions
	quiz.UpdatedAt = time.Now()

	if err := s.quizRepo.Update(ctx, quiz); err != nil {
		return nil, err
	}

	s.logger.Info("quiz updated", "id", quiz.ID, "updated_by", principal.ID)

	return quiz, nil
}

// DeleteQuiz soft-deletes a quiz the principal may write
func (s *quizService) DeleteQuiz(ctx context.Context, principal *models.Principal, id string) error {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanWrite(quiz, principal) {
		return fmt.Errorf("quiz %s: %w", id, domain.ErrForbidden)
	}

	if err := s.quizRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("quiz deleted", "id", id, "deleted_by", principal.ID)

	return nil
}

func (s *quizService) validateQuizFields(quizType, prompt string, choices, answers []string) error {
	if err := validation.Validate(prompt,
		validation.Required,
		validation.Length(1, config.MaxPromptLength),
	); err != nil {
		return fmt.Errorf("prompt: %v", err)
	}
	if err := validation.Validate(quizType, validation.Required); err != nil {
		return fmt.Errorf("type: %v", err)
	}
	return s.registry.Validate(quizType, choices, answers)
}
