package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"mneme/internal/access"
	"mneme/internal/aggregate"
	"mneme/internal/config"
	"mneme/internal/domain"
	"mneme/internal/domain/models"
	"mneme/internal/domain/repositories"
	"mneme/internal/domain/services"
	"mneme/internal/hierarchy"
)

// courseService implements the CourseService interface
type courseService struct {
	courseRepo repositories.CourseRepository
	txManager  repositories.TransactionManager
	fetcher    aggregate.Fetcher
	logger     *slog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo repositories.CourseRepository,
	txManager repositories.TransactionManager,
	fetcher aggregate.Fetcher,
	logger *slog.Logger,
) services.CourseService {
	return &courseService{
		courseRepo: courseRepo,
		txManager:  txManager,
		fetcher:    fetcher,
		logger:     logger,
	}
}

// CreateCourse creates a new course owned by the principal.
// Relationship edges are cycle-checked and the row inserted inside one
// transaction, so a concurrent edge write cannot slip a cycle in
// between validation and persistence.
func (s *courseService) CreateCourse(ctx context.Context, principal *models.Principal, req *services.CreateCourseRequest) (*models.Course, error) {
	if principal == nil {
		return nil, fmt.Errorf("%w: authentication required to create courses", domain.ErrUnauthorized)
	}
	if err := validateCourseFields(req.Name, req.Description, req.Prerequisites); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	req.Permissions.Normalize()

	now := time.Now()
	course := &models.Course{
		ID:                uuid.NewString(),
		Name:              req.Name,
		Description:       req.Description,
		ParentCourseIDs:   dedupeIDs(req.ParentCourseIDs),
		Prerequisites:     dedupePrerequisites(req.Prerequisites),
		SourceIDs:         dedupeIDs(req.SourceIDs),
		NoteIDs:           dedupeIDs(req.NoteIDs),
		QuizIDs:           dedupeIDs(req.QuizIDs),
		AddAllFromSources: req.AddAllFromSources,
		AddAllFromNotes:   req.AddAllFromNotes,
		CreatedBy:         principal.ID,
		Permissions:       req.Permissions,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.validateEdges(txCtx, course); err != nil {
			return err
		}
		return s.courseRepo.Create(txCtx, course)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course created",
		"id", course.ID,
		"name", course.Name,
		"created_by", principal.ID,
	)

	return course, nil
}

// GetCourse retrieves a course the principal may read
func (s *courseService) GetCourse(ctx context.Context, principal *models.Principal, id string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanRead(course, principal) {
		return nil, fmt.Errorf("course %s: %w", id, domain.ErrForbidden)
	}
	return course, nil
}

// ListCourses lists all courses visible to the principal
func (s *courseService) ListCourses(ctx context.Context, principal *models.Principal) ([]models.Course, error) {
	return s.courseRepo.ListReadable(ctx, principal)
}

// UpdateCourse updates a course the principal may write. The new edge
// sets are cycle-checked against the stored graph inside the same
// transaction as the update.
func (s *courseService) UpdateCourse(ctx context.Context, principal *models.Principal, id string, req *services.UpdateCourseRequest) (*models.Course, error) {
	if err := validateCourseFields(req.Name, req.Description, req.Prerequisites); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanWrite(course, principal) {
		return nil, fmt.Errorf("course %s: %w", id, domain.ErrForbidden)
	}

	req.Permissions.Normalize()

	course.Name = req.Name
	course.Description = req.Description
	course.ParentCourseIDs = dedupeIDs(req.ParentCourseIDs)
	course.Prerequisites = dedupePrerequisites(req.Prerequisites)
	course.SourceIDs = dedupeIDs(req.SourceIDs)
	course.NoteIDs = dedupeIDs(req.NoteIDs)
	course.QuizIDs = dedupeIDs(req.QuizIDs)
	course.AddAllFromSources = req.AddAllFromSources
	course.AddAllFromNotes = req.AddAllFromNotes
	course.Permissions = req.Permissions
	course.UpdatedAt = time.Now()

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.validateEdges(txCtx, course); err != nil {
			return err
		}
		return s.courseRepo.Update(txCtx, course)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course updated", "id", course.ID, "updated_by", principal.ID)

	return course, nil
}

// DeleteCourse soft-deletes a course the principal may write.
// Other courses referencing it keep their edges; graph traversal
// treats the deleted course as a leaf.
func (s *courseService) DeleteCourse(ctx context.Context, principal *models.Principal, id string) error {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanWrite(course, principal) {
		return fmt.Errorf("course %s: %w", id, domain.ErrForbidden)
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("course deleted", "id", id, "deleted_by", principal.ID)

	return nil
}

// GetCourseContent expands the course's aggregated content for the
// principal. The course itself must be readable; every linked resource
// is filtered through its own grant.
func (s *courseService) GetCourseContent(ctx context.Context, principal *models.Principal, id string) (*aggregate.Content, error) {
	course, err := s.GetCourse(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return aggregate.Resolve(ctx, course, principal, s.fetcher)
}

// validateEdges cycle-checks every parent and prerequisite edge of the
// course against the stored graphs.
func (s *courseService) validateEdges(ctx context.Context, course *models.Course) error {
	for _, parentID := range course.ParentCourseIDs {
		err := hierarchy.ValidateEdge(ctx, hierarchy.EdgeParent, course.ID, parentID, s.courseRepo.ParentEdges)
		if err != nil {
			return err
		}
	}
	for _, prereq := range course.Prerequisites {
		err := hierarchy.ValidateEdge(ctx, hierarchy.EdgePrerequisite, course.ID, prereq.CourseID, s.courseRepo.PrerequisiteEdges)
		if err != nil {
			return err
		}
	}
	return nil
}

func validateCourseFields(name, description string, prereqs []models.Prerequisite) error {
	if err := validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxCourseNameLength),
	); err != nil {
		return fmt.Errorf("name: %v", err)
	}
	if err := validation.Validate(description,
		validation.Length(0, config.MaxDescriptionLength),
	); err != nil {
		return fmt.Errorf("description: %v", err)
	}
	for _, p := range prereqs {
		if p.CourseID == "" {
			return fmt.Errorf("prerequisites: course_id is required")
		}
		if p.RequiredAverageLevel < 1 {
			return fmt.Errorf("prerequisites: required_average_level must be at least 1")
		}
	}
	return nil
}

// dedupeIDs collapses duplicates while preserving first-seen order;
// the id lists have set semantics.
func dedupeIDs(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func dedupePrerequisites(prereqs []models.Prerequisite) []models.Prerequisite {
	if len(prereqs) < 2 {
		return prereqs
	}
	seen := make(map[string]struct{}, len(prereqs))
	out := make([]models.Prerequisite, 0, len(prereqs))
	for _, p := range prereqs {
		if _, ok := seen[p.CourseID]; ok {
			continue
		}
		seen[p.CourseID] = struct{}{}
		out = append(out, p)
	}
	return out
}
