package services

import (
	"context"

	"mneme/internal/aggregate"
	"mneme/internal/domain/models"
)

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	ParentCourseIDs   []string              `json:"parent_course_ids"`
	Prerequisites     []models.Prerequisite `json:"prerequisites"`
	SourceIDs         []string              `json:"source_ids"`
	NoteIDs           []string              `json:"note_ids"`
	QuizIDs           []string              `json:"quiz_ids"`
	AddAllFromSources bool                  `json:"add_all_from_sources"`
	AddAllFromNotes   bool                  `json:"add_all_from_notes"`
	Permissions       models.Grant          `json:"permissions"`
}

// UpdateCourseRequest represents a request to update a course
type UpdateCourseRequest struct {
	Name              string                `json:"name"`
	Description       string                `json:"description"`
	ParentCourseIDs   []string              `json:"parent_course_ids"`
	Prerequisites     []models.Prerequisite `json:"prerequisites"`
	SourceIDs         []string              `json:"source_ids"`
	NoteIDs           []string              `json:"note_ids"`
	QuizIDs           []string              `json:"quiz_ids"`
	AddAllFromSources bool                  `json:"add_all_from_sources"`
	AddAllFromNotes   bool                  `json:"add_all_from_notes"`
	Permissions       models.Grant          `json:"permissions"`
}

// CourseService defines business logic operations for courses.
// Relationship edges (parent courses, prerequisites) are validated
// for cycles inside the same transaction that persists them.
type CourseService interface {
	// CreateCourse creates a new course owned by the principal
	CreateCourse(ctx context.Context, principal *models.Principal, req *CreateCourseRequest) (*models.Course, error)

	// GetCourse retrieves a course the principal may read
	GetCourse(ctx context.Context, principal *models.Principal, id string) (*models.Course, error)

	// ListCourses lists all courses visible to the principal
	ListCourses(ctx context.Context, principal *models.Principal) ([]models.Course, error)

	// UpdateCourse updates a course the principal may write
	UpdateCourse(ctx context.Context, principal *models.Principal, id string, req *UpdateCourseRequest) (*models.Course, error)

	// DeleteCourse soft-deletes a course the principal may write
	DeleteCourse(ctx context.Context, principal *models.Principal, id string) error

	// GetCourseContent expands the course's aggregated content for
	// the principal: explicitly listed sources/notes/quizzes plus the
	// optional transitive pull-through, visibility-filtered.
	GetCourseContent(ctx context.Context, principal *models.Principal, id string) (*aggregate.Content, error)
}
