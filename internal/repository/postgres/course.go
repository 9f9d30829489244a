package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"mneme/internal/access"
	"mneme/internal/domain"
	"mneme/internal/domain/models"
	"mneme/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCourseRepository implements the CourseRepository interface.
// Prerequisite edges carry a level alongside the course id, so they are
// stored as a JSONB document rather than a plain array column.
type PostgresCourseRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(config *RepositoryConfig) repositories.CourseRepository {
	return &PostgresCourseRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const courseColumns = `id, name, description, parent_course_ids, prerequisites,
		source_ids, note_ids, quiz_ids, add_all_from_sources, add_all_from_notes,
		created_by, is_public, read_users, read_groups, write_users, write_groups,
		created_at, updated_at`

// Create creates a new course
func (r *PostgresCourseRepository) Create(ctx context.Context, course *models.Course) error {
	prereqs, err := marshalPrerequisites(course.Prerequisites)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, parent_course_ids, prerequisites,
			source_ids, note_ids, quiz_ids, add_all_from_sources, add_all_from_notes,
			created_by, is_public, read_users, read_groups, write_users, write_groups,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, r.tables.Courses)

	executor := GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		course.ID,
		course.Name,
		course.Description,
		textArray(course.ParentCourseIDs),
		prereqs,
		textArray(course.SourceIDs),
		textArray(course.NoteIDs),
		textArray(course.QuizIDs),
		course.AddAllFromSources,
		course.AddAllFromNotes,
		course.CreatedBy,
		course.Permissions.IsPublic,
		textArray(course.Permissions.ReadUsers),
		textArray(course.Permissions.ReadGroups),
		textArray(course.Permissions.WriteUsers),
		textArray(course.Permissions.WriteGroups),
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID regardless of visibility
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, courseColumns, r.tables.Courses)

	executor := GetExecutor(ctx, r.pool)
	course, err := scanCourse(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return course, nil
}

// Update updates an existing course
func (r *PostgresCourseRepository) Update(ctx context.Context, course *models.Course) error {
	prereqs, err := marshalPrerequisites(course.Prerequisites)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, description = $3, parent_course_ids = $4, prerequisites = $5,
			source_ids = $6, note_ids = $7, quiz_ids = $8, add_all_from_sources = $9,
			add_all_from_notes = $10, is_public = $11, read_users = $12,
			read_groups = $13, write_users = $14, write_groups = $15, updated_at = $16
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Courses)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		course.ID,
		course.Name,
		course.Description,
		textArray(course.ParentCourseIDs),
		prereqs,
		textArray(course.SourceIDs),
		textArray(course.NoteIDs),
		textArray(course.QuizIDs),
		course.AddAllFromSources,
		course.AddAllFromNotes,
		course.Permissions.IsPublic,
		textArray(course.Permissions.ReadUsers),
		textArray(course.Permissions.ReadGroups),
		textArray(course.Permissions.WriteUsers),
		textArray(course.Permissions.WriteGroups),
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", course.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a course
func (r *PostgresCourseRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Courses)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListReadable lists all courses visible to the principal
func (r *PostgresCourseRepository) ListReadable(ctx context.Context, principal *models.Principal) ([]models.Course, error) {
	clause, args := access.ReadableClause(principal, 1)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE deleted_at IS NULL AND %s
		ORDER BY created_at DESC
	`, courseColumns, r.tables.Courses, clause)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return courses, nil
}

// ParentEdges returns the course's parent-course IDs. A missing course
// yields an empty edge list so graph traversal treats it as a leaf.
func (r *PostgresCourseRepository) ParentEdges(ctx context.Context, courseID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT parent_course_ids FROM %s WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Courses)

	executor := GetExecutor(ctx, r.pool)
	var ids []string
	err := executor.QueryRow(ctx, query, courseID).Scan(&ids)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("parent edges for course %s: %w", courseID, err)
	}

	return ids, nil
}

// PrerequisiteEdges returns the course's prerequisite course IDs
func (r *PostgresCourseRepository) PrerequisiteEdges(ctx context.Context, courseID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT prerequisites FROM %s WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Courses)

	executor := GetExecutor(ctx, r.pool)
	var raw []byte
	err := executor.QueryRow(ctx, query, courseID).Scan(&raw)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("prerequisite edges for course %s: %w", courseID, err)
	}

	prereqs, err := unmarshalPrerequisites(raw)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(prereqs))
	for i, p := range prereqs {
		ids[i] = p.CourseID
	}
	return ids, nil
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var c models.Course
	var prereqs []byte
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.ParentCourseIDs,
		&prereqs,
		&c.SourceIDs,
		&c.NoteIDs,
		&c.QuizIDs,
		&c.AddAllFromSources,
		&c.AddAllFromNotes,
		&c.CreatedBy,
		&c.Permissions.IsPublic,
		&c.Permissions.ReadUsers,
		&c.Permissions.ReadGroups,
		&c.Permissions.WriteUsers,
		&c.Permissions.WriteGroups,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Prerequisites, err = unmarshalPrerequisites(prereqs)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func marshalPrerequisites(prereqs []models.Prerequisite) ([]byte, error) {
	if prereqs == nil {
		prereqs = []models.Prerequisite{}
	}
	data, err := json.Marshal(prereqs)
	if err != nil {
		return nil, fmt.Errorf("marshal prerequisites: %w", err)
	}
	return data, nil
}

func unmarshalPrerequisites(raw []byte) ([]models.Prerequisite, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var prereqs []models.Prerequisite
	if err := json.Unmarshal(raw, &prereqs); err != nil {
		return nil, fmt.Errorf("unmarshal prerequisites: %w", err)
	}
	return prereqs, nil
}
