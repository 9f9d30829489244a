package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mneme/internal/access"
	"mneme/internal/domain"
	"mneme/internal/domain/models"
	"mneme/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresQuizRepository implements the QuizRepository interface
type PostgresQuizRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(config *RepositoryConfig) repositories.QuizRepository {
	return &PostgresQuizRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const quizColumns = `id, type, prompt, choices, answers, tags, note_id, source_id,
		created_by, is_public, read_users, read_groups, write_users, write_groups,
		created_at, updated_at`

// Create creates a new quiz
func (r *PostgresQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, type, prompt, choices, answers, tags, note_id, source_id,
			created_by, is_public, read_users, read_groups, write_users, write_groups,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, r.tables.Quizzes)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		quiz.ID,
		quiz.Type,
		quiz.Prompt,
		textArray(quiz.Choices),
		textArray(quiz.Answers),
		textArray(quiz.Tags),
		quiz.NoteID,
		quiz.SourceID,
		quiz.CreatedBy,
		quiz.Permissions.IsPublic,
		textArray(quiz.Permissions.ReadUsers),
		textArray(quiz.Permissions.ReadGroups),
		textArray(quiz.Permissions.WriteUsers),
		textArray(quiz.Permissions.WriteGroups),
		quiz.CreatedAt,
		quiz.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}

	return nil
}

// GetByID retrieves a quiz by ID regardless of visibility
func (r *PostgresQuizRepository) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, quizColumns, r.tables.Quizzes)

	executor := GetExecutor(ctx, r.pool)
	quiz, err := scanQuiz(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("quiz %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	return quiz, nil
}

// Update updates an existing quiz
func (r *PostgresQuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET type = $2, prompt = $3, choices = $4, answers = $5, tags = $6,
			note_id = $7, source_id = $8, is_public = $9, read_users = $10,
			read_groups = $11, write_users = $12, write_groups = $13, updated_at = $14
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Quizzes)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		quiz.ID,
		quiz.Type,
		quiz.Prompt,
		textArray(quiz.Choices),
		textArray(quiz.Answers),
		textArray(quiz.Tags),
		quiz.NoteID,
		quiz.SourceID,
		quiz.Permissions.IsPublic,
		textArray(quiz.Permissions.ReadUsers),
		textArray(quiz.Permissions.ReadGroups),
		textArray(quiz.Permissions.WriteUsers),
		textArray(quiz.Permissions.WriteGroups),
		quiz.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quiz %s: %w", quiz.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a quiz
func (r *PostgresQuizRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Quizzes)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quiz %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListReadable lists all quizzes visible to the principal
func (r *PostgresQuizRepository) ListReadable(ctx context.Context, principal *models.Principal) ([]models.Quiz, error) {
	clause, args := access.ReadableClause(principal, 1)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE deleted_at IS NULL AND %s
		ORDER BY created_at DESC
	`, quizColumns, r.tables.Quizzes, clause)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, *quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}

	return quizzes, nil
}

func scanQuiz(row rowScanner) (*models.Quiz, error) {
	var q models.Quiz
	err := row.Scan(
		&q.ID,
		&q.Type,
		&q.Prompt,
		&q.Choices,
		&q.Answers,
		&q.Tags,
		&q.NoteID,
		&q.SourceID,
		&q.CreatedBy,
		&q.Permissions.IsPublic,
		&q.Permissions.ReadUsers,
		&q.Permissions.ReadGroups,
		&q.Permissions.WriteUsers,
		&q.Permissions.WriteGroups,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
