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

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const noteColumns = `id, title, text, tags, source_id,
		created_by, is_public, read_users, read_groups, write_users, write_groups,
		created_at, updated_at`

// Create creates a new note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, text, tags, source_id,
			created_by, is_public, read_users, read_groups, write_users, write_groups,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		note.ID,
		note.Title,
		note.Text,
		textArray(note.Tags),
		note.SourceID,
		note.CreatedBy,
		note.Permissions.IsPublic,
		textArray(note.Permissions.ReadUsers),
		textArray(note.Permissions.ReadGroups),
		textArray(note.Permissions.WriteUsers),
		textArray(note.Permissions.WriteGroups),
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note by ID regardless of visibility
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, noteColumns, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	note, err := scanNote(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return note, nil
}

// Update updates an existing note
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, text = $3, tags = $4, source_id = $5, is_public = $6,
			read_users = $7, read_groups = $8, write_users = $9, write_groups = $10,
			updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		note.ID,
		note.Title,
		note.Text,
		textArray(note.Tags),
		note.SourceID,
		note.Permissions.IsPublic,
		textArray(note.Permissions.ReadUsers),
		textArray(note.Permissions.ReadGroups),
		textArray(note.Permissions.WriteUsers),
		textArray(note.Permissions.WriteGroups),
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", note.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a note
func (r *PostgresNoteRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListReadable lists all notes visible to the principal
func (r *PostgresNoteRepository) ListReadable(ctx context.Context, principal *models.Principal) ([]models.Note, error) {
	clause, args := access.ReadableClause(principal, 1)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE deleted_at IS NULL AND %s
		ORDER BY created_at DESC
	`, noteColumns, r.tables.Notes, clause)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

func scanNote(row rowScanner) (*models.Note, error) {
	var n models.Note
	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Text,
		&n.Tags,
		&n.SourceID,
		&n.CreatedBy,
		&n.Permissions.IsPublic,
		&n.Permissions.ReadUsers,
		&n.Permissions.ReadGroups,
		&n.Permissions.WriteUsers,
		&n.Permissions.WriteGroups,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
