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

// PostgresSourceRepository implements the SourceRepository interface
type PostgresSourceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(config *RepositoryConfig) repositories.SourceRepository {
	return &PostgresSourceRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const sourceColumns = `id, title, medium, url, contributors, publish_date, last_accessed, tags,
		created_by, is_public, read_users, read_groups, write_users, write_groups,
		created_at, updated_at`

// Create creates a new source
func (r *PostgresSourceRepository) Create(ctx context.Context, source *models.Source) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, medium, url, contributors, publish_date, last_accessed, tags,
			created_by, is_public, read_users, read_groups, write_users, write_groups,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, r.tables.Sources)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		source.ID,
		source.Title,
		source.Medium,
		source.URL,
		textArray(source.Contributors),
		source.PublishDate,
		source.LastAccessed,
		textArray(source.Tags),
		source.CreatedBy,
		source.Permissions.IsPublic,
		textArray(source.Permissions.ReadUsers),
		textArray(source.Permissions.ReadGroups),
		textArray(source.Permissions.WriteUsers),
		textArray(source.Permissions.WriteGroups),
		source.CreatedAt,
		source.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	return nil
}

// GetByID retrieves a source by ID regardless of visibility
func (r *PostgresSourceRepository) GetByID(ctx context.Context, id string) (*models.Source, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, sourceColumns, r.tables.Sources)

	executor := GetExecutor(ctx, r.pool)
	source, err := scanSource(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get source: %w", err)
	}

	return source, nil
}

// Update updates an existing source
func (r *PostgresSourceRepository) Update(ctx context.Context, source *models.Source) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, medium = $3, url = $4, contributors = $5, publish_date = $6,
			last_accessed = $7, tags = $8, is_public = $9, read_users = $10,
			read_groups = $11, write_users = $12, write_groups = $13, updated_at = $14
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Sources)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		source.ID,
		source.Title,
		source.Medium,
		source.URL,
		textArray(source.Contributors),
		source.PublishDate,
		source.LastAccessed,
		textArray(source.Tags),
		source.Permissions.IsPublic,
		textArray(source.Permissions.ReadUsers),
		textArray(source.Permissions.ReadGroups),
		textArray(source.Permissions.WriteUsers),
		textArray(source.Permissions.WriteGroups),
		source.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("source %s: %w", source.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a source
func (r *PostgresSourceRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Sources)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListReadable lists all sources visible to the principal. The
// visibility predicate is pushed into the query so filtering happens
// database-side.
func (r *PostgresSourceRepository) ListReadable(ctx context.Context, principal *models.Principal) ([]models.Source, error) {
	clause, args := access.ReadableClause(principal, 1)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE deleted_at IS NULL AND %s
		ORDER BY created_at DESC
	`, sourceColumns, r.tables.Sources, clause)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []models.Source
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, *source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	return sources, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSource(row rowScanner) (*models.Source, error) {
	var s models.Source
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Medium,
		&s.URL,
		&s.Contributors,
		&s.PublishDate,
		&s.LastAccessed,
		&s.Tags,
		&s.CreatedBy,
		&s.Permissions.IsPublic,
		&s.Permissions.ReadUsers,
		&s.Permissions.ReadGroups,
		&s.Permissions.WriteUsers,
		&s.Permissions.WriteGroups,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// textArray normalizes nil slices to empty arrays so NOT NULL array
// columns never receive NULL.
func textArray(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
