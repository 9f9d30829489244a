package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mneme/internal/domain"
	"mneme/internal/domain/models"
	"mneme/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGroupRepository implements the GroupRepository interface
type PostgresGroupRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(config *RepositoryConfig) repositories.GroupRepository {
	return &PostgresGroupRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const groupColumns = `id, name, description, created_by, created_at, updated_at`

// Create creates a new group
func (r *PostgresGroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Groups)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		group.ID,
		group.Name,
		group.Description,
		group.CreatedBy,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	return nil
}

// GetByID retrieves a group by ID
func (r *PostgresGroupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, groupColumns, r.tables.Groups)

	executor := GetExecutor(ctx, r.pool)
	var g models.Group
	err := executor.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	return &g, nil
}

// Update updates an existing group
func (r *PostgresGroupRepository) Update(ctx context.Context, group *models.Group) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Groups)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, group.ID, group.Name, group.Description, group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", group.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a group
func (r *PostgresGroupRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Groups)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListForUser lists groups the user created or belongs to
func (r *PostgresGroupRepository) ListForUser(ctx context.Context, userID string) ([]models.Group, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE deleted_at IS NULL
			AND (created_by = $1 OR id IN (SELECT group_id FROM %s WHERE user_id = $1))
		ORDER BY created_at DESC
	`, groupColumns, r.tables.Groups, r.tables.GroupMembers)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	return groups, nil
}

// AddMember adds a user to a group. Adding an existing member is a no-op.
func (r *PostgresGroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (group_id, user_id, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`, r.tables.GroupMembers)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, groupID, userID, time.Now())
	if err != nil {
		return fmt.Errorf("add group member: %w", err)
	}

	return nil
}

// RemoveMember removes a user from a group
func (r *PostgresGroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE group_id = $1 AND user_id = $2
	`, r.tables.GroupMembers)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}

	return nil
}

// MemberIDs returns the IDs of a group's members
func (r *PostgresGroupRepository) MemberIDs(ctx context.Context, groupID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT user_id FROM %s WHERE group_id = $1 ORDER BY added_at
	`, r.tables.GroupMembers)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("group members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("group members: %w", err)
	}

	return ids, nil
}
