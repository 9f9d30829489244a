package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"mneme/internal/aggregate"
	"mneme/internal/domain/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresContentFetcher implements the aggregate.Fetcher interface.
// Every lookup is a single ANY($1) query; the back-reference lookups
// rely on the source_id / note_id indexes created by the schema.
type PostgresContentFetcher struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewContentFetcher creates a new content fetcher
func NewContentFetcher(config *RepositoryConfig) aggregate.Fetcher {
	return &PostgresContentFetcher{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// SourcesByID fetches live sources by ID. Absent ids are missing from
// the returned map.
func (f *PostgresContentFetcher) SourcesByID(ctx context.Context, ids []string) (map[string]*models.Source, error) {
	result := make(map[string]*models.Source)
	if len(ids) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ANY($1) AND deleted_at IS NULL
	`, sourceColumns, f.tables.Sources)

	executor := GetExecutor(ctx, f.pool)
	rows, err := executor.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch sources: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		result[source.ID] = source
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch sources: %w", err)
	}

	return result, nil
}

// NotesByID fetches live notes by ID
func (f *PostgresContentFetcher) NotesByID(ctx context.Context, ids []string) (map[string]*models.Note, error) {
	result := make(map[string]*models.Note)
	if len(ids) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ANY($1) AND deleted_at IS NULL
	`, noteColumns, f.tables.Notes)

	notes, err := f.queryNotes(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		result[n.ID] = n
	}
	return result, nil
}

// QuizzesByID fetches live quizzes by ID
func (f *PostgresContentFetcher) QuizzesByID(ctx context.Context, ids []string) (map[string]*models.Quiz, error) {
	result := make(map[string]*models.Quiz)
	if len(ids) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ANY($1) AND deleted_at IS NULL
	`, quizColumns, f.tables.Quizzes)

	quizzes, err := f.queryQuizzes(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	for _, q := range quizzes {
		result[q.ID] = q
	}
	return result, nil
}

// NotesBySources fetches live notes back-referencing any of the sources
func (f *PostgresContentFetcher) NotesBySources(ctx context.Context, sourceIDs []string) ([]*models.Note, error) {
	if len(sourceIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE source_id = ANY($1) AND deleted_at IS NULL
	`, noteColumns, f.tables.Notes)

	return f.queryNotes(ctx, query, sourceIDs)
}

// QuizzesBySources fetches live quizzes back-referencing any of the sources
func (f *PostgresContentFetcher) QuizzesBySources(ctx context.Context, sourceIDs []string) ([]*models.Quiz, error) {
	if len(sourceIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE source_id = ANY($1) AND deleted_at IS NULL
	`, quizColumns, f.tables.Quizzes)

	return f.queryQuizzes(ctx, query, sourceIDs)
}

// QuizzesByNotes fetches live quizzes back-referencing any of the notes
func (f *PostgresContentFetcher) QuizzesByNotes(ctx context.Context, noteIDs []string) ([]*models.Quiz, error) {
	if len(noteIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE note_id = ANY($1) AND deleted_at IS NULL
	`, quizColumns, f.tables.Quizzes)

	return f.queryQuizzes(ctx, query, noteIDs)
}

func (f *PostgresContentFetcher) queryNotes(ctx context.Context, query string, arg []string) ([]*models.Note, error) {
	executor := GetExecutor(ctx, f.pool)
	rows, err := executor.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("fetch notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch notes: %w", err)
	}

	return notes, nil
}

func (f *PostgresContentFetcher) queryQuizzes(ctx context.Context, query string, arg []string) ([]*models.Quiz, error) {
	executor := GetExecutor(ctx, f.pool)
	rows, err := executor.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("fetch quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch quizzes: %w", err)
	}

	return quizzes, nil
}
