package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"mneme/internal/config"
	"mneme/internal/domain/models"
	"mneme/internal/domain/services"
	"mneme/internal/quiztypes"
	"mneme/internal/repository/postgres"
	"mneme/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	clearData := flag.Bool("clear-data", false, "Clear all content rows (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("Clearing content rows...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared")
		return
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	sourceRepo := postgres.NewSourceRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)
	quizRepo := postgres.NewQuizRepository(repoConfig)
	courseRepo := postgres.NewCourseRepository(repoConfig)
	groupRepo := postgres.NewGroupRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	contentFetcher := postgres.NewContentFetcher(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	quizRegistry, err := quiztypes.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize quiz type registry: %v", err)
	}

	// Create services
	sourceService := service.NewSourceService(sourceRepo, logger)
	noteService := service.NewNoteService(noteRepo, logger)
	quizService := service.NewQuizService(quizRepo, quizRegistry, logger)
	courseService := service.NewCourseService(courseRepo, txManager, contentFetcher, logger)
	groupService := service.NewGroupService(groupRepo, txManager, logger)

	// Demo user
	demoUserID := uuid.NewString()
	demoUser := &models.User{ID: demoUserID, Username: "demo", DisplayName: "Demo User"}
	if err := userRepo.Upsert(ctx, demoUser); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	demo := &models.Principal{ID: demoUserID}

	log.Println("Seeding demo content...")

	group, err := groupService.CreateGroup(ctx, demo, &services.CreateGroupRequest{
		Name:        "Study Group",
		Description: "Shared reading circle",
	})
	if err != nil {
		log.Fatalf("Failed to seed group: %v", err)
	}
	demo.GroupIDs = []string{group.ID}

	source, err := sourceService.CreateSource(ctx, demo, &services.CreateSourceRequest{
		Title:        "The Art of Memory",
		Medium:       "book",
		Contributors: []string{"Frances Yates"},
		Tags:         []string{"memory", "history"},
		Permissions:  models.Grant{IsPublic: true},
	})
	if err != nil {
		log.Fatalf("Failed to seed source: %v", err)
	}

	note, err := noteService.CreateNote(ctx, demo, &services.CreateNoteRequest{
		Title:       "Method of loci",
		Text:        "Spatial memory anchors abstract recall; place items along a familiar route.",
		Tags:        []string{"memory"},
		SourceID:    &source.ID,
		Permissions: models.Grant{ReadGroups: []string{group.ID}},
	})
	if err != nil {
		log.Fatalf("Failed to seed note: %v", err)
	}

	_, err = quizService.CreateQuiz(ctx, demo, &services.CreateQuizRequest{
		Type:        "prompt-response",
		Prompt:      "What anchors abstract recall in the method of loci?",
		Answers:     []string{"Spatial memory: items placed along a familiar route"},
		Tags:        []string{"memory"},
		NoteID:      &note.ID,
		SourceID:    &source.ID,
		Permissions: models.Grant{ReadGroups: []string{group.ID}},
	})
	if err != nil {
		log.Fatalf("Failed to seed quiz: %v", err)
	}

	intro, err := courseService.CreateCourse(ctx, demo, &services.CreateCourseRequest{
		Name:              "Memory Techniques 101",
		Description:       "Foundations of mnemonic practice",
		SourceIDs:         []string{source.ID},
		AddAllFromSources: true,
		AddAllFromNotes:   true,
		Permissions:       models.Grant{ReadGroups: []string{group.ID}},
	})
	if err != nil {
		log.Fatalf("Failed to seed course: %v", err)
	}

	_, err = courseService.CreateCourse(ctx, demo, &services.CreateCourseRequest{
		Name:        "Advanced Mnemonics",
		Description: "Builds on the foundations course",
		Prerequisites: []models.Prerequisite{
			{CourseID: intro.ID, RequiredAverageLevel: 1},
		},
		Permissions: models.Grant{ReadGroups: []string{group.ID}},
	})
	if err != nil {
		log.Fatalf("Failed to seed advanced course: %v", err)
	}

	log.Println("Seeding complete")
}

func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createUsers := `
		CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			display_name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUsers); err != nil {
		return err
	}

	createGroups := `
		CREATE TABLE IF NOT EXISTS ` + tables.Groups + ` (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createGroups); err != nil {
		return err
	}

	createGroupMembers := `
		CREATE TABLE IF NOT EXISTS ` + tables.GroupMembers + ` (
			group_id TEXT NOT NULL REFERENCES ` + tables.Groups + `(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (group_id, user_id)
		)
	`
	if _, err := pool.Exec(ctx, createGroupMembers); err != nil {
		return err
	}

	createSources := `
		CREATE TABLE IF NOT EXISTS ` + tables.Sources + ` (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			medium TEXT NOT NULL,
			url TEXT,
			contributors TEXT[] NOT NULL DEFAULT '{}',
			publish_date TIMESTAMPTZ,
			last_accessed TIMESTAMPTZ,
			tags TEXT[] NOT NULL DEFAULT '{}',
			created_by TEXT NOT NULL,
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			read_users TEXT[] NOT NULL DEFAULT '{}',
			read_groups TEXT[] NOT NULL DEFAULT '{}',
			write_users TEXT[] NOT NULL DEFAULT '{}',
			write_groups TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createSources); err != nil {
		return err
	}

	createNotes := `
		CREATE TABLE IF NOT EXISTS ` + tables.Notes + ` (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			text TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			source_id TEXT,
			created_by TEXT NOT NULL,
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			read_users TEXT[] NOT NULL DEFAULT '{}',
			read_groups TEXT[] NOT NULL DEFAULT '{}',
			write_users TEXT[] NOT NULL DEFAULT '{}',
			write_groups TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createNotes); err != nil {
		return err
	}

	createQuizzes := `
		CREATE TABLE IF NOT EXISTS ` + tables.Quizzes + ` (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			prompt TEXT NOT NULL,
			choices TEXT[] NOT NULL DEFAULT '{}',
			answers TEXT[] NOT NULL DEFAULT '{}',
			tags TEXT[] NOT NULL DEFAULT '{}',
			note_id TEXT,
			source_id TEXT,
			created_by TEXT NOT NULL,
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			read_users TEXT[] NOT NULL DEFAULT '{}',
			read_groups TEXT[] NOT NULL DEFAULT '{}',
			write_users TEXT[] NOT NULL DEFAULT '{}',
			write_groups TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createQuizzes); err != nil {
		return err
	}

	createCourses := `
		CREATE TABLE IF NOT EXISTS ` + tables.Courses + ` (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			parent_course_ids TEXT[] NOT NULL DEFAULT '{}',
			prerequisites JSONB NOT NULL DEFAULT '[]',
			source_ids TEXT[] NOT NULL DEFAULT '{}',
			note_ids TEXT[] NOT NULL DEFAULT '{}',
			quiz_ids TEXT[] NOT NULL DEFAULT '{}',
			add_all_from_sources BOOLEAN NOT NULL DEFAULT FALSE,
			add_all_from_notes BOOLEAN NOT NULL DEFAULT FALSE,
			created_by TEXT NOT NULL,
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			read_users TEXT[] NOT NULL DEFAULT '{}',
			read_groups TEXT[] NOT NULL DEFAULT '{}',
			write_users TEXT[] NOT NULL DEFAULT '{}',
			write_groups TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createCourses); err != nil {
		return err
	}

	// Indexes: back-reference lookups for course aggregation, plus
	// membership lookups for principal construction
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `notes_source_id ON ` + tables.Notes + `(source_id) WHERE source_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `quizzes_source_id ON ` + tables.Quizzes + `(source_id) WHERE source_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `quizzes_note_id ON ` + tables.Quizzes + `(note_id) WHERE note_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `group_members_user_id ON ` + tables.GroupMembers + `(user_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	// Drop in dependency order
	drops := []string{
		tables.GroupMembers,
		tables.Courses,
		tables.Quizzes,
		tables.Notes,
		tables.Sources,
		tables.Groups,
		tables.Users,
	}
	for _, table := range drops {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}

func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	clears := []string{
		tables.GroupMembers,
		tables.Courses,
		tables.Quizzes,
		tables.Notes,
		tables.Sources,
		tables.Groups,
	}
	for _, table := range clears {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
