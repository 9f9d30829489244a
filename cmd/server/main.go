package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"mneme/internal/auth"
	"mneme/internal/config"
	"mneme/internal/handler"
	"mneme/internal/middleware"
	"mneme/internal/quiztypes"
	"mneme/internal/repository/postgres"
	"mneme/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

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

	// Initialize quiz type registry
	quizRegistry, err := quiztypes.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize quiz type registry: %v", err)
	}
	logger.Info("quiz type registry initialized", "types", len(quizRegistry.List()))

	// Create services
	sourceService := service.NewSourceService(sourceRepo, logger)
	noteService := service.NewNoteService(noteRepo, logger)
	quizService := service.NewQuizService(quizRepo, quizRegistry, logger)
	courseService := service.NewCourseService(courseRepo, txManager, contentFetcher, logger)
	groupService := service.NewGroupService(groupRepo, txManager, logger)

	// Create handlers
	sourceHandler := handler.NewSourceHandler(sourceService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	quizHandler := handler.NewQuizHandler(quizService, quizRegistry, logger)
	courseHandler := handler.NewCourseHandler(courseService, logger)
	groupHandler := handler.NewGroupHandler(groupService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Source routes
	mux.HandleFunc("POST /api/sources", sourceHandler.CreateSource)
	mux.HandleFunc("GET /api/sources", sourceHandler.ListSources)
	mux.HandleFunc("GET /api/sources/{id}", sourceHandler.GetSource)
	mux.HandleFunc("PUT /api/sources/{id}", sourceHandler.UpdateSource)
	mux.HandleFunc("DELETE /api/sources/{id}", sourceHandler.DeleteSource)

	// Note routes
	mux.HandleFunc("POST /api/notes", noteHandler.CreateNote)
	mux.HandleFunc("GET /api/notes", noteHandler.ListNotes)
	mux.HandleFunc("GET /api/notes/{id}", noteHandler.GetNote)
	mux.HandleFunc("PUT /api/notes/{id}", noteHandler.UpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", noteHandler.DeleteNote)

	// Quiz routes
	mux.HandleFunc("POST /api/quizzes", quizHandler.CreateQuiz)
	mux.HandleFunc("GET /api/quizzes", quizHandler.ListQuizzes)
	mux.HandleFunc("GET /api/quizzes/types", quizHandler.ListQuizTypes) // Must come before {id} route
	mux.HandleFunc("GET /api/quizzes/{id}", quizHandler.GetQuiz)
	mux.HandleFunc("PUT /api/quizzes/{id}", quizHandler.UpdateQuiz)
	mux.HandleFunc("DELETE /api/quizzes/{id}", quizHandler.DeleteQuiz)

	// Course routes
	mux.HandleFunc("POST /api/courses", courseHandler.CreateCourse)
	mux.HandleFunc("GET /api/courses", courseHandler.ListCourses)
	mux.HandleFunc("GET /api/courses/{id}", courseHandler.GetCourse)
	mux.HandleFunc("PUT /api/courses/{id}", courseHandler.UpdateCourse)
	mux.HandleFunc("DELETE /api/courses/{id}", courseHandler.DeleteCourse)
	mux.HandleFunc("GET /api/courses/{id}/content", courseHandler.GetCourseContent)

	// Group routes
	mux.HandleFunc("POST /api/groups", groupHandler.CreateGroup)
	mux.HandleFunc("GET /api/groups", groupHandler.ListGroups)
	mux.HandleFunc("GET /api/groups/{id}", groupHandler.GetGroup)
	mux.HandleFunc("PUT /api/groups/{id}", groupHandler.UpdateGroup)
	mux.HandleFunc("DELETE /api/groups/{id}", groupHandler.DeleteGroup)
	mux.HandleFunc("POST /api/groups/{id}/members", groupHandler.AddMember)
	mux.HandleFunc("DELETE /api/groups/{id}/members/{userID}", groupHandler.RemoveMember)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.Auth(jwtVerifier, userRepo, logger)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
