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

	"notetaker/internal/auth"
	"notetaker/internal/config"
	"notetaker/internal/domain/services"
	"notetaker/internal/handler"
	"notetaker/internal/middleware"
	"notetaker/internal/repository/postgres"
	"notetaker/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

const maxLogFiles = 10

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, maxLogFiles)
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
		"cascade_mode", cfg.CascadeMode,
	)

	// Create JWT verifier
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Apply schema migrations before opening the pool
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("migrations applied")

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	trashCoordinator := service.NewTrashCoordinator(folderRepo, noteRepo, services.CascadeMode(cfg.CascadeMode), logger)
	folderService := service.NewFolderService(folderRepo, trashCoordinator, txManager, logger)
	noteService := service.NewNoteService(noteRepo, folderRepo, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	trashHandler := handler.NewTrashHandler(trashCoordinator, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.List)
	mux.HandleFunc("POST /api/folders", folderHandler.Create)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.Update)
	mux.HandleFunc("PUT /api/folders/{id}/trash", folderHandler.Trash)
	mux.HandleFunc("PUT /api/folders/{id}/restore", folderHandler.Restore)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.Delete)

	// Note routes
	mux.HandleFunc("GET /api/notes", noteHandler.List)
	mux.HandleFunc("POST /api/notes", noteHandler.Create)
	mux.HandleFunc("DELETE /api/notes/trash/empty", noteHandler.EmptyTrash) // Must come before {id} route
	mux.HandleFunc("GET /api/notes/{id}", noteHandler.Get)
	mux.HandleFunc("PATCH /api/notes/{id}", noteHandler.Update)
	mux.HandleFunc("PUT /api/notes/{id}/trash", noteHandler.Trash)
	mux.HandleFunc("PUT /api/notes/{id}/restore", noteHandler.Restore)
	mux.HandleFunc("DELETE /api/notes/{id}", noteHandler.Delete)

	// Trash repair route
	mux.HandleFunc("POST /api/trash/reconcile", trashHandler.Reconcile)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
