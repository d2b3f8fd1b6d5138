package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"mindnotes/internal/auth"
	"mindnotes/internal/config"
	"mindnotes/internal/handler"
	"mindnotes/internal/middleware"
	"mindnotes/internal/repository/postgres"
	"mindnotes/internal/service"
	"mindnotes/internal/service/extract"
	"mindnotes/internal/service/summary"

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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	bookmarkRepo := postgres.NewBookmarkRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)

	// Setup the summarizer (nil when no API key is configured: naive
	// fallback summaries only)
	summarizer, err := summary.New(cfg)
	if err != nil {
		log.Fatalf("Failed to setup summarizer: %v", err)
	}
	if summarizer == nil {
		logger.Warn("no Anthropic API key configured, AI summaries disabled")
	}

	// Create services
	selection := service.NewSelectionTracker()
	folderService := service.NewFolderService(folderRepo, bookmarkRepo, selection, logger)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, folderRepo, selection, logger)
	noteService := service.NewNoteService(noteRepo, extract.NewPageExtractor(), summarizer, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", folderHandler.HealthCheck)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("GET /api/folders/options", folderHandler.FolderOptions) // Must come before {id} route
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// Bookmark routes
	mux.HandleFunc("GET /api/bookmarks", bookmarkHandler.ListBookmarks)
	mux.HandleFunc("POST /api/bookmarks", bookmarkHandler.CreateBookmark)
	mux.HandleFunc("PATCH /api/bookmarks/{id}", bookmarkHandler.UpdateBookmark)
	mux.HandleFunc("DELETE /api/bookmarks/{id}", bookmarkHandler.DeleteBookmark)

	// Selection routes
	mux.HandleFunc("GET /api/selection", bookmarkHandler.GetSelection)
	mux.HandleFunc("PUT /api/selection", bookmarkHandler.SetSelection)

	// Note routes
	mux.HandleFunc("GET /api/notes", noteHandler.ListNotes)
	mux.HandleFunc("POST /api/notes", noteHandler.CreateNote)
	mux.HandleFunc("PATCH /api/notes/{id}", noteHandler.UpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", noteHandler.DeleteNote)

	// Capture routes
	mux.HandleFunc("POST /api/capture/summary", noteHandler.Summarize)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.AuthMiddleware(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests.
	// The popup calls from a chrome-extension:// origin.
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
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
