package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/ijfields/IdeaHub-sub002/internal/auth"
	"github.com/ijfields/IdeaHub-sub002/internal/config"
	"github.com/ijfields/IdeaHub-sub002/internal/handler"
	"github.com/ijfields/IdeaHub-sub002/internal/middleware"
	"github.com/ijfields/IdeaHub-sub002/internal/repository/postgres"
	"github.com/ijfields/IdeaHub-sub002/internal/service"
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

	// Create JWT verifier for bearer-token authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.AuthJWKSURL, logger)
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

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	ideaRepo := postgres.NewIdeaRepository(repoConfig)
	commentRepo := postgres.NewCommentRepository(repoConfig)
	projectRepo := postgres.NewProjectLinkRepository(repoConfig)

	// Create services
	counters := service.NewCounterReconciler(ideaRepo, logger)
	catalogService := service.NewCatalogService(ideaRepo, counters, logger)
	discussionService := service.NewDiscussionService(commentRepo, ideaRepo, counters, logger)
	contributionService := service.NewContributionService(projectRepo, ideaRepo, counters, cfg.CampaignGoal, logger)

	// Create handlers
	ideaHandler := handler.NewIdeaHandler(catalogService, logger)
	commentHandler := handler.NewCommentHandler(discussionService, logger)
	projectHandler := handler.NewProjectHandler(contributionService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", ideaHandler.HealthCheck)

	// Catalog routes
	mux.HandleFunc("GET /api/ideas", ideaHandler.ListIdeas)
	mux.HandleFunc("GET /api/ideas/{id}", ideaHandler.GetIdea)
	mux.HandleFunc("POST /api/ideas/{id}/view", ideaHandler.IncrementView)

	// Discussion routes
	mux.HandleFunc("GET /api/ideas/{id}/comments", commentHandler.ListByIdea)
	mux.HandleFunc("POST /api/ideas/{id}/comments", commentHandler.Create)
	mux.HandleFunc("PATCH /api/comments/{id}", commentHandler.Edit)
	mux.HandleFunc("POST /api/comments/{id}/flag", commentHandler.Flag)
	mux.HandleFunc("DELETE /api/comments/{id}", commentHandler.Delete)
	mux.HandleFunc("GET /api/users/me/comments", commentHandler.ListMine)

	// Contribution routes; the literal /stats pattern wins over {id}
	mux.HandleFunc("GET /api/projects/stats", projectHandler.Stats)
	mux.HandleFunc("GET /api/ideas/{id}/projects", projectHandler.ListByIdea)
	mux.HandleFunc("POST /api/ideas/{id}/projects", projectHandler.Submit)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.Update)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.Delete)
	mux.HandleFunc("GET /api/users/me/projects", projectHandler.ListMine)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
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

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
