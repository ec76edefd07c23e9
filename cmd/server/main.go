package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/httputil"
	"taskboard/internal/middleware"
	"taskboard/internal/realtime"
	"taskboard/internal/repository/postgres"
	"taskboard/internal/service"
	"taskboard/internal/service/documents"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

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

	// Tokens are always issued locally; verification can be delegated to
	// an external IdP's JWKS endpoint.
	issuer, err := auth.NewLocalAuthenticator(cfg.JWTSecret, logger)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	var verifier auth.TokenVerifier = issuer
	if cfg.AuthJWKSURL != "" {
		jwksVerifier, err := auth.NewJWKSVerifier(cfg.AuthJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWKS verifier: %v", err)
		}
		verifier = jwksVerifier
		logger.Info("token verification delegated to JWKS", "url", cfg.AuthJWKSURL)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	taskRepo := postgres.NewTaskRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Realtime hub
	hub := realtime.NewHub(logger)
	go hub.Run(ctx)

	// Create services
	authService := service.NewAuthService(userRepo, issuer, logger)
	userService := service.NewUserService(userRepo, logger)
	projectService := service.NewProjectService(projectRepo, taskRepo, userRepo, txManager, logger)
	taskService := service.NewTaskService(taskRepo, projectRepo, hub, logger)
	documentService := documents.NewDocumentService(projectRepo, taskRepo, logger)
	archiveService := service.NewArchiveService(projectRepo, taskRepo, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	handler.NewAuthHandler(authService, logger).RegisterRoutes(mux)
	handler.NewUserHandler(userService, logger).RegisterRoutes(mux)
	handler.NewProjectHandler(projectService, logger).RegisterRoutes(mux)
	handler.NewTaskHandler(taskService, logger).RegisterRoutes(mux)
	handler.NewDocumentHandler(documentService, logger).RegisterRoutes(mux)
	handler.NewArchiveHandler(archiveService, logger).RegisterRoutes(mux)
	handler.NewWebSocketHandler(hub, logger).RegisterRoutes(mux)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.AuthMiddleware(verifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived websocket connections
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
