package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/trainerlms/backend/docs"
	"github.com/trainerlms/backend/internal/auth"
	"github.com/trainerlms/backend/internal/config"
	"github.com/trainerlms/backend/internal/handlers"
	"github.com/trainerlms/backend/internal/logger"
	"github.com/trainerlms/backend/internal/middlewares"
	"github.com/trainerlms/backend/internal/services"
	"github.com/trainerlms/backend/internal/storage"
	"go.uber.org/zap"
)

const maxRequestSize = 1 * 1024 * 1024 // 1MB, bodies carry metadata only

// @title Trainer LMS Content API
// @version 1.0
// @description API for module content, media files and quiz question media

// @host localhost:8083
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for service-to-service authentication

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token in the form "Bearer {token}"
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Trainer LMS Content Service")

	// Initialize content store. The service starts even when the document store is
	// disabled or down; content routes answer 503 until a connection succeeds.
	var connector services.Connector
	if cfg.MongoDB.Enabled {
		connector = storage.NewMongoConnector(cfg.MongoDB, logger.Logger)
	}
	store := services.NewContentStore(connector, cfg.MongoDB, logger.Logger)
	lifecycle := services.NewFailSoft(store, logger.Logger)

	if store.State() != services.StateUnconfigured {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.ConnectTimeout)
		if lifecycle.Connect(ctx) {
			logger.Logger.Info("Connected to document store", zap.String("database", cfg.MongoDB.DBName))
		} else {
			logger.Logger.Warn("Document store unavailable at startup, will retry on demand")
		}
		cancel()
	}

	// Initialize middleware
	authMw := auth.Middleware(auth.NewTokenValidator(cfg.JWT.Secret))
	apiKeyMw := auth.APIKeyMiddleware(cfg.APIKey)

	// Initialize handlers
	contentHandler := handlers.NewContentHandler(store, logger.Logger, authMw, apiKeyMw)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestID)
	r.Use(middlewares.Logger(logger.Logger))
	r.Use(middlewares.Recovery(logger.Logger))
	r.Use(middlewares.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimit(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	contentHandler.RegisterRoutes(r)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	lifecycle.Close(ctx)

	logger.Logger.Info("Server exited")
}
