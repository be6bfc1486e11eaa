package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ajharbinger/receipt-processor/internal/api"
	"github.com/ajharbinger/receipt-processor/internal/database"
	"github.com/ajharbinger/receipt-processor/internal/logger"
	"github.com/ajharbinger/receipt-processor/internal/metrics"
	"github.com/ajharbinger/receipt-processor/internal/middleware"
	"github.com/ajharbinger/receipt-processor/internal/repository"
	"github.com/ajharbinger/receipt-processor/internal/services"
	"github.com/ajharbinger/receipt-processor/pkg/config"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()

	appLogger, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer appLogger.Sync()

	// Initialize score store
	scores, err := openScoreStore(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open score store", err, "driver", cfg.StorageDriver)
	}
	defer scores.Close()

	m := metrics.New()
	svcs := services.NewServices(&repository.Repositories{Scores: scores}, appLogger, m)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		appLogger.Fatal("Invalid trusted proxies", err, "trusted_proxies", cfg.TrustedProxies)
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(appLogger))
	r.Use(middleware.MetricsMiddleware(m))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg.MaxRequestSize))

	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware(cfg.RateLimitPerMinute))
	}

	api.SetupRoutes(r, svcs, cfg, m, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"storage", cfg.StorageDriver,
			"auth_enabled", cfg.AuthEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Shutting down server", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	appLogger.Info("Server exited")
}

// openScoreStore connects the configured backend, running migrations for Postgres
func openScoreStore(cfg *config.Config, appLogger logger.Logger) (repository.ScoreRepository, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := database.NewWithPool(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		stats := db.GetStats()
		appLogger.Info("Connected to Postgres",
			"max_open_conns", stats.MaxOpenConnections,
			"max_idle_conns", stats.MaxIdleConns)
		return &closingStore{ScoreRepository: repository.NewScoreRepository(db.DB), db: db}, nil

	case config.StorageMemory:
		store, err := repository.NewBuntDBScoreRepository(cfg.BuntDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open buntdb at %s: %w", cfg.BuntDBPath, err)
		}
		appLogger.Info("Using buntdb score store", "path", cfg.BuntDBPath)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

// closingStore closes the connection pool along with the repository
type closingStore struct {
	repository.ScoreRepository
	db *database.DB
}

func (s *closingStore) Close() error {
	if err := s.ScoreRepository.Close(); err != nil {
		return err
	}
	return s.db.Close()
}
