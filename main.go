package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"qrstudio/internal/config"
	"qrstudio/internal/controllers"
	"qrstudio/internal/database"
	"qrstudio/internal/logger"
	"qrstudio/internal/middleware"
	"qrstudio/internal/render"
	"qrstudio/internal/repository"
	"qrstudio/internal/service"
	"qrstudio/internal/shortener"
	"qrstudio/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	kv, closeStore, err := openStore(cfg, zl)
	if err != nil {
		zl.Fatal("Failed to open storage", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer closeStore()

	// Initialize repositories
	recordRepo := repository.NewRecordRepository(kv)
	redirectRepo := repository.NewRedirectRepository(kv)
	shortURLRepo := repository.NewShortURLRepository(kv)
	preferenceRepo := repository.NewPreferenceRepository(kv)

	// Initialize services
	editorService, err := service.NewEditorService(context.Background(), service.EditorDeps{
		Records:         recordRepo,
		Redirects:       redirectRepo,
		ShortURLs:       shortURLRepo,
		Encoder:         render.NewEncoder(),
		Shortener:       shortener.NewTinyURLClient(cfg.ShortenerURL),
		Logger:          zl.Named("editor"),
		RedirectBaseURL: cfg.RedirectBaseURL,
		Cascade:         service.CascadePolicy(cfg.DeleteCascade),
	})
	if err != nil {
		zl.Fatal("Failed to initialize editor", zap.Error(err))
	}
	preferenceService := service.NewPreferenceService(preferenceRepo)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, zl)
	redirectRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRedirectRPS), cfg.RateLimitRedirectBurst, zl)
	defer generalRateLimiter.Stop()
	defer redirectRateLimiter.Stop()

	router := setupRouter(routerDeps{
		logger:               zl.Named("http"),
		editorController:     controllers.NewEditorController(editorService, cfg.RedirectBaseURL),
		qrcodeController:     controllers.NewQRCodeController(editorService),
		redirectController:   controllers.NewRedirectController(editorService),
		preferenceController: controllers.NewPreferenceController(preferenceService),
		generalRateLimiter:   generalRateLimiter,
		redirectRateLimiter:  redirectRateLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Server starting",
			zap.String("addr", cfg.BaseURL),
			zap.String("storage", cfg.StorageBackend),
			zap.String("redirect_base", cfg.RedirectBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("Server shutdown failed", zap.Error(err))
	}
}

// openStore builds the key-value store for the configured backend.
func openStore(cfg *config.Config, zl *zap.Logger) (storage.KV, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		zl.Warn("Using in-memory storage; saved QR codes are lost on exit")
		return storage.NewMemoryKV(), func() {}, nil

	case config.BackendRedis:
		kv, err := storage.NewRedisKV(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		zl.Info("Connected to Redis")
		return kv, func() {}, nil

	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		return openSQLStore(database.DriverSQLite, cfg.SQLitePath, zl)

	case config.BackendPostgres:
		return openSQLStore(database.DriverPostgres, cfg.DatabaseURL, zl)
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func openSQLStore(driver, dsn string, zl *zap.Logger) (storage.KV, func(), error) {
	db, err := database.NewConnection(driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := database.RunMigrations(db, driver); err != nil {
		db.Close()
		return nil, nil, err
	}
	zl.Info("Connected to database", zap.String("driver", driver))

	return storage.NewSQLKV(db, driver), func() { closeDB(db, zl) }, nil
}

func closeDB(db *sql.DB, zl *zap.Logger) {
	if err := db.Close(); err != nil {
		zl.Error("Failed to close database", zap.Error(err))
	}
}
