// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/targetjit/inventory-backend/internal/api"
	"github.com/targetjit/inventory-backend/internal/cache"
	"github.com/targetjit/inventory-backend/internal/config"
	"github.com/targetjit/inventory-backend/internal/repository/postgres"
	"github.com/targetjit/inventory-backend/internal/service"
	"github.com/targetjit/inventory-backend/internal/storage"
	"github.com/targetjit/inventory-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize report cache, falling back to noop when redis is down
	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("report cache unavailable, running without cache")
		reportCache = cache.NewNoopReportCache()
	}

	// Initialize services
	repo := postgres.NewInventoryRepository(db)
	opts := []service.ImportServiceOption{
		service.WithMaxImportSize(cfg.App.MaxImportSizeBytes),
		service.WithImportWorkers(cfg.App.ImportWorkers),
	}
	if cfg.Storage.Enabled {
		archive, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("object storage unavailable, imports will not be archived")
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := archive.EnsureBucket(ctx); err != nil {
				logger.Log.Warn().Err(err).Msg("failed to prepare archive bucket")
			} else {
				opts = append(opts, service.WithArchive(archive))
			}
			cancel()
		}
	}
	importService := service.NewImportService(repo, reportCache, opts...)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{ImportService: importService}, cfg)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
