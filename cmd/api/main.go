package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/targetjit/inventory-backend/internal/cache"
	"github.com/targetjit/inventory-backend/internal/config"
	"github.com/targetjit/inventory-backend/internal/drive"
	"github.com/targetjit/inventory-backend/internal/repository/postgres"
	"github.com/targetjit/inventory-backend/internal/service"
)

// Standalone Drive sync server: lists, downloads and ingests inventory CSVs
// straight from a Google Drive folder.
func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize Google Drive service
	driveService, err := drive.NewService(os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"))
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	// Create router
	r := mux.NewRouter()

	// Initialize Database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Services
	repo := postgres.NewInventoryRepository(db)
	importService := service.NewImportService(repo, cache.NewNoopReportCache(),
		service.WithMaxImportSize(cfg.App.MaxImportSizeBytes),
		service.WithImportWorkers(cfg.App.ImportWorkers),
	)
	ingestService := drive.NewIngestService(driveService, importService)

	// Register routes
	driveHandler := drive.NewHandler(driveService, ingestService)
	driveHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
