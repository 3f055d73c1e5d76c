// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/targetjit/inventory-backend/internal/api/handlers"
	"github.com/targetjit/inventory-backend/internal/api/middleware"
	"github.com/targetjit/inventory-backend/internal/config"
	"github.com/targetjit/inventory-backend/internal/service"
)

type Services struct {
	ImportService *service.ImportService
}

func NewRouter(services *Services, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if allowedOrigins := cfg.Server.AllowedOrigins; len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.ImportService != nil {
		inventoryHandler := handlers.NewInventoryHandler(
			services.ImportService,
			cfg.App.UploadDir,
			cfg.App.MaxImportSizeBytes,
		)
		inventoryGroup := apiGroup.Group("/inventory")
		{
			inventoryGroup.POST("/import", inventoryHandler.ImportInventory)
			inventoryGroup.POST("/import/:id/commit", inventoryHandler.CommitImport)
			inventoryGroup.GET("/records", inventoryHandler.GetRecords)
			inventoryGroup.GET("/records/:sku", inventoryHandler.GetRecord)
			inventoryGroup.GET("/alerts", inventoryHandler.GetAlerts)
			inventoryGroup.GET("/analysis", inventoryHandler.GetAnalysis)
			inventoryGroup.GET("/analysis/export", inventoryHandler.ExportAnalysis)
			inventoryGroup.GET("/optimization", inventoryHandler.GetOptimization)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
