// internal/api/handlers/inventory_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/targetjit/inventory-backend/internal/domain"
	"github.com/targetjit/inventory-backend/internal/ingest"
	"github.com/targetjit/inventory-backend/internal/service"
)

type InventoryHandler struct {
	importService *service.ImportService
	uploadDir     string
	maxFileSize   int64
}

func NewInventoryHandler(importService *service.ImportService, uploadDir string, maxFileSize int64) *InventoryHandler {
	return &InventoryHandler{
		importService: importService,
		uploadDir:     uploadDir,
		maxFileSize:   maxFileSize,
	}
}

// ImportInventory handles CSV uploads and returns one staged preview per
// file. Nothing is persisted until the preview is committed.
func (h *InventoryHandler) ImportInventory(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	uploadedFiles := make([]*domain.UploadedFile, 0, len(files))
	for _, file := range files {
		if err := ingest.ValidateFilename(file.Filename); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.maxFileSize > 0 && file.Size > h.maxFileSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("%s exceeds the %d byte upload limit", file.Filename, h.maxFileSize),
			})
			return
		}

		filePath := filepath.Join(h.uploadDir, file.Filename)
		if err := c.SaveUploadedFile(file, filePath); err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
			return
		}

		uploadedFiles = append(uploadedFiles, &domain.UploadedFile{
			Filename: file.Filename,
			Path:     filePath,
			Size:     file.Size,
		})
	}

	previews, err := h.importService.ImportFiles(c.Request.Context(), uploadedFiles)
	if err != nil {
		status := http.StatusInternalServerError
		if isImportDataError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imports": previews})
}

// CommitImport promotes a staged preview to the active record set.
func (h *InventoryHandler) CommitImport(c *gin.Context) {
	importID := c.Param("id")
	if importID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "import id is required"})
		return
	}

	preview, err := h.importService.Commit(c.Request.Context(), importID)
	if err != nil {
		if errors.Is(err, service.ErrImportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit import"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"import_id": preview.ImportID,
		"records":   len(preview.Records),
		"alerts":    len(preview.Alerts),
	})
}

// GetRecords returns the active inventory record set.
func (h *InventoryHandler) GetRecords(c *gin.Context) {
	records, err := h.importService.GetRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetRecord returns one inventory record by SKU ID.
func (h *InventoryHandler) GetRecord(c *gin.Context) {
	record, err := h.importService.GetRecord(c.Request.Context(), c.Param("sku"))
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory record"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetAlerts returns the alerts derived from the active record set.
func (h *InventoryHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.importService.GetAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// GetAnalysis returns the full analysis report.
func (h *InventoryHandler) GetAnalysis(c *gin.Context) {
	report, err := h.importService.GetReport(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoRecords) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no inventory data loaded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build analysis report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportAnalysis serves the analysis report as a flat-text download.
func (h *InventoryHandler) ExportAnalysis(c *gin.Context) {
	text, err := h.importService.ExportReport(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoRecords) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no inventory data loaded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export analysis report"})
		return
	}

	filename := fmt.Sprintf("inventory_analysis_%s.txt", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// GetOptimization returns EOQ parameters for the active record set.
func (h *InventoryHandler) GetOptimization(c *gin.Context) {
	items, err := h.importService.Optimize(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoRecords) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no inventory data loaded"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to optimize inventory"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// isImportDataError reports whether the failure came from the uploaded data
// rather than from the server.
func isImportDataError(err error) bool {
	var emptyErr *ingest.EmptyInputError
	var missingErr *ingest.MissingColumnsError
	var noRowsErr *ingest.NoValidRowsError
	return errors.As(err, &emptyErr) ||
		errors.As(err, &missingErr) ||
		errors.As(err, &noRowsErr) ||
		errors.Is(err, service.ErrImportTooLarge)
}
