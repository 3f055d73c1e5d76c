// internal/service/import_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/targetjit/inventory-backend/internal/alerts"
	"github.com/targetjit/inventory-backend/internal/analytics"
	"github.com/targetjit/inventory-backend/internal/cache"
	"github.com/targetjit/inventory-backend/internal/domain"
	"github.com/targetjit/inventory-backend/internal/ingest"
	"github.com/targetjit/inventory-backend/internal/optimize"
	"github.com/targetjit/inventory-backend/internal/repository"
	"github.com/targetjit/inventory-backend/internal/storage"
	"github.com/targetjit/inventory-backend/pkg/logger"
)

var (
	ErrImportNotFound = errors.New("import not found or already committed")
	ErrNoRecords      = errors.New("no inventory records loaded")
	ErrRecordNotFound = errors.New("inventory record not found")
	ErrImportTooLarge = errors.New("import file exceeds the size limit")
)

var log = logger.Component("import")

// pendingImport holds a parsed preview plus the raw bytes it came from,
// kept until the caller commits or the preview expires.
type pendingImport struct {
	preview *domain.ImportPreview
	raw     []byte
}

// ImportService runs uploads through the ingest pipeline, holds previews
// until they are committed, and serves the derived projections afterwards.
type ImportService struct {
	pipeline *ingest.Pipeline
	repo     repository.InventoryRepository
	cache    cache.ReportCache
	archive  storage.ObjectStorage // nil when archiving is disabled

	maxImportSize int64
	importWorkers int

	mu      sync.RWMutex
	pending map[string]*pendingImport
	current []domain.InventoryRecord
	alerts  []domain.Alert
}

type ImportServiceOption func(*ImportService)

func WithArchive(store storage.ObjectStorage) ImportServiceOption {
	return func(s *ImportService) { s.archive = store }
}

func WithMaxImportSize(limit int64) ImportServiceOption {
	return func(s *ImportService) { s.maxImportSize = limit }
}

func WithImportWorkers(n int) ImportServiceOption {
	return func(s *ImportService) {
		if n > 0 {
			s.importWorkers = n
		}
	}
}

func NewImportService(repo repository.InventoryRepository, reportCache cache.ReportCache, opts ...ImportServiceOption) *ImportService {
	s := &ImportService{
		pipeline:      ingest.NewPipeline(nil),
		repo:          repo,
		cache:         reportCache,
		importWorkers: 4,
		pending:       make(map[string]*pendingImport),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportData runs one raw CSV payload through the pipeline and stages the
// result as a pending preview. Nothing is persisted until Commit.
func (s *ImportService) ImportData(ctx context.Context, filename string, raw []byte) (*domain.ImportPreview, error) {
	if err := ingest.ValidateFilename(filename); err != nil {
		return nil, err
	}
	if s.maxImportSize > 0 && int64(len(raw)) > s.maxImportSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrImportTooLarge, len(raw))
	}

	result, err := s.pipeline.Run(string(raw))
	if err != nil {
		return nil, fmt.Errorf("import %s failed: %w", filename, err)
	}

	preview := &domain.ImportPreview{
		ImportID:  uuid.NewString(),
		Filename:  filename,
		Records:   result.Records,
		RowErrors: result.RowErrors,
		Alerts:    alerts.Generate(result.Records),
		Report:    analytics.BuildReport(result.Records),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.pending[preview.ImportID] = &pendingImport{preview: preview, raw: raw}
	s.mu.Unlock()

	log.Info().
		Str("import_id", preview.ImportID).
		Str("filename", filename).
		Int("records", len(preview.Records)).
		Int("row_errors", len(preview.RowErrors)).
		Msg("import staged")

	return preview, nil
}

// ImportFiles stages multiple uploaded files concurrently. Each file gets
// its own preview; one bad file fails the whole batch.
func (s *ImportService) ImportFiles(ctx context.Context, files []*domain.UploadedFile) ([]*domain.ImportPreview, error) {
	previews := make([]*domain.ImportPreview, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.importWorkers)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(file.Path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file.Filename, err)
			}
			preview, err := s.ImportData(ctx, file.Filename, raw)
			if err != nil {
				return err
			}
			previews[i] = preview
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return previews, nil
}

// Commit promotes a pending preview to the active record set: the database
// record set is replaced atomically, the report cache is refreshed, and the
// source file is archived when object storage is configured.
func (s *ImportService) Commit(ctx context.Context, importID string) (*domain.ImportPreview, error) {
	s.mu.Lock()
	staged, ok := s.pending[importID]
	if ok {
		delete(s.pending, importID)
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrImportNotFound
	}

	preview := staged.preview
	if err := s.repo.ReplaceAll(ctx, importID, preview.Records); err != nil {
		// put the preview back so the caller can retry the commit
		s.mu.Lock()
		s.pending[importID] = staged
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to commit import %s: %w", importID, err)
	}

	s.mu.Lock()
	s.current = preview.Records
	s.alerts = preview.Alerts
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate report cache")
	}
	if err := s.cache.SetReport(ctx, preview.Report); err != nil {
		log.Warn().Err(err).Msg("failed to cache analysis report")
	}

	if s.archive != nil {
		key := fmt.Sprintf("imports/%s/%s", importID, preview.Filename)
		if err := s.archive.UploadObject(ctx, key, staged.raw); err != nil {
			// archiving is best effort, the commit already happened
			log.Warn().Err(err).Str("key", key).Msg("failed to archive import file")
		}
	}

	below, err := s.repo.CountBelowReorder(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to count records below reorder point")
	}

	log.Info().
		Str("import_id", importID).
		Int("records", len(preview.Records)).
		Int("below_reorder", below).
		Msg("import committed")

	return preview, nil
}

// GetRecords returns the active record set, falling back to the database
// when nothing has been committed in this process yet.
func (s *ImportService) GetRecords(ctx context.Context) ([]domain.InventoryRecord, error) {
	s.mu.RLock()
	records := s.current
	s.mu.RUnlock()

	if records != nil {
		return records, nil
	}

	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.current == nil {
		s.current = records
		s.alerts = alerts.Generate(records)
	}
	s.mu.Unlock()

	return records, nil
}

// GetRecord returns a single record by SKU ID. The in-memory record set is
// preferred; the database is consulted only when nothing is loaded yet.
func (s *ImportService) GetRecord(ctx context.Context, skuID string) (*domain.InventoryRecord, error) {
	s.mu.RLock()
	loaded := s.current != nil
	for i := range s.current {
		if s.current[i].SKUID == skuID {
			rec := s.current[i]
			s.mu.RUnlock()
			return &rec, nil
		}
	}
	s.mu.RUnlock()

	if loaded {
		return nil, ErrRecordNotFound
	}

	rec, err := s.repo.GetBySKU(ctx, skuID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

func (s *ImportService) GetAlerts(ctx context.Context) ([]domain.Alert, error) {
	if _, err := s.GetRecords(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts, nil
}

// GetReport returns the analysis report for the active record set,
// served from cache when possible.
func (s *ImportService) GetReport(ctx context.Context) (*domain.AnalysisReport, error) {
	if report, found, err := s.cache.GetReport(ctx); err == nil && found {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("report cache read failed, recomputing")
	}

	records, err := s.GetRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	report := analytics.BuildReport(records)
	if err := s.cache.SetReport(ctx, report); err != nil {
		log.Warn().Err(err).Msg("failed to cache analysis report")
	}

	return report, nil
}

// ExportReport renders the current analysis report as flat text.
func (s *ImportService) ExportReport(ctx context.Context) (string, error) {
	report, err := s.GetReport(ctx)
	if err != nil {
		return "", err
	}
	return analytics.FormatReport(report), nil
}

// Optimize computes order-quantity parameters for the active record set.
func (s *ImportService) Optimize(ctx context.Context) ([]domain.OptimizedItem, error) {
	records, err := s.GetRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return optimize.Optimize(records, optimize.DefaultParams()), nil
}
