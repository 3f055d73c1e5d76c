package drive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/targetjit/inventory-backend/internal/domain"
	"github.com/targetjit/inventory-backend/internal/service"
)

// IngestService pulls a CSV out of Drive and pushes it through the import
// pipeline. Drive ingests are committed immediately; there is no operator
// sitting in front of a preview.
type IngestService struct {
	driveService  *Service
	importService *service.ImportService
}

func NewIngestService(driveService *Service, importService *service.ImportService) *IngestService {
	return &IngestService{
		driveService:  driveService,
		importService: importService,
	}
}

// IngestFile downloads the given Drive file, stages it and commits it.
func (s *IngestService) IngestFile(ctx context.Context, fileID string) (*domain.ImportPreview, error) {
	meta, err := s.driveService.GetFile(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up drive file %s: %w", fileID, err)
	}

	var buf bytes.Buffer
	if err := s.driveService.DownloadFile(fileID, &buf); err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", meta.Name, err)
	}

	preview, err := s.importService.ImportData(ctx, meta.Name, buf.Bytes())
	if err != nil {
		return nil, err
	}

	committed, err := s.importService.Commit(ctx, preview.ImportID)
	if err != nil {
		return nil, fmt.Errorf("failed to commit drive ingest %s: %w", meta.Name, err)
	}

	return committed, nil
}
