package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DownloadOptions controls how files are pulled from Google Drive.
type DownloadOptions struct {
	FolderID    string
	DownloadDir string
}

// fileSource is the slice of Service the downloader needs.
type fileSource interface {
	ListFiles(folderID string) ([]*File, error)
	DownloadFile(fileID string, w io.Writer) error
}

// Downloader wraps Service to download files from a specific folder.
type Downloader struct {
	service fileSource
}

// NewDownloader creates a new Downloader.
func NewDownloader(s *Service) *Downloader {
	return &Downloader{service: s}
}

// DownloadFolderCSV downloads all non-trashed CSV files from the given
// Drive folder into DownloadDir and returns their local paths. Files with
// other extensions are skipped; the import pipeline only takes CSV.
func (d *Downloader) DownloadFolderCSV(ctx context.Context, opts DownloadOptions) ([]string, error) {
	if opts.DownloadDir == "" {
		return nil, fmt.Errorf("download dir is required")
	}
	if err := os.MkdirAll(opts.DownloadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	files, err := d.service.ListFiles(opts.FolderID)
	if err != nil {
		return nil, err
	}

	var localPaths []string
	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if strings.ToLower(filepath.Ext(f.Name)) != ".csv" {
			continue
		}

		localPath := filepath.Join(opts.DownloadDir, f.Name)
		out, err := os.Create(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create local file %s: %w", localPath, err)
		}
		if err := d.service.DownloadFile(f.ID, out); err != nil {
			out.Close()
			return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
		}
		out.Close()
		localPaths = append(localPaths, localPath)
	}

	return localPaths, nil
}
