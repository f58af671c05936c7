package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudshare/cloudshare-cli/internal/client/models"
)

// stagePendingFile validates a local path and describes it for the batch.
// Content is not read here; the upload streams it straight from disk.
func stagePendingFile(path string) (models.PendingFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.PendingFile{}, fmt.Errorf("staging %s: %w", path, err)
	}
	if info.IsDir() {
		return models.PendingFile{}, fmt.Errorf("staging %s: is a directory", path)
	}
	return models.PendingFile{
		Name: filepath.Base(path),
		Size: info.Size(),
		Path: path,
	}, nil
}

// formatSize renders a byte count the way the dashboard does: KB below 1 MB,
// MB with one decimal above.
func formatSize(size int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case size < kb:
		return fmt.Sprintf("%d B", size)
	case size < mb:
		return fmt.Sprintf("%d KB", size/kb)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/float64(mb))
	}
}
