package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/cloudshare/cloudshare-cli/internal/client/api"
	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/common"
	"github.com/cloudshare/cloudshare-cli/internal/logging"
)

// recentLimit bounds the derived "recent files" projection.
const recentLimit = 5

// FileCache holds the user's files as last fetched. Toggle and delete patch
// the cached copy optimistically on success only; a failed mutation leaves
// the cache untouched and the next Refresh reconciles with the backend.
type FileCache struct {
	client api.Client
	logger logging.Logger

	mu    sync.RWMutex
	files []models.RemoteFile
}

func NewFileCache(client api.Client, logger logging.Logger) *FileCache {
	return &FileCache{
		client: client,
		logger: logger.With("component", "files"),
	}
}

// Refresh replaces the entire cached set with a full fetch. A 403 or 404
// means the profile has no files visible yet and yields an empty set, not an
// error.
func (c *FileCache) Refresh(ctx context.Context) error {
	files, err := c.client.ListFiles(ctx)
	if err != nil {
		if errors.Is(err, common.ErrForbidden) || errors.Is(err, common.ErrNotFound) {
			c.logger.Info(ctx, "no files visible yet", "reason", err)
			files = nil
		} else {
			return fmt.Errorf("fetching files: %w", err)
		}
	}

	c.mu.Lock()
	c.files = files
	c.mu.Unlock()
	return nil
}

// Files returns a copy of the cached set in fetch order.
func (c *FileCache) Files() []models.RemoteFile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.RemoteFile, len(c.files))
	copy(out, c.files)
	return out
}

// Recent is a derived projection: newest first, at most five entries. It is
// recomputed from the full cache on every call and never stored.
func (c *FileCache) Recent() []models.RemoteFile {
	files := c.Files()
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
	if len(files) > recentLimit {
		files = files[:recentLimit]
	}
	return files
}

// ToggleVisibility flips one file's public flag on the backend and, on
// success, patches only that entry locally. No refetch on failure; the local
// copy stays as it was.
func (c *FileCache) ToggleVisibility(ctx context.Context, fileID string) error {
	if err := c.client.TogglePublic(ctx, fileID); err != nil {
		return fmt.Errorf("toggling visibility: %w", err)
	}

	c.mu.Lock()
	for i := range c.files {
		if c.files[i].ID == fileID {
			c.files[i].IsPublic = !c.files[i].IsPublic
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Remove deletes the file on the backend and, on success, drops it from the
// cache.
func (c *FileCache) Remove(ctx context.Context, fileID string) error {
	if err := c.client.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}

	c.mu.Lock()
	for i := range c.files {
		if c.files[i].ID == fileID {
			c.files = append(c.files[:i], c.files[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Download streams the file's bytes into w. The cache is not touched.
func (c *FileCache) Download(ctx context.Context, fileID string, w io.Writer) (int64, error) {
	n, err := c.client.Download(ctx, fileID, w)
	if err != nil {
		return n, fmt.Errorf("downloading file: %w", err)
	}
	return n, nil
}

// Get finds a cached entry by id.
func (c *FileCache) Get(fileID string) (models.RemoteFile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.files {
		if f.ID == fileID {
			return f, true
		}
	}
	return models.RemoteFile{}, false
}
