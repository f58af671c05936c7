package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cloudshare/cloudshare-cli/internal/client/models"
)

// statFile is a test seam around os.Stat-based staging.
var statFile = stagePendingFile

// AddFiles stages local files into the pending batch. Paths are checked
// before anything is admitted so a typo never half-fills the batch.
func (a *App) AddFiles(ctx context.Context, paths []string) error {
	staged := make([]models.PendingFile, 0, len(paths))
	for _, path := range paths {
		pf, err := statFile(path)
		if err != nil {
			return err
		}
		staged = append(staged, pf)
	}

	if err := a.upload.AddFiles(staged...); err != nil {
		return err
	}

	batch := a.upload.Batch()
	fmt.Fprintf(a.out, "Batch now holds %d file(s).\n", len(batch))
	return nil
}

// RemoveFile drops one staged file by its 1-based position as shown by
// ShowBatch.
func (a *App) RemoveFile(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("not a batch position: %q", arg)
	}
	if err := a.upload.RemoveFile(n - 1); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed. Batch now holds %d file(s).\n", len(a.upload.Batch()))
	return nil
}

// ShowBatch prints the staged files in order along with the session state.
func (a *App) ShowBatch(ctx context.Context) error {
	batch := a.upload.Batch()
	if len(batch) == 0 {
		fmt.Fprintln(a.out, "Batch is empty. Use 'add <path>' to stage files.")
		return nil
	}
	for i, f := range batch {
		fmt.Fprintf(a.out, "%d. %s (%s)\n", i+1, f.Name, formatSize(f.Size))
	}
	fmt.Fprintf(a.out, "State: %s\n", a.upload.State())
	return nil
}

// Submit uploads the staged batch. On success the batch is cleared and the
// printed balance reflects the backend's post-upload count; on failure the
// batch stays staged for a retry.
func (a *App) Submit(ctx context.Context) error {
	count := len(a.upload.Batch())
	if count > 0 {
		fmt.Fprintf(a.out, "Uploading %d file(s)...\n", count)
	}
	if err := a.upload.Submit(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %d file(s).\n", count)
	if c := a.credits.Current(); c.Known {
		fmt.Fprintf(a.out, "Credits remaining: %d\n", c.Remaining)
	}
	return nil
}
