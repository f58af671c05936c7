package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudshare/cloudshare-cli/internal/client/models"
)

// ListFiles refreshes the cache and prints every file the user owns.
func (a *App) ListFiles(ctx context.Context) error {
	if err := a.files.Refresh(ctx); err != nil {
		return err
	}

	files := a.files.Files()
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files yet. Stage some with 'add <path>' and 'submit'.")
		return nil
	}
	for _, f := range files {
		a.printFile(f)
	}
	return nil
}

// RecentFiles prints the dashboard summary: the balance and the newest five
// files, from the cache without a refetch.
func (a *App) RecentFiles(ctx context.Context) error {
	if c := a.credits.Current(); c.Known {
		fmt.Fprintf(a.out, "Credits remaining: %d\n", c.Remaining)
	}

	recent := a.files.Recent()
	if len(recent) == 0 {
		fmt.Fprintln(a.out, "No files yet.")
		return nil
	}
	for _, f := range recent {
		a.printFile(f)
	}
	return nil
}

func (a *App) printFile(f models.RemoteFile) {
	visibility := "private"
	if f.IsPublic {
		visibility = "public"
	}
	fmt.Fprintf(a.out, "%s  %-30s %10s  %s  %s\n",
		f.ID, f.Name, formatSize(f.Size), f.UploadedAt.Format("2006-01-02 15:04"), visibility)
}

// Toggle flips a file between private and public and reports the new state.
func (a *App) Toggle(ctx context.Context, fileID string) error {
	if err := a.files.ToggleVisibility(ctx, fileID); err != nil {
		return err
	}

	f, ok := a.files.Get(fileID)
	if !ok {
		fmt.Fprintln(a.out, "Visibility changed.")
		return nil
	}
	if f.IsPublic {
		fmt.Fprintf(a.out, "%s is now public: %s\n", f.Name, models.ShareLink(a.config.ShareOrigin, f.ID))
	} else {
		fmt.Fprintf(a.out, "%s is now private.\n", f.Name)
	}
	return nil
}

// Delete removes a file permanently after an interactive confirmation.
func (a *App) Delete(ctx context.Context, fileID string) error {
	name := fileID
	if f, ok := a.files.Get(fileID); ok {
		name = f.Name
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s permanently?", name), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Kept.")
		return nil
	}

	if err := a.files.Remove(ctx, fileID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s.\n", name)
	return nil
}

// Download saves a file's content to dest. With no dest the file's own name
// in the working directory is used.
func (a *App) Download(ctx context.Context, fileID, dest string) error {
	if dest == "" {
		if f, ok := a.files.Get(fileID); ok {
			dest = f.Name
		} else {
			dest = fileID
		}
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer out.Close()

	n, err := a.files.Download(ctx, fileID, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %s (%s).\n", dest, formatSize(n))
	return nil
}

// Share prints the public link for a file. A private file gets a hint
// instead of a link that would 404 for everyone else.
func (a *App) Share(ctx context.Context, fileID string) error {
	f, ok := a.files.Get(fileID)
	if !ok {
		return fmt.Errorf("no file %s in the listing, run 'files' first", fileID)
	}
	if !f.IsPublic {
		fmt.Fprintf(a.out, "%s is private. Run 'toggle %s' to make it shareable.\n", f.Name, f.ID)
		return nil
	}
	fmt.Fprintln(a.out, models.ShareLink(a.config.ShareOrigin, f.ID))
	return nil
}

// extractFileID accepts either a bare id or a full share link and returns
// the id part.
func extractFileID(arg string) string {
	if i := strings.LastIndex(arg, "/file/"); i >= 0 {
		return strings.Trim(arg[i+len("/file/"):], "/")
	}
	return arg
}

// PublicInfo looks up a file through the unauthenticated public endpoint, the
// same view a share-link visitor gets. Accepts a file id or a share link.
func (a *App) PublicInfo(ctx context.Context, fileID string) error {
	f, err := a.client.PublicFile(ctx, extractFileID(fileID))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s), uploaded %s\n",
		f.Name, formatSize(f.Size), f.UploadedAt.Format("2006-01-02 15:04"))
	return nil
}
