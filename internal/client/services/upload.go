package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudshare/cloudshare-cli/internal/client/api"
	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/common"
	"github.com/cloudshare/cloudshare-cli/internal/logging"
)

// UploadState labels the session's position in its submit cycle.
type UploadState string

const (
	UploadIdle       UploadState = "idle"
	UploadSelecting  UploadState = "selecting"
	UploadReady      UploadState = "ready"
	UploadSubmitting UploadState = "submitting"
	UploadSucceeded  UploadState = "succeeded"
	UploadFailed     UploadState = "failed"
)

// UploadSession holds the pending batch and drives the submit transition.
// One submission at a time: Submit enforces that as a precondition of its
// own, not as a UI affordance. On success the batch is cleared; on failure
// it is retained so the user can retry.
type UploadSession struct {
	client  api.Client
	credits *CreditStore
	files   *FileCache
	logger  logging.Logger

	mu    sync.Mutex
	state UploadState
	batch []models.PendingFile
}

func NewUploadSession(client api.Client, credits *CreditStore, files *FileCache, logger logging.Logger) *UploadSession {
	return &UploadSession{
		client:  client,
		credits: credits,
		files:   files,
		logger:  logger.With("component", "upload"),
		state:   UploadIdle,
	}
}

func (s *UploadSession) State() UploadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Batch returns a copy of the pending files in insertion order.
func (s *UploadSession) Batch() []models.PendingFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PendingFile, len(s.batch))
	copy(out, s.batch)
	return out
}

// AddFiles appends to the pending batch. The addition is all-or-nothing: if
// it would push the batch over the cap, nothing is admitted and the whole
// call is rejected with BATCH_TOO_LARGE.
func (s *UploadSession) AddFiles(newFiles ...models.PendingFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == UploadSubmitting {
		return common.ErrSubmitInFlight
	}
	if len(s.batch)+len(newFiles) > common.MaxBatchFiles {
		return &Rejection{Reason: ReasonBatchTooLarge}
	}

	s.batch = append(s.batch, newFiles...)
	s.recalcLocked()
	return nil
}

// RemoveFile drops one entry by position. Allowed any time except while a
// submission is in flight.
func (s *UploadSession) RemoveFile(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == UploadSubmitting {
		return common.ErrSubmitInFlight
	}
	if index < 0 || index >= len(s.batch) {
		return fmt.Errorf("no pending file at position %d", index+1)
	}

	s.batch = append(s.batch[:index], s.batch[index+1:]...)
	s.recalcLocked()
	return nil
}

// Submit runs the batch through admission and, if approved, uploads it as a
// single request. On success the credit store is reconciled (directly from
// the response when it carries a count, via refetch otherwise) and the file
// cache is refreshed.
func (s *UploadSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state == UploadSubmitting {
		s.mu.Unlock()
		return common.ErrSubmitInFlight
	}

	if d := CanSubmit(s.batch, s.credits.Current()); !d.Allowed {
		s.mu.Unlock()
		return &Rejection{Reason: d.Reason}
	}

	batch := make([]models.PendingFile, len(s.batch))
	copy(batch, s.batch)
	s.state = UploadSubmitting
	s.mu.Unlock()

	res, err := s.client.Upload(ctx, batch)

	s.mu.Lock()
	if err != nil {
		s.state = UploadFailed
		s.mu.Unlock()
		return fmt.Errorf("upload failed: %w", err)
	}
	s.batch = nil
	s.state = UploadSucceeded
	s.mu.Unlock()

	if res.RemainingCredits != nil {
		s.credits.Set(*res.RemainingCredits)
	} else if err := s.credits.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "credit refresh after upload failed", "error", err)
	}

	if err := s.files.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "file list refresh after upload failed", "error", err)
	}

	s.logger.Info(ctx, "batch uploaded", "files", len(batch))
	return nil
}

// recalcLocked keeps the pre-submit states in sync with the batch contents.
// Callers hold s.mu.
func (s *UploadSession) recalcLocked() {
	switch {
	case len(s.batch) == 0:
		s.state = UploadIdle
	case CanSubmit(s.batch, s.credits.Current()).Allowed:
		s.state = UploadReady
	default:
		s.state = UploadSelecting
	}
}
