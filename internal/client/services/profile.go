package services

import (
	"context"
	"errors"
	"time"

	"github.com/cloudshare/cloudshare-cli/internal/client/api"
	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/common"
	"github.com/cloudshare/cloudshare-cli/internal/logging"
)

const (
	profileEnsureAttempts = 3
	profileEnsureBackoff  = 1 * time.Second
)

// ProfileSync performs the backend's idempotent profile upsert once per
// authenticated session start. Transient failures are retried with
// exponential backoff; a final failure is logged and swallowed so it never
// blocks the rest of the interface.
type ProfileSync struct {
	client  api.Client
	logger  logging.Logger
	backoff time.Duration
}

func NewProfileSync(client api.Client, logger logging.Logger) *ProfileSync {
	return &ProfileSync{
		client:  client,
		logger:  logger.With("component", "profile"),
		backoff: profileEnsureBackoff,
	}
}

// Ensure upserts the profile. Auth-shaped errors (401/403/404) are not
// retried; the upsert will simply run again next session. Network and server
// errors get up to three attempts, sleeping 1s then 2s between them.
func (p *ProfileSync) Ensure(ctx context.Context, profile models.Profile) {
	backoff := p.backoff

	for attempt := 1; attempt <= profileEnsureAttempts; attempt++ {
		err := p.client.EnsureProfile(ctx, profile)
		if err == nil {
			p.logger.Debug(ctx, "profile ensured", "subject", profile.SubjectID)
			return
		}

		if errors.Is(err, common.ErrUnauthorized) || errors.Is(err, common.ErrForbidden) || errors.Is(err, common.ErrNotFound) {
			p.logger.Warn(ctx, "profile ensure rejected", "error", err)
			return
		}
		if attempt == profileEnsureAttempts {
			p.logger.Warn(ctx, "profile ensure gave up", "attempts", attempt, "error", err)
			return
		}

		p.logger.Debug(ctx, "profile ensure failed, retrying", "attempt", attempt, "error", err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		}
		backoff *= 2
	}
}
