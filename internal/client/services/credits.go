package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cloudshare/cloudshare-cli/internal/client/api"
	"github.com/cloudshare/cloudshare-cli/internal/common"
	"github.com/cloudshare/cloudshare-cli/internal/logging"
)

// CreditStore owns the signed-in user's remaining upload credits. It is the
// single writer for that value; every consumer reads through it. The balance
// never goes negative: writes are clamped at zero.
type CreditStore struct {
	client api.Client
	logger logging.Logger

	mu        sync.RWMutex
	known     bool
	remaining int
}

func NewCreditStore(client api.Client, logger logging.Logger) *CreditStore {
	return &CreditStore{
		client: client,
		logger: logger.With("component", "credits"),
	}
}

// Current returns the balance as of the last reconciliation.
func (s *CreditStore) Current() Credits {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Credits{Known: s.known, Remaining: s.remaining}
}

// Set records a balance reported by the backend (upload response, payment
// verification). Negative values are clamped to zero.
func (s *CreditStore) Set(remaining int) {
	if remaining < 0 {
		remaining = 0
	}
	s.mu.Lock()
	s.known = true
	s.remaining = remaining
	s.mu.Unlock()
}

// Reset forgets the balance. Called on sign-out.
func (s *CreditStore) Reset() {
	s.mu.Lock()
	s.known = false
	s.remaining = 0
	s.mu.Unlock()
}

// Refresh fetches the balance from the credit ledger. A 403 or 404 means the
// profile is not provisioned yet; the store falls back to the default grant
// instead of reporting a failure. Other errors leave the last known value in
// place and are returned to the caller.
func (s *CreditStore) Refresh(ctx context.Context) error {
	credits, err := s.client.Credits(ctx)
	if err != nil {
		if errors.Is(err, common.ErrForbidden) || errors.Is(err, common.ErrNotFound) {
			s.logger.Info(ctx, "profile not provisioned yet, using default credits",
				"default", common.DefaultCredits)
			s.Set(common.DefaultCredits)
			return nil
		}
		return fmt.Errorf("fetching credits: %w", err)
	}

	s.Set(credits)
	return nil
}
