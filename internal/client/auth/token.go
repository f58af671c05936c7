// Package auth plumbs bearer tokens from the external identity provider to
// the API client. The provider itself (sign-in, token issuance) is out of
// scope; this package only decides when a held token may still be used.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cloudshare/cloudshare-cli/internal/common"
)

// TokenSource yields a bearer token valid at call time.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticSource returns the same token on every call. Expiry is enforced by
// the CachingSource wrapping it, not here.
type StaticSource struct {
	token string
}

func NewStaticSource(token string) *StaticSource {
	return &StaticSource{token: token}
}

func (s *StaticSource) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", common.ErrNoToken
	}
	return s.token, nil
}

// CachingSource wraps another source and reuses a fetched token only within
// the lifetime its own exp claim grants it, minus a small leeway. Tokens
// without an exp claim are never cached; each call goes to the underlying
// source. A token that is already expired when fetched yields
// common.ErrTokenExpired so callers can prompt for a fresh sign-in.
type CachingSource struct {
	src    TokenSource
	leeway time.Duration
	now    func() time.Time

	mu     sync.Mutex
	cached string
	exp    time.Time
}

const defaultLeeway = 10 * time.Second

func NewCachingSource(src TokenSource) *CachingSource {
	return &CachingSource{src: src, leeway: defaultLeeway, now: time.Now}
}

func (c *CachingSource) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != "" && c.now().Add(c.leeway).Before(c.exp) {
		return c.cached, nil
	}
	c.cached = ""

	tok, err := c.src.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("token source: %w", err)
	}

	exp, err := tokenExpiry(tok)
	if err != nil {
		return "", fmt.Errorf("inspecting token: %w", err)
	}

	if exp.IsZero() {
		// No exp claim: usable now, but never cached.
		return tok, nil
	}
	if !c.now().Add(c.leeway).Before(exp) {
		return "", common.ErrTokenExpired
	}

	c.cached = tok
	c.exp = exp
	return tok, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// backend is the party that verifies, the client only schedules renewal.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parsing token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
