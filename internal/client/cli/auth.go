package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cloudshare/cloudshare-cli/internal/client/auth"
	"github.com/cloudshare/cloudshare-cli/internal/client/models"
	"github.com/cloudshare/cloudshare-cli/internal/common"
)

// tokenEnvVar names the environment variable checked before prompting. Useful
// for scripted sessions.
const tokenEnvVar = "CLOUDSHARE_TOKEN"

// getToken is an indirection used to facilitate testing.
var getToken = GetToken

// SignIn establishes a session from a bearer token issued by the identity
// provider. The token is taken from CLOUDSHARE_TOKEN when set, otherwise
// prompted for without echo.
//
// The profile embedded in the token is upserted on the backend in the
// background; credits and the file listing are fetched before the prompt
// returns so the dashboard numbers are real, not guesses.
func (a *App) SignIn(ctx context.Context) error {
	token := os.Getenv(tokenEnvVar)
	if token == "" {
		var err error
		token, err = getToken(a.out)
		if err != nil {
			return err
		}
	}
	if token == "" {
		return common.ErrNoToken
	}

	profile, err := auth.ProfileFromToken(token)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	a.session.set(auth.NewCachingSource(auth.NewStaticSource(token)))
	a.profile = profile
	a.signedIn = true

	// The upsert is idempotent and must not hold up the prompt.
	go a.profiles.Ensure(ctx, profile)

	if err := a.credits.Refresh(ctx); err != nil {
		if errors.Is(err, common.ErrUnauthorized) || errors.Is(err, common.ErrTokenExpired) {
			a.clearSession()
			return fmt.Errorf("sign-in rejected: %w", err)
		}
		a.logger.Warn(ctx, "credit fetch at sign-in failed", "error", err)
	}
	if err := a.files.Refresh(ctx); err != nil {
		a.logger.Warn(ctx, "file fetch at sign-in failed", "error", err)
	}

	fmt.Fprintf(a.out, "Signed in as %s\n", profile.Email)
	if c := a.credits.Current(); c.Known {
		fmt.Fprintf(a.out, "Credits remaining: %d\n", c.Remaining)
	}
	return nil
}

// SignOut forgets the token, the balance, and the cached profile. Server
// state is untouched.
func (a *App) SignOut(ctx context.Context) error {
	a.clearSession()
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) clearSession() {
	a.session.set(nil)
	a.credits.Reset()
	a.profile = models.Profile{}
	a.signedIn = false
}

// ShowCredits refreshes and prints the balance.
func (a *App) ShowCredits(ctx context.Context) error {
	if err := a.credits.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Credits remaining: %d\n", a.credits.Current().Remaining)
	return nil
}
