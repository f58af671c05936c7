package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cloudshare/cloudshare-cli/internal/client/models"
)

// ProfileFromToken extracts the user profile the identity provider embedded
// in the token's claims. The signature is not verified here; the profile is
// only used to seed the backend's idempotent upsert, which authenticates the
// request with the same token anyway.
func ProfileFromToken(token string) (models.Profile, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.Profile{}, fmt.Errorf("parsing token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return models.Profile{}, fmt.Errorf("token has no subject claim")
	}

	p := models.Profile{SubjectID: sub}
	if v, ok := claims["email"].(string); ok {
		p.Email = v
	}
	if v, ok := claims["given_name"].(string); ok {
		p.FirstName = v
	}
	if v, ok := claims["family_name"].(string); ok {
		p.LastName = v
	}
	if v, ok := claims["picture"].(string); ok {
		p.PhotoURL = v
	}
	return p, nil
}
