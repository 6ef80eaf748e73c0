// Package auth verifies bearer tokens issued by the identity provider and maps them to tenants.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ErrInvalidToken is returned for any token that fails verification
var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified caller. TenantID scopes every stored document.
type Identity struct {
	TenantID  string
	ExpiresAt time.Time
}

type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

const maxSubjectLength = 128

func identityFromClaims(claims *jwt.RegisteredClaims) (*Identity, error) {
	if claims.Subject == "" || len(claims.Subject) > maxSubjectLength {
		return nil, errors.Wrap(ErrInvalidToken, "subject")
	}
	identity := &Identity{TenantID: claims.Subject}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}
