package auth

import (
	"context"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultJWKSURL publishes the keys that sign Firebase ID tokens
const DefaultJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

const clockSkew = 30 * time.Second

// FirebaseVerifier checks RS256 ID tokens for one project
type FirebaseVerifier struct {
	projectID string
	keyFunc   jwt.Keyfunc
	parser    *jwt.Parser
}

func NewFirebaseVerifier(projectID string, keyFunc jwt.Keyfunc) *FirebaseVerifier {
	return &FirebaseVerifier{
		projectID: projectID,
		keyFunc:   keyFunc,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer("https://securetoken.google.com/"+projectID),
			jwt.WithAudience(projectID),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

func (v *FirebaseVerifier) Verify(_ context.Context, rawToken string) (*Identity, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := v.parser.ParseWithClaims(rawToken, claims, v.keyFunc)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return identityFromClaims(claims)
}

// RemoteKeySet fetches the provider's JWKS and keeps it refreshed in the background
// until ctx is cancelled.
func RemoteKeySet(ctx context.Context, jwksURL string, refresh time.Duration) (jwt.Keyfunc, error) {
	if jwksURL == "" {
		jwksURL = DefaultJWKSURL
	}
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   refresh,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logrus.WithError(err).WithField("jwks_url", jwksURL).Warn("refreshing identity provider keys failed")
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "fetch jwks")
	}
	return jwks.Keyfunc, nil
}
