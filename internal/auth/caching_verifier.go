package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"recruitcrm/internal/caching"
	"recruitcrm/internal/common"
)

const maxVerifiedTokenTTL = 5 * time.Minute

// CachingVerifier remembers verified tokens by digest so repeat requests skip signature checks
type CachingVerifier struct {
	next  Verifier
	cache caching.CacheService
	now   func() time.Time
}

func NewCachingVerifier(next Verifier, cache caching.CacheService) *CachingVerifier {
	return &CachingVerifier{next: next, cache: cache, now: time.Now}
}

func tokenDigest(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

func (v *CachingVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	digest := tokenDigest(rawToken)
	logger := common.LoggerFromContext(ctx)

	tenantID, found, err := v.cache.GetVerifiedToken(ctx, digest)
	if err != nil {
		logger.WithError(err).Warn("verified token cache read failed")
	} else if found && tenantID != "" {
		return &Identity{TenantID: tenantID}, nil
	}

	identity, err := v.next.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	ttl := maxVerifiedTokenTTL
	if !identity.ExpiresAt.IsZero() {
		if remaining := identity.ExpiresAt.Sub(v.now()); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl > 0 {
		if err := v.cache.SetVerifiedToken(ctx, digest, identity.TenantID, ttl); err != nil {
			logger.WithError(err).Warn("verified token cache write failed")
		}
	}
	return identity, nil
}
