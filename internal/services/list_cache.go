package services

import (
	"context"
	"encoding/json"
	"time"

	"recruitcrm/internal/caching"
	"recruitcrm/internal/common"
)

const listCacheTTL = 2 * time.Minute

const (
	resourceClients      = "clients"
	resourceJobs         = "jobs"
	resourceCandidates   = "candidates"
	resourceSheets       = "candidate_sheets"
	resourceApplications = "applications"
)

// cachedList serves a tenant's list from the cache, loading and storing it on a miss.
// Cache failures degrade to a direct load.
func cachedList[T any](ctx context.Context, cache caching.CacheService, tenantID, resource, variant string, load func() ([]T, error)) ([]T, error) {
	logger := common.LoggerFromContext(ctx).WithField("resource", resource)

	data, version, found, err := cache.GetList(ctx, tenantID, resource, variant)
	if err != nil {
		logger.WithError(err).Warn("list cache read failed")
	} else if found {
		var items []T
		if err := json.Unmarshal(data, &items); err == nil && items != nil {
			recordListCache(resource, true)
			return items, nil
		}
	}
	recordListCache(resource, false)

	items, err := load()
	if err != nil {
		return nil, err
	}
	if version == "" {
		return items, nil
	}
	if data, err := json.Marshal(items); err == nil {
		if err := cache.SetList(ctx, tenantID, resource, version, variant, data, listCacheTTL); err != nil {
			logger.WithError(err).Warn("list cache write failed")
		}
	}
	return items, nil
}

func invalidate(ctx context.Context, cache caching.CacheService, tenantID, resource string) {
	if err := cache.InvalidateResource(ctx, tenantID, resource); err != nil {
		common.LoggerFromContext(ctx).WithError(err).WithField("resource", resource).Warn("list cache invalidation failed")
	}
}
