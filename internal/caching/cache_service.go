package caching

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "recruitcrm"

type CacheService interface {
	// Verified identity tokens, keyed by token digest
	GetVerifiedToken(ctx context.Context, digest string) (tenantID string, found bool, err error)
	SetVerifiedToken(ctx context.Context, digest, tenantID string, ttl time.Duration) error

	// Serialized list responses, scoped by tenant and resource. GetList reports the
	// resource version it read; SetList stores under that version so a list loaded
	// before a concurrent write is never published as current.
	GetList(ctx context.Context, tenantID, resource, variant string) (data []byte, version string, found bool, err error)
	SetList(ctx context.Context, tenantID, resource, version, variant string, data []byte, ttl time.Duration) error
	InvalidateResource(ctx context.Context, tenantID, resource string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisCacheService accepts host:port or a redis:// URL
func NewRedisCacheService(addr, password string, db int) CacheService {
	opts := &redis.Options{Addr: addr, Password: password, DB: db}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if parsed, err := redis.ParseURL(addr); err == nil {
			opts = parsed
			if password != "" {
				opts.Password = password
			}
		} else {
			logrus.WithError(err).WithField("addr", addr).Warn("invalid redis url, using it as an address")
		}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).WithField("addr", opts.Addr).Warn("redis ping failed on initialization")
	}
	return &redisCacheService{client: client}
}

func tokenKey(digest string) string {
	return fmt.Sprintf("%s:token:%s", keyPrefix, digest)
}

// versionKey holds a counter bumped on every write; list keys embed it so a bump orphans old entries.
func versionKey(tenantID, resource string) string {
	return fmt.Sprintf("%s:listver:%s:%s", keyPrefix, tenantID, resource)
}

func listKey(tenantID, resource, version, variant string) string {
	return fmt.Sprintf("%s:list:%s:%s:%s:%s", keyPrefix, tenantID, resource, version, variant)
}

func (r *redisCacheService) GetVerifiedToken(ctx context.Context, digest string) (string, bool, error) {
	tenantID, err := r.client.Get(ctx, tokenKey(digest)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return tenantID, true, nil
}

func (r *redisCacheService) SetVerifiedToken(ctx context.Context, digest, tenantID string, ttl time.Duration) error {
	return r.client.Set(ctx, tokenKey(digest), tenantID, ttl).Err()
}

func (r *redisCacheService) listVersion(ctx context.Context, tenantID, resource string) (string, error) {
	v, err := r.client.Get(ctx, versionKey(tenantID, resource)).Int64()
	if err == redis.Nil {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}

func (r *redisCacheService) GetList(ctx context.Context, tenantID, resource, variant string) ([]byte, string, bool, error) {
	version, err := r.listVersion(ctx, tenantID, resource)
	if err != nil {
		return nil, "", false, err
	}
	data, err := r.client.Get(ctx, listKey(tenantID, resource, version, variant)).Bytes()
	if err == redis.Nil {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, "", false, err
	}
	return data, version, true, nil
}

// SetList is a no-op when version is empty, i.e. GetList failed or was never called
func (r *redisCacheService) SetList(ctx context.Context, tenantID, resource, version, variant string, data []byte, ttl time.Duration) error {
	if version == "" {
		return nil
	}
	return r.client.Set(ctx, listKey(tenantID, resource, version, variant), data, ttl).Err()
}

func (r *redisCacheService) InvalidateResource(ctx context.Context, tenantID, resource string) error {
	return r.client.Incr(ctx, versionKey(tenantID, resource)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type noopCacheService struct{}

// NewNoopCacheService returns a cache that never hits. Used when Redis is not configured.
func NewNoopCacheService() CacheService {
	return noopCacheService{}
}

func (noopCacheService) GetVerifiedToken(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (noopCacheService) SetVerifiedToken(context.Context, string, string, time.Duration) error {
	return nil
}

func (noopCacheService) GetList(context.Context, string, string, string) ([]byte, string, bool, error) {
	return nil, "", false, nil
}

func (noopCacheService) SetList(context.Context, string, string, string, string, []byte, time.Duration) error {
	return nil
}

func (noopCacheService) InvalidateResource(context.Context, string, string) error { return nil }

func (noopCacheService) Ping(context.Context) error { return nil }

// IsNoop reports whether c is the disabled cache
func IsNoop(c CacheService) bool {
	_, ok := c.(noopCacheService)
	return ok
}
