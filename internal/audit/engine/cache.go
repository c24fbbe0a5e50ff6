package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"docushield-workers/internal/audit/bundle"
	"docushield-workers/internal/common/logger"
)

const cacheKeyPrefix = "docushield:audit:response:"

// CachedInvoker stores successful engine responses in Redis, keyed by a
// digest of the payload. Cache failures never fail the audit.
type CachedInvoker struct {
	next   Invoker
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedInvoker(next Invoker, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedInvoker {
	return &CachedInvoker{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "engine-cache"}),
	}
}

func (c *CachedInvoker) Invoke(ctx context.Context, payload *bundle.Payload) (*Response, error) {
	key, err := CacheKey(payload)
	if err != nil {
		return c.next.Invoke(ctx, payload)
	}

	if cached, ok := c.lookup(ctx, key); ok {
		c.logger.Debug("engine response served from cache", map[string]interface{}{"key": key})
		return cached, nil
	}

	resp, err := c.next.Invoke(ctx, payload)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(resp)
	if err == nil {
		err = c.rdb.Set(ctx, key, data, c.ttl).Err()
	}
	if err != nil {
		c.logger.Warn("failed to cache engine response", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	return resp, nil
}

func (c *CachedInvoker) lookup(ctx context.Context, key string) (*Response, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("engine cache lookup failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// CacheKey is the SHA-256 of the JSON-encoded payload.
func CacheKey(payload *bundle.Payload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}
