package dispatch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aretw0/skylark/pkg/ports"
)

// CachingCaller serves repeated identical calls from a ports.ResultCache.
// Failures are never cached, and cache errors only cost a cache miss.
type CachingCaller struct {
	next   ports.Caller
	cache  ports.ResultCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachingCaller wraps next with cache.
func NewCachingCaller(next ports.Caller, cache ports.ResultCache, ttl time.Duration, logger *slog.Logger) *CachingCaller {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingCaller{next: next, cache: cache, ttl: ttl, logger: logger}
}

// CacheKey derives a stable key from the operation and its normalized arguments.
func CacheKey(operation string, args map[string]any) (string, error) {
	// json.Marshal sorts map keys, so equal bags produce equal keys.
	b, err := json.Marshal(args)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return operation + ":" + hex.EncodeToString(sum[:]), nil
}

// Call implements ports.Caller.
func (c *CachingCaller) Call(ctx context.Context, operation string, args map[string]any) (any, error) {
	key, err := CacheKey(operation, args)
	if err != nil {
		return c.next.Call(ctx, operation, args)
	}

	if v, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("Tool cache read failed", "operation", operation, "error", err)
	} else if ok {
		c.logger.Debug("Tool cache hit", "operation", operation, "key", key)
		return v, nil
	}

	v, err := c.next.Call(ctx, operation, args)
	if err != nil || v == nil {
		return v, err
	}
	if err := c.cache.Set(ctx, key, v, c.ttl); err != nil {
		c.logger.Warn("Tool cache write failed", "operation", operation, "error", err)
	}
	return v, nil
}
