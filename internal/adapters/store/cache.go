package store

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/metrics"
)

// DefaultCacheSize bounds the cache when no size is given.
const DefaultCacheSize = 128

// CachingExecutor memoizes results by query text for a fixed time-to-live.
// Failed executions are never cached. Cached results are shared between
// callers and must be treated as read-only.
type CachingExecutor struct {
	next  Executor
	cache *expirable.LRU[string, *table.Result]
	log   logger.Logger
}

// NewCachingExecutor wraps next with an LRU of at most size entries.
func NewCachingExecutor(next Executor, ttl time.Duration, size int, opts ...Option) *CachingExecutor {
	if size <= 0 {
		size = DefaultCacheSize
	}
	o := buildOptions(opts)
	return &CachingExecutor{
		next:  next,
		cache: expirable.NewLRU[string, *table.Result](size, nil, ttl),
		log:   o.log,
	}
}

// Execute serves query from the cache or delegates to the wrapped executor.
func (c *CachingExecutor) Execute(ctx context.Context, query string) (*table.Result, error) {
	if res, ok := c.cache.Get(query); ok {
		metrics.RecordCacheHit()
		c.log.Debug(ctx, "query cache hit", logger.Int("rows", res.Len()))
		return res, nil
	}
	metrics.RecordCacheMiss()

	res, err := c.next.Execute(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.Add(query, res)
	metrics.UpdateCacheEntries(c.cache.Len())
	return res, nil
}

// Invalidate drops every cached result and returns how many were dropped.
func (c *CachingExecutor) Invalidate(ctx context.Context) int {
	n := c.cache.Len()
	c.cache.Purge()
	metrics.RecordCacheInvalidation()
	metrics.UpdateCacheEntries(0)
	c.log.Info(ctx, "query cache invalidated", logger.Int("entries", n))
	return n
}

// Len returns the number of live entries.
func (c *CachingExecutor) Len() int { return c.cache.Len() }
