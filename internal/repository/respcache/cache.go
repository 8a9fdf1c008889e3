// Package respcache stores computed answers keyed by the raw question text.
// The cache is strictly best-effort: a slow or failing backend must never
// block or fail a request, so every operation runs under a short timeout and
// errors degrade to a miss.
package respcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/db"
	"github.com/urbanatlas/bdnbq/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "resp_cache:"

// DefaultOpTimeout bounds a single cache operation.
const DefaultOpTimeout = 500 * time.Millisecond

// store is the consumer interface for the response cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache is the response cache over the key-value store.
type Cache struct {
	store      store
	ttl        time.Duration
	opTimeout  time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a response cache. cacheTotal is a counter vec with label
// "result" ("hit"/"miss"/"error"), passed explicitly.
func New(s store, ttl, opTimeout time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = domain.DefaultCacheTTL
	}
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}
	return &Cache{
		store:      s,
		ttl:        ttl,
		opTimeout:  opTimeout,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached response for the raw question, reporting whether one
// was found. Backend failures and corrupt entries count as misses.
func (c *Cache) Get(ctx context.Context, question string) (domain.CachedResponse, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	data, err := c.store.Get(ctx, cacheKey(question))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			c.incCache("miss")
		} else {
			c.incCache("error")
			c.logger.Warn("response cache get failed", zap.Error(err))
		}
		return domain.CachedResponse{}, false
	}

	var resp domain.CachedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.incCache("error")
		c.logger.Warn("response cache entry corrupt", zap.Error(err))
		return domain.CachedResponse{}, false
	}

	c.incCache("hit")
	return resp, true
}

// Set stores the response under the raw question with the configured TTL.
// Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, question string, resp domain.CachedResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("response cache encode failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	if err := c.store.SetWithTTL(ctx, cacheKey(question), data, c.ttl); err != nil {
		c.logger.Warn("response cache set failed", zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey derives the cache key from the raw question text. No
// normalization: two questions differing by a single space cache separately.
func cacheKey(question string) string {
	return cacheKeyPrefix + question
}
