package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"trendboard/internal/adapters/auth"
	"trendboard/internal/domain"
	"trendboard/internal/usecases"
	"trendboard/pkg/log"
)

// MemoryCache is an in-memory cache of live trends with TTL support.
// Entries are scoped to the session token that fetched them.
type MemoryCache struct {
	trends sync.Map
	ttl    time.Duration
	now    func() time.Time
	stop   chan struct{}
	once   sync.Once
}

// cacheEntry holds one platform's trends with expiration metadata.
type cacheEntry struct {
	trends    []domain.Trend
	expiresAt time.Time
}

// cacheKey scopes an entry to one session and platform.
type cacheKey struct {
	token    string
	platform domain.Platform
}

// NewMemoryCache creates a new in-memory cache with the specified TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	cache := &MemoryCache{
		ttl:  ttl,
		now:  time.Now,
		stop: make(chan struct{}),
	}
	go cache.cleanup()
	return cache
}

// Get retrieves a platform's trends cached for token.
// Returns a copy and true if found and not expired, otherwise nil and false.
func (c *MemoryCache) Get(token string, platform domain.Platform) ([]domain.Trend, bool) {
	key := cacheKey{token: token, platform: platform}
	value, ok := c.trends.Load(key)
	if !ok {
		return nil, false
	}

	entry := value.(*cacheEntry)
	if c.now().After(entry.expiresAt) {
		c.trends.Delete(key)
		return nil, false
	}

	return slices.Clone(entry.trends), true
}

// Set stores a platform's trends for token with the configured TTL.
func (c *MemoryCache) Set(token string, platform domain.Platform, trends []domain.Trend) {
	c.trends.Store(cacheKey{token: token, platform: platform}, &cacheEntry{
		trends:    slices.Clone(trends),
		expiresAt: c.now().Add(c.ttl),
	})
}

// Close stops the cleanup goroutine.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// cleanup periodically removes expired entries from the cache.
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *MemoryCache) evictExpired() {
	now := c.now()
	c.trends.Range(func(key, value any) bool {
		if now.After(value.(*cacheEntry).expiresAt) {
			c.trends.Delete(key)
		}
		return true
	})
}

// CachedFetcher serves live trends from the cache and refills it from next.
// The session token is resolved through tokens before the cache is read, so
// missing or expired sessions fail exactly as they would uncached. Entries
// are only reused by the token whose fetch the backend accepted.
type CachedFetcher struct {
	next   usecases.TrendFetcher
	tokens auth.TokenSource
	cache  *MemoryCache
}

// NewCachedFetcher wraps next with cache.
func NewCachedFetcher(next usecases.TrendFetcher, tokens auth.TokenSource, cache *MemoryCache) *CachedFetcher {
	return &CachedFetcher{next: next, tokens: tokens, cache: cache}
}

// FetchTrends implements usecases.TrendFetcher.
func (f *CachedFetcher) FetchTrends(ctx context.Context, platform domain.Platform) ([]domain.Trend, error) {
	token, err := f.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	if trends, ok := f.cache.Get(token, platform); ok {
		log.GlobalDebugCtx(ctx, "trend cache hit", "platform", platform)
		return trends, nil
	}

	trends, err := f.next.FetchTrends(ctx, platform)
	if err != nil {
		return nil, err
	}
	if len(trends) > 0 {
		f.cache.Set(token, platform, trends)
	}
	return trends, nil
}
