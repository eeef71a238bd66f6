// Package catalog supplies the scholarship record list the matcher scores
// against. The catalog is treated as valid for a fixed duration before a
// refresh through the fetcher is attempted; the default fetcher returns a
// static seed list, so a future scraper can drop in without touching the
// matcher.
package catalog

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"eduraksha/internal/eligibility"
)

// DefaultTTL is how long a fetched catalog stays fresh.
const DefaultTTL = 24 * time.Hour

const cacheKey = "catalog"

// Fetcher produces the scholarship record list.
type Fetcher interface {
	Fetch(ctx context.Context) ([]eligibility.Scholarship, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]eligibility.Scholarship, error)

func (f FetcherFunc) Fetch(ctx context.Context) ([]eligibility.Scholarship, error) {
	return f(ctx)
}

// Catalog caches the scholarship list with a TTL and deduplicates concurrent
// refreshes through singleflight. Safe for concurrent use.
type Catalog struct {
	fetcher Fetcher
	cache   *gocache.Cache
	group   singleflight.Group
	ttl     time.Duration
}

// Option configures the Catalog.
type Option func(*Catalog)

// WithTTL overrides the cache TTL. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(c *Catalog) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// New builds a catalog over the given fetcher. Pass NewStaticFetcher() for
// the built-in seed list.
func New(fetcher Fetcher, opts ...Option) *Catalog {
	c := &Catalog{
		fetcher: fetcher,
		ttl:     DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = gocache.New(c.ttl, c.ttl)
	return c
}

// Scholarships returns the current catalog, refreshing through the fetcher
// when the cached copy is stale or absent.
func (c *Catalog) Scholarships(ctx context.Context) ([]eligibility.Scholarship, error) {
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]eligibility.Scholarship), nil
	}
	return c.Refresh(ctx)
}

// Refresh forces a fetch and re-primes the cache. Concurrent callers share a
// single in-flight fetch.
func (c *Catalog) Refresh(ctx context.Context) ([]eligibility.Scholarship, error) {
	result, err, _ := c.group.Do(cacheKey, func() (any, error) {
		records, err := c.fetcher.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog: %w", err)
		}
		c.cache.Set(cacheKey, records, c.ttl)
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]eligibility.Scholarship), nil
}
