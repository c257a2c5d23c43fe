package deal

import (
	"context"

	"mcacrm/internal/repositories/cache"
)

// RedisSummaryCache keeps the summary in redis under the service TTL.
type RedisSummaryCache struct {
	svc *cache.CacheService
}

func NewRedisSummaryCache(svc *cache.CacheService) *RedisSummaryCache {
	return &RedisSummaryCache{svc: svc}
}

func (c *RedisSummaryCache) Get(ctx context.Context) (*PortfolioSummary, bool, error) {
	var summary PortfolioSummary
	ok, err := c.svc.Get(ctx, cache.PortfolioSummaryKey(), &summary)
	if err != nil || !ok {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, summary *PortfolioSummary) error {
	return c.svc.Set(ctx, cache.PortfolioSummaryKey(), summary)
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context) error {
	return c.svc.Delete(ctx, cache.PortfolioSummaryKey())
}

// NoopSummaryCache never stores anything.
type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(context.Context) (*PortfolioSummary, bool, error) { return nil, false, nil }
func (NoopSummaryCache) Set(context.Context, *PortfolioSummary) error         { return nil }
func (NoopSummaryCache) Invalidate(context.Context) error                     { return nil }
