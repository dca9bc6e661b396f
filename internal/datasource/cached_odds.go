package datasource

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/court-edge/internal/models"
)

const oddsCacheKey = "odds:h2h"

// CachedOddsSource wraps an OddsSource with a short-lived cache so that
// retried or closely scheduled runs do not burn the odds API request quota.
type CachedOddsSource struct {
	source OddsSource
	cache  *gocache.Cache
}

// NewCachedOddsSource wraps source with a TTL cache
func NewCachedOddsSource(source OddsSource, ttl time.Duration) *CachedOddsSource {
	return &CachedOddsSource{
		source: source,
		cache:  gocache.New(ttl, 2*ttl),
	}
}

// Name returns the underlying data source name
func (c *CachedOddsSource) Name() string {
	return c.source.Name()
}

// FetchOdds returns cached quotes when fresh, otherwise fetches and caches.
// Upstream failures are never cached.
func (c *CachedOddsSource) FetchOdds(ctx context.Context) ([]models.OddsQuote, error) {
	if cached, found := c.cache.Get(oddsCacheKey); found {
		return cached.([]models.OddsQuote), nil
	}

	quotes, err := c.source.FetchOdds(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Set(oddsCacheKey, quotes, gocache.DefaultExpiration)
	return quotes, nil
}
