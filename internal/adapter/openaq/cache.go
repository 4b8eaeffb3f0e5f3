package openaq

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

// CachedSource wraps an AirSource with a TTL cache. Monitoring stations
// publish hourly, so sub-TTL refetches return identical data.
type CachedSource struct {
	inner   domain.AirSource
	cache   *gocache.Cache
	metrics *observability.Metrics
}

// NewCachedSource creates a TTL cache decorator around an air quality source.
func NewCachedSource(inner domain.AirSource, ttl time.Duration, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   gocache.New(ttl, 2*ttl),
		metrics: metrics,
	}
}

func (c *CachedSource) Latest(ctx context.Context, lat, lon float64) (domain.AirObservation, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if cached, ok := c.cache.Get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("air", "hit").Inc()
		return cached.(domain.AirObservation), nil
	}
	c.metrics.CacheLookups.WithLabelValues("air", "miss").Inc()

	obs, err := c.inner.Latest(ctx, lat, lon)
	if err != nil {
		return obs, err
	}
	c.cache.SetDefault(key, obs)
	return obs, nil
}
