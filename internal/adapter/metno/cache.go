package metno

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

// CachedSource wraps a WeatherSource with a TTL cache. Forecasts change on
// the provider's model cycle, so re-fetching within the TTL only burns quota.
type CachedSource struct {
	inner   domain.WeatherSource
	cache   *gocache.Cache
	metrics *observability.Metrics
}

// NewCachedSource creates a TTL cache decorator around a weather source.
func NewCachedSource(inner domain.WeatherSource, ttl time.Duration, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   gocache.New(ttl, 2*ttl),
		metrics: metrics,
	}
}

func (c *CachedSource) Current(ctx context.Context, lat, lon float64) (domain.WeatherObservation, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if cached, ok := c.cache.Get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("weather", "hit").Inc()
		return cached.(domain.WeatherObservation), nil
	}
	c.metrics.CacheLookups.WithLabelValues("weather", "miss").Inc()

	obs, err := c.inner.Current(ctx, lat, lon)
	if err != nil {
		return obs, err
	}
	c.cache.SetDefault(key, obs)
	return obs, nil
}
