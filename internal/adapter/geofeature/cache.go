package geofeature

import (
	"context"
	"fmt"
	"sync"

	"github.com/couchcryptid/climate-risk-service/internal/domain"
	"github.com/couchcryptid/climate-risk-service/internal/observability"
)

// CachedSource wraps a FeatureSource with an in-memory LRU cache. Site
// features change on a planning timescale, so entries never expire; the LRU
// bound only caps memory.
type CachedSource struct {
	inner   domain.FeatureSource
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a feature source.
func NewCachedSource(inner domain.FeatureSource, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSource) Survey(ctx context.Context, lat, lon float64) (domain.SiteSurvey, error) {
	// Round to ~10 m so jittered client coordinates share an entry.
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if survey, ok := c.cache.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("features", "hit").Inc()
		return survey, nil
	}
	c.metrics.CacheLookups.WithLabelValues("features", "miss").Inc()

	survey, err := c.inner.Survey(ctx, lat, lon)
	if err != nil {
		return survey, err
	}
	c.cache.put(key, survey)
	return survey, nil
}

// lruCache is a simple thread-safe LRU cache for site surveys.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.SiteSurvey
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.SiteSurvey, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.SiteSurvey{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.SiteSurvey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
