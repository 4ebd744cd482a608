package highlight

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/vedit/internal/log"
)

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 30 * time.Minute
)

// spanCache holds tokenised lines keyed by lexer, theme and line text.
// Lines scroll in and out of view far more often than they change, so the
// same text is usually tokenised once.
type spanCache struct {
	cache *gocache.Cache
}

func newSpanCache(expiration, cleanup time.Duration) *spanCache {
	return &spanCache{cache: gocache.New(expiration, cleanup)}
}

func (c *spanCache) get(key string) ([]Span, bool) {
	value, found := c.cache.Get(key)
	if !found {
		return nil, false
	}

	spans, ok := value.([]Span)
	if !ok {
		log.Error(log.CatHighlight, "wrong type assertion when getting value", "key", key)
		return nil, false
	}
	return spans, true
}

func (c *spanCache) set(key string, spans []Span) {
	c.cache.Set(key, spans, gocache.DefaultExpiration)
}

// getOrLoad returns the cached spans for key, computing and storing them
// with fn on a miss. Errors are not cached.
func (c *spanCache) getOrLoad(key string, fn func() ([]Span, error)) ([]Span, error) {
	if spans, ok := c.get(key); ok {
		return spans, nil
	}

	spans, err := fn()
	if err != nil {
		return nil, err
	}

	c.set(key, spans)
	return spans, nil
}
