package providers

import (
	"github.com/coocood/freecache"
	"kgsite/internal/structures"
	"time"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// ResponseCache keeps rendered analytics responses. Labels are computed
// from the current day, so no entry outlives the local midnight after it
// was stored.
type ResponseCache struct {
	cache *freecache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled")
		return &disabledCache{}
	}

	ttl := max(conf.Cache.TTL, time.Second)
	logger.Infof(TypeApp, "Response cache: %dMB, TTL=%s", conf.Cache.Size, ttl)

	return &ResponseCache{
		cache: freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *ResponseCache) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *ResponseCache) Set(key string, value []byte) {
	_ = c.cache.Set([]byte(key), value, c.expireSeconds(c.now()))
}

// expireSeconds is the configured TTL cut at the next local midnight,
// never below one second.
func (c *ResponseCache) expireSeconds(now time.Time) int {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	ttl := min(c.ttl, midnight.Sub(now))
	return max(int(ttl/time.Second), 1)
}

func (c *ResponseCache) EntryCount() int64 {
	return c.cache.EntryCount()
}

type disabledCache struct{}

func (*disabledCache) Get(string) ([]byte, bool) { return nil, false }
func (*disabledCache) Set(string, []byte)        {}
