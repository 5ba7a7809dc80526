package message

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const DefaultCacheTTL = 24 * time.Hour

// CachedComposer memoizes another Composer for a bounded time. The cache is
// owned by the value, not shared process state. Expired entries are swept on
// each miss, so no janitor goroutine runs.
type CachedComposer struct {
	next  Composer
	cache *gocache.Cache
}

func NewCachedComposer(next Composer, ttl time.Duration) *CachedComposer {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedComposer{
		next:  next,
		cache: gocache.New(ttl, gocache.NoExpiration),
	}
}

func (c *CachedComposer) Compose(names []string) Content {
	key := strings.Join(names, "\x1f")
	if v, ok := c.cache.Get(key); ok {
		return v.(Content)
	}
	c.cache.DeleteExpired()
	content := c.next.Compose(names)
	c.cache.SetDefault(key, content)
	return content
}

// Len reports the number of live cache entries.
func (c *CachedComposer) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached entry.
func (c *CachedComposer) Flush() {
	c.cache.Flush()
}
