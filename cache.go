package main

import (
	"encoding/gob"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Lookups older than this are stale; catalog data doesn't change fast.
const CACHE_TTL = 7 * 24 * time.Hour

type cachedLookup struct {
	Result LookupResult
	Stored time.Time
}

func init() {
	// Needed so go-cache can gob the entries to disk.
	gob.Register(cachedLookup{})
}

// LookupCache remembers lookup results per (source, query) for a week.
// Expiry is lazy: stale entries are simply treated as misses on read, never
// eagerly deleted.  Caching is an optimization only - every failure here is
// swallowed so a lookup can never break because the cache did.
type LookupCache struct {
	store *gocache.Cache
	now   func() time.Time
}

func NewLookupCache() *LookupCache {
	return &LookupCache{
		store: gocache.New(gocache.NoExpiration, 0),
		now:   time.Now,
	}
}

func cacheKey(source, query string) string {
	return source + ":" + strings.ToLower(strings.TrimSpace(query))
}

func (c *LookupCache) Get(source, query string) (*LookupResult, bool) {
	value, found := c.store.Get(cacheKey(source, query))

	if !found {
		return nil, false
	}

	entry, ok := value.(cachedLookup)

	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.Stored) >= CACHE_TTL {
		sugar.Debugf("Cache entry for %s:%s expired", source, query)
		return nil, false
	}

	result := entry.Result

	return &result, true
}

func (c *LookupCache) Set(source, query string, result *LookupResult) {
	if result == nil {
		return
	}

	c.store.Set(cacheKey(source, query), cachedLookup{
		Result: *result,
		Stored: c.now(),
	}, gocache.NoExpiration)
}

// Load restores the on-disk cache, if there is one.
func (c *LookupCache) Load(path string) {
	if path == "" {
		return
	}

	if err := c.store.LoadFile(path); err != nil {
		sugar.Debugf("No cache loaded from %s: %v", path, err)
	}
}

// Save writes the cache to disk.  Failure costs us nothing but warm starts.
func (c *LookupCache) Save(path string) {
	if path == "" {
		return
	}

	if err := c.store.SaveFile(path); err != nil {
		sugar.Debugf("Cache save to %s failed: %v", path, err)
	}
}
