package router

import (
	"regexp"
	"sync"
)

// regexCacheMaxSize is the maximum number of entries in the regex cache.
const regexCacheMaxSize = 1000

// regexCacheEntry holds a compiled regex and its access order for LRU eviction.
type regexCacheEntry struct {
	regex       *regexp.Regexp
	accessOrder int64
}

// regexCache is a bounded LRU cache for compiled route expressions. Route
// sets rebuilt on reload usually repeat most of their patterns.
var (
	regexCache         = make(map[string]*regexCacheEntry)
	regexCacheMu       sync.Mutex
	regexAccessCounter int64
)

// compileCached compiles pattern, reusing a previously compiled expression
// when one is cached. Compile failures are not cached.
func compileCached(pattern string) (*regexp.Regexp, error) {
	metrics := getRouterMetrics()

	regexCacheMu.Lock()
	if entry, ok := regexCache[pattern]; ok {
		regexAccessCounter++
		entry.accessOrder = regexAccessCounter
		regexCacheMu.Unlock()

		metrics.cacheHits.Inc()
		return entry.regex, nil
	}
	regexCacheMu.Unlock()

	metrics.cacheMisses.Inc()

	// Compile outside the lock
	regex, err := regexp.Compile(pattern)
	if err != nil {
		metrics.compileErrors.Inc()
		return nil, err
	}

	regexCacheMu.Lock()
	defer regexCacheMu.Unlock()

	// Another goroutine may have added it meanwhile
	if existing, ok := regexCache[pattern]; ok {
		regexAccessCounter++
		existing.accessOrder = regexAccessCounter
		return existing.regex, nil
	}

	if len(regexCache) >= regexCacheMaxSize {
		evictLRURegexEntry()
		metrics.cacheEvictions.Inc()
	}

	regexAccessCounter++
	regexCache[pattern] = &regexCacheEntry{
		regex:       regex,
		accessOrder: regexAccessCounter,
	}
	metrics.cacheSize.Set(float64(len(regexCache)))

	return regex, nil
}

// evictLRURegexEntry removes the least recently used entry from the cache.
// Must be called with regexCacheMu held.
func evictLRURegexEntry() {
	var lruKey string
	var lruOrder int64 = -1

	for key, entry := range regexCache {
		if lruOrder == -1 || entry.accessOrder < lruOrder {
			lruOrder = entry.accessOrder
			lruKey = key
		}
	}

	if lruKey != "" {
		delete(regexCache, lruKey)
	}
}
