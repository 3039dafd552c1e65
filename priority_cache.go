package pmap

import lru "github.com/hashicorp/golang-lru"

// PriorityCache memoizes derived key priorities.  Deriving a priority means
// rendering the key to bytes and hashing them, so for maps with hot keys a
// shared cache skips the hash.  One cache can be shared by any number of
// maps, as long as they use the same priority derivation.
type PriorityCache interface {
	// Add records the priority derived for a rendered key.
	Add(key, value interface{})
	// Get retrieves the previously-derived priority, if cached.
	Get(key interface{}) (value interface{}, ok bool)
}

// NewPriorityCache creates a new LRU-based priority cache of the given size.
func NewPriorityCache(size int) PriorityCache {
	cache, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return cache
}

// cachedDefaultPriority wraps the default derivation with a shared cache,
// keyed by the key's rendered bytes.
func cachedDefaultPriority[K any](cache PriorityCache) func(K) uint64 {
	return func(key K) uint64 {
		rendered := string(keyBytes(key))
		if p, ok := cache.Get(rendered); ok {
			return p.(uint64)
		}
		p := hashPriority([]byte(rendered))
		cache.Add(rendered, p)
		return p
	}
}
