package pmap

// The multimap convention: a Map[K, []V] whose buckets accumulate values,
// most recently added first.

// AddMulti prepends value to the bucket under key, starting a fresh bucket
// when the key is absent.
func AddMulti[K, V any](m Map[K, []V], key K, value V) Map[K, []V] {
	return m.Update(key, func(bucket []V, _ bool) []V {
		return append([]V{value}, bucket...)
	})
}

// FindMulti returns the bucket under key. An absent key yields an empty
// bucket, never a failure.
func FindMulti[K, V any](m Map[K, []V], key K) []V {
	bucket, _ := m.Get(key)
	return bucket
}

// RemoveMulti drops the most recently added value under key, unbinding the
// key when its bucket empties. Removing from an absent key returns the map
// unchanged.
func RemoveMulti[K, V any](m Map[K, []V], key K) Map[K, []V] {
	return m.Change(key, func(bucket []V, ok bool) ([]V, bool) {
		if !ok || len(bucket) <= 1 {
			return nil, false
		}
		return bucket[1:], true
	})
}
