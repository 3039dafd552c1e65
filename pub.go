package pmap

import (
	"cmp"
	"fmt"
	"iter"
)

// Map is an immutable, ordered key-value map. Operations that look mutating
// return a new Map and leave the receiver untouched; unmodified subtrees are
// shared between the two. The zero Map is not usable: construct with New,
// NewFunc, or NewFromConfig.
type Map[K, V any] struct {
	root  *node[K, V]
	order func(a, b K) int
	prio  func(K) uint64
}

// Config carries the per-key-type parameters for a map.
type Config[K any] struct {
	// Order returns a negative number, zero, or a positive number when a
	// sorts before, equal to, or after b. Required.
	Order func(a, b K) int

	// Priority derives a node priority from a key. Must be a pure function
	// of the key. Defaults to DefaultPriority.
	Priority func(K) uint64

	// PriorityCache, if set, memoizes the default priority derivation.
	// Ignored when Priority is set.
	PriorityCache PriorityCache
}

// New returns an empty map over a naturally-ordered key type.
func New[K cmp.Ordered, V any]() Map[K, V] {
	return NewFunc[K, V](DefaultOrder[K])
}

// Singleton returns a map holding the one given binding.
func Singleton[K cmp.Ordered, V any](key K, value V) Map[K, V] {
	return New[K, V]().Set(key, value)
}

// NewFunc returns an empty map ordered by the given comparison function.
func NewFunc[K, V any](order func(a, b K) int) Map[K, V] {
	return NewFromConfig[K, V](Config[K]{Order: order})
}

// NewFromConfig returns an empty map configured by cfg.
func NewFromConfig[K, V any](cfg Config[K]) Map[K, V] {
	if cfg.Order == nil {
		panic("pmap: Config.Order is required")
	}
	prio := cfg.Priority
	if prio == nil {
		if cfg.PriorityCache != nil {
			prio = cachedDefaultPriority[K](cfg.PriorityCache)
		} else {
			prio = DefaultPriority[K]
		}
	}
	return Map[K, V]{order: cfg.Order, prio: prio}
}

// Entry represents a key and value in the map.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Len returns the number of bindings.
func (m Map[K, V]) Len() int {
	return m.root.len()
}

// IsEmpty reports whether the map has no bindings.
func (m Map[K, V]) IsEmpty() bool {
	return m.root == nil
}

// Set binds key to value, replacing any existing binding for key.
func (m Map[K, V]) Set(key K, value V) Map[K, V] {
	m.root = insert(m.root, key, value, m.prio(key), m.order)
	return m
}

// Add is Set under a name signalling that the key is expected to be fresh.
// It behaves identically to Set: an existing binding is replaced, never
// duplicated.
func (m Map[K, V]) Add(key K, value V) Map[K, V] {
	return m.Set(key, value)
}

// Get returns the value bound to key. The ok result reports whether the
// binding exists; an absent key is a normal outcome, never a failure.
func (m Map[K, V]) Get(key K) (V, bool) {
	if n := find(m.root, key, m.order); n != nil {
		return n.value, true
	}
	var zero V
	return zero, false
}

// MustGet returns the value bound to key and panics if there is none. For
// call sites that have already established the key's presence; a missing key
// here is a caller bug, not a runtime condition.
func (m Map[K, V]) MustGet(key K) V {
	n := find(m.root, key, m.order)
	if n == nil {
		panic(fmt.Sprintf("pmap: key %v not present in map", key))
	}
	return n.value
}

// Contains reports whether key is bound.
func (m Map[K, V]) Contains(key K) bool {
	return find(m.root, key, m.order) != nil
}

// Remove unbinds key. Removing an absent key returns the map unchanged,
// same identity.
func (m Map[K, V]) Remove(key K) Map[K, V] {
	m.root = remove(m.root, key, m.order)
	return m
}

// FindAndRemove returns the value bound to key together with the map less
// that binding. When key is absent, ok is false and the map comes back
// untouched.
func (m Map[K, V]) FindAndRemove(key K) (value V, rest Map[K, V], ok bool) {
	left, mid, right := split(m.root, key, m.order)
	if mid == nil {
		var zero V
		return zero, m, false
	}
	m.root = join(left, right)
	return mid.value, m, true
}

// Split divides the map around key: left holds the keys sorting before key,
// right the keys sorting after. value and ok report the binding at key
// itself.
func (m Map[K, V]) Split(key K) (left Map[K, V], value V, ok bool, right Map[K, V]) {
	l, mid, r := split(m.root, key, m.order)
	left, right = m, m
	left.root, right.root = l, r
	if mid != nil {
		return left, mid.value, true, right
	}
	var zero V
	return left, zero, false, right
}

// Choose returns an arbitrary binding: the one at the root of the tree.
// Arbitrary, but deterministic for a given set of bindings.
func (m Map[K, V]) Choose() (K, V, bool) {
	if m.root == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	return m.root.key, m.root.value, true
}

// ChooseKey returns an arbitrary key, as Choose does.
func (m Map[K, V]) ChooseKey() (K, bool) {
	k, _, ok := m.Choose()
	return k, ok
}

// MustChoose is Choose for maps already known to be non-empty; it panics on
// an empty map.
func (m Map[K, V]) MustChoose() (K, V) {
	k, v, ok := m.Choose()
	if !ok {
		panic("pmap: MustChoose on empty map")
	}
	return k, v
}

// Pop returns an arbitrary binding (as Choose) together with the map less
// that binding.
func (m Map[K, V]) Pop() (key K, value V, rest Map[K, V], ok bool) {
	if m.root == nil {
		return key, value, m, false
	}
	key, value = m.root.key, m.root.value
	rest = m
	rest.root = join(m.root.left, m.root.right)
	return key, value, rest, true
}

// Min returns the binding with the least key.
func (m Map[K, V]) Min() (K, V, bool) {
	if n := leftmost(m.root); n != nil {
		return n.key, n.value, true
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// PopMin returns the binding with the least key together with the map less
// that binding.
func (m Map[K, V]) PopMin() (key K, value V, rest Map[K, V], ok bool) {
	if m.root == nil {
		return key, value, m, false
	}
	rest = m
	key, value, rest.root = popMin(m.root)
	return key, value, rest, true
}

// Cardinality classifies a map by its number of bindings.
type Cardinality int

const (
	Zero Cardinality = iota
	One
	Many
)

// Classify reports whether the map holds zero, one, or many bindings,
// without counting: the root binding is taken and both of its sides must be
// empty for the map to be a singleton.
func (m Map[K, V]) Classify() Cardinality {
	switch {
	case m.root == nil:
		return Zero
	case m.root.left == nil && m.root.right == nil:
		return One
	default:
		return Many
	}
}

// OnlyBinding returns the map's binding iff it has exactly one.
func (m Map[K, V]) OnlyBinding() (K, V, bool) {
	if m.Classify() == One {
		return m.root.key, m.root.value, true
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// IsSingleton reports whether the map holds exactly one binding.
func (m Map[K, V]) IsSingleton() bool {
	return m.Classify() == One
}

// Change rebinds key according to f, which receives the current value (and
// whether one exists) and decides the key's fate: returning false unbinds
// the key, returning true binds the returned value.
func (m Map[K, V]) Change(key K, f func(value V, ok bool) (V, bool)) Map[K, V] {
	left, mid, right := split(m.root, key, m.order)
	var cur V
	ok := mid != nil
	if ok {
		cur = mid.value
	}
	next, keep := f(cur, ok)
	if !keep {
		if !ok {
			return m
		}
		m.root = join(left, right)
		return m
	}
	prio := m.prio(key)
	if mid != nil {
		prio = mid.prio
	}
	m.root = join(left, join(mk(key, next, prio, nil, nil), right))
	return m
}

// Update is Change for transforms that always produce a value.
func (m Map[K, V]) Update(key K, f func(value V, ok bool) V) Map[K, V] {
	return m.Change(key, func(v V, ok bool) (V, bool) {
		return f(v, ok), true
	})
}

// FindFirst returns the least binding, in key order, satisfying pred.
// Linear in the worst case when nothing matches.
func (m Map[K, V]) FindFirst(pred func(K, V) bool) (K, V, bool) {
	if n := findFirst(m.root, pred); n != nil {
		return n.key, n.value, true
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// Range calls f for each binding in ascending key order until f returns
// false.
func (m Map[K, V]) Range(f func(K, V) bool) {
	rangeNodes(m.root, f)
}

// All returns an iterator over the bindings in ascending key order.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		rangeNodes(m.root, yield)
	}
}

// Keys returns an iterator over the keys in ascending order.
func (m Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		rangeNodes(m.root, func(k K, _ V) bool {
			return yield(k)
		})
	}
}

// Values returns an iterator over the values in ascending key order.
func (m Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		rangeNodes(m.root, func(_ K, v V) bool {
			return yield(v)
		})
	}
}

// Exists reports whether any binding satisfies pred.
func (m Map[K, V]) Exists(pred func(K, V) bool) bool {
	return findFirst(m.root, pred) != nil
}

// ForAll reports whether every binding satisfies pred. Vacuously true for
// an empty map.
func (m Map[K, V]) ForAll(pred func(K, V) bool) bool {
	return !m.Exists(func(k K, v V) bool {
		return !pred(k, v)
	})
}

// Entries returns the bindings as a slice in ascending key order.
func (m Map[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, m.Len())
	m.Range(func(k K, v V) bool {
		entries = append(entries, Entry[K, V]{k, v})
		return true
	})
	return entries
}

// Fold accumulates f over the bindings in ascending key order.
func Fold[K, V, A any](m Map[K, V], init A, f func(acc A, key K, value V) A) A {
	acc := init
	m.Range(func(k K, v V) bool {
		acc = f(acc, k, v)
		return true
	})
	return acc
}
