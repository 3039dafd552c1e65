package pmap

// node is a treap node: binary-search-tree order on keys, max-heap order on
// priorities. A node is never modified once it is linked into a map; updates
// build new nodes along the touched path and share everything else.
type node[K, V any] struct {
	key         K
	value       V
	prio        uint64
	size        int
	left, right *node[K, V]
}

func (n *node[K, V]) len() int {
	if n == nil {
		return 0
	}
	return n.size
}

// mk builds a node over two key-disjoint subtrees whose priorities do not
// exceed prio.
func mk[K, V any](key K, value V, prio uint64, left, right *node[K, V]) *node[K, V] {
	return &node[K, V]{
		key:   key,
		value: value,
		prio:  prio,
		size:  left.len() + right.len() + 1,
		left:  left,
		right: right,
	}
}

// find descends to the node bound to key, or nil.
func find[K, V any](n *node[K, V], key K, order func(a, b K) int) *node[K, V] {
	for n != nil {
		switch c := order(key, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// split divides n into the subtree of keys less than key, the node bound to
// key itself (or nil), and the subtree of keys greater than key.
func split[K, V any](n *node[K, V], key K, order func(a, b K) int) (left, mid, right *node[K, V]) {
	if n == nil {
		return nil, nil, nil
	}
	switch c := order(key, n.key); {
	case c > 0:
		l, m, r := split(n.right, key, order)
		return mk(n.key, n.value, n.prio, n.left, l), m, r
	case c < 0:
		l, m, r := split(n.left, key, order)
		return l, m, mk(n.key, n.value, n.prio, r, n.right)
	default:
		return n.left, n, n.right
	}
}

// join concatenates two trees, picking roots by priority. Every key in left
// must be less than every key in right.
func join[K, V any](left, right *node[K, V]) *node[K, V] {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	case left.prio >= right.prio:
		return mk(left.key, left.value, left.prio, left.left, join(left.right, right))
	default:
		return mk(right.key, right.value, right.prio, join(left, right.left), right.right)
	}
}

// insert binds key to value. An existing binding is replaced in place in the
// tree order; the key is never duplicated.
func insert[K, V any](n *node[K, V], key K, value V, prio uint64, order func(a, b K) int) *node[K, V] {
	if n == nil {
		return mk(key, value, prio, nil, nil)
	}
	if prio > n.prio {
		// The new key outranks this whole subtree and becomes its root.
		l, _, r := split(n, key, order)
		return mk(key, value, prio, l, r)
	}
	switch c := order(key, n.key); {
	case c < 0:
		return mk(n.key, n.value, n.prio, insert(n.left, key, value, prio, order), n.right)
	case c > 0:
		return mk(n.key, n.value, n.prio, n.left, insert(n.right, key, value, prio, order))
	default:
		return mk(key, value, n.prio, n.left, n.right)
	}
}

// remove unbinds key. Removing an absent key returns the input tree, same
// pointer, so callers can detect the no-op cheaply.
func remove[K, V any](n *node[K, V], key K, order func(a, b K) int) *node[K, V] {
	if n == nil {
		return nil
	}
	switch c := order(key, n.key); {
	case c < 0:
		l := remove(n.left, key, order)
		if l == n.left {
			return n
		}
		return mk(n.key, n.value, n.prio, l, n.right)
	case c > 0:
		r := remove(n.right, key, order)
		if r == n.right {
			return n
		}
		return mk(n.key, n.value, n.prio, n.left, r)
	default:
		return join(n.left, n.right)
	}
}

// leftmost returns the node with the least key.
func leftmost[K, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// popMin detaches the leftmost binding. n must be non-nil.
func popMin[K, V any](n *node[K, V]) (key K, value V, rest *node[K, V]) {
	if n.left == nil {
		return n.key, n.value, n.right
	}
	key, value, l := popMin(n.left)
	return key, value, mk(n.key, n.value, n.prio, l, n.right)
}

// findFirst returns the least node, in key order, satisfying pred, stopping
// as soon as one matches.
func findFirst[K, V any](n *node[K, V], pred func(K, V) bool) *node[K, V] {
	if n == nil {
		return nil
	}
	if m := findFirst(n.left, pred); m != nil {
		return m
	}
	if pred(n.key, n.value) {
		return n
	}
	return findFirst(n.right, pred)
}

// rangeNodes walks the bindings in ascending key order until f returns false.
func rangeNodes[K, V any](n *node[K, V], f func(K, V) bool) bool {
	if n == nil {
		return true
	}
	return rangeNodes(n.left, f) && f(n.key, n.value) && rangeNodes(n.right, f)
}

// union merges two trees; a key present in both gets combine(key, va, vb).
func union[K, V any](a, b *node[K, V], order func(x, y K) int, combine func(K, V, V) V) *node[K, V] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.prio < b.prio {
		a, b = b, a
		flipped := combine
		combine = func(k K, av, bv V) V { return flipped(k, bv, av) }
	}
	l, m, r := split(b, a.key, order)
	v := a.value
	if m != nil {
		v = combine(a.key, a.value, m.value)
	}
	return mk(a.key, v, a.prio, union(a.left, l, order, combine), union(a.right, r, order, combine))
}

// partition splits a tree by pred into the bindings that satisfy it and the
// bindings that do not. Subtrees that land wholly on one side keep their
// identity.
func partition[K, V any](n *node[K, V], pred func(K, V) bool) (yes, no *node[K, V]) {
	if n == nil {
		return nil, nil
	}
	ly, ln := partition(n.left, pred)
	ry, rn := partition(n.right, pred)
	if pred(n.key, n.value) {
		if ly == n.left && ry == n.right {
			return n, nil
		}
		return mk(n.key, n.value, n.prio, ly, ry), join(ln, rn)
	}
	if ln == n.left && rn == n.right {
		return nil, n
	}
	return join(ly, ry), mk(n.key, n.value, n.prio, ln, rn)
}
