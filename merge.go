package pmap

// MergeItem describes a key's presence in the two maps being merged.
type MergeItem[V any] struct {
	Left, Right     V
	InLeft, InRight bool
}

// MergeFunc decides a merged key's fate: returning false drops the key,
// returning true binds the returned value.
type MergeFunc[K, V any] func(key K, item MergeItem[V]) (V, bool)

// Merge combines two maps with a per-key three-way callback. f is invoked
// once for every key present in either map, in ascending key order, with the
// key's value on each side it appears in. Union, MergeSkewed, and
// SymmetricDiff are all specializations of this walk.
//
// Both maps must use the same order and priority functions; otherwise
// behavior is undefined.
func (m Map[K, V]) Merge(other Map[K, V], f MergeFunc[K, V]) Map[K, V] {
	m.root = mergeNodes(m.root, other.root, m.order, f)
	return m
}

func mergeNodes[K, V any](a, b *node[K, V], order func(x, y K) int, f MergeFunc[K, V]) *node[K, V] {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		return mergeSide(b, false, f)
	}
	if b == nil {
		return mergeSide(a, true, f)
	}
	l, mid, r := split(b, a.key, order)
	left := mergeNodes(a.left, l, order, f)
	item := MergeItem[V]{Left: a.value, InLeft: true}
	if mid != nil {
		item.Right, item.InRight = mid.value, true
	}
	value, keep := f(a.key, item)
	right := mergeNodes(a.right, r, order, f)
	if !keep {
		return join(left, right)
	}
	return join(left, join(mk(a.key, value, a.prio, nil, nil), right))
}

// mergeSide handles a subtree whose keys appear in only one of the inputs.
func mergeSide[K, V any](n *node[K, V], inLeft bool, f MergeFunc[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}
	left := mergeSide(n.left, inLeft, f)
	var item MergeItem[V]
	if inLeft {
		item.Left, item.InLeft = n.value, true
	} else {
		item.Right, item.InRight = n.value, true
	}
	value, keep := f(n.key, item)
	right := mergeSide(n.right, inLeft, f)
	if !keep {
		return join(left, right)
	}
	return mk(n.key, value, n.prio, left, right)
}

// Outcome is the result of an endomorphic transform for one key. Construct
// with Unchanged, Changed, or Removed.
type Outcome[V any] struct {
	op    outcomeOp
	value V
}

type outcomeOp uint8

const (
	opUnchanged outcomeOp = iota
	opChanged
	opRemoved
)

// Unchanged leaves the binding exactly as it is in the receiver: the
// receiver's value for keys it holds, still absent for keys it does not.
func Unchanged[V any]() Outcome[V] {
	return Outcome[V]{op: opUnchanged}
}

// Changed binds the given value.
func Changed[V any](value V) Outcome[V] {
	return Outcome[V]{op: opChanged, value: value}
}

// Removed unbinds the key.
func Removed[V any]() Outcome[V] {
	return Outcome[V]{op: opRemoved}
}

// EndoMergeFunc is the per-key callback of MergeEndo.
type EndoMergeFunc[K, V any] func(key K, item MergeItem[V]) Outcome[V]

// MergeEndo is Merge with a no-op detection contract: if every outcome
// leaves the receiver's bindings as they are, the receiver itself comes
// back, same identity, rather than an equal rebuilt structure. Callers can
// then detect "nothing actually changed" with Same instead of a deep
// equality check. Subtrees whose outcomes are all Unchanged keep their
// identity even when the rest of the map is rebuilt.
func (m Map[K, V]) MergeEndo(other Map[K, V], f EndoMergeFunc[K, V]) Map[K, V] {
	root, changed := mergeEndoNodes(m.root, other.root, m.order, f)
	if !changed {
		return m
	}
	m.root = root
	return m
}

// mergeEndoNodes reports, alongside the merged tree, whether the result
// differs from t.
func mergeEndoNodes[K, V any](t, u *node[K, V], order func(x, y K) int, f EndoMergeFunc[K, V]) (*node[K, V], bool) {
	if t == nil && u == nil {
		return nil, false
	}
	if u == nil {
		return endoLeftOnly(t, f)
	}
	if t == nil {
		return endoRightOnly(u, f)
	}
	l, mid, r := split(u, t.key, order)
	left, lchanged := mergeEndoNodes(t.left, l, order, f)
	item := MergeItem[V]{Left: t.value, InLeft: true}
	if mid != nil {
		item.Right, item.InRight = mid.value, true
	}
	out := f(t.key, item)
	right, rchanged := mergeEndoNodes(t.right, r, order, f)
	switch out.op {
	case opUnchanged:
		if !lchanged && !rchanged {
			return t, false
		}
		return join(left, join(mk(t.key, t.value, t.prio, nil, nil), right)), true
	case opChanged:
		return join(left, join(mk(t.key, out.value, t.prio, nil, nil), right)), true
	default:
		return join(left, right), true
	}
}

func endoLeftOnly[K, V any](t *node[K, V], f EndoMergeFunc[K, V]) (*node[K, V], bool) {
	if t == nil {
		return nil, false
	}
	left, lchanged := endoLeftOnly(t.left, f)
	out := f(t.key, MergeItem[V]{Left: t.value, InLeft: true})
	right, rchanged := endoLeftOnly(t.right, f)
	switch out.op {
	case opUnchanged:
		if !lchanged && !rchanged {
			return t, false
		}
		return mk(t.key, t.value, t.prio, left, right), true
	case opChanged:
		return mk(t.key, out.value, t.prio, left, right), true
	default:
		return join(left, right), true
	}
}

// endoRightOnly visits keys absent from the receiver; only a Changed outcome
// introduces a binding, so Unchanged and Removed are both no-ops here.
func endoRightOnly[K, V any](u *node[K, V], f EndoMergeFunc[K, V]) (*node[K, V], bool) {
	if u == nil {
		return nil, false
	}
	left, lchanged := endoRightOnly(u.left, f)
	out := f(u.key, MergeItem[V]{Right: u.value, InRight: true})
	right, rchanged := endoRightOnly(u.right, f)
	if out.op == opChanged {
		return mk(u.key, out.value, u.prio, left, right), true
	}
	return join(left, right), lchanged || rchanged
}

// MergeSkewed unions two maps, resolving keys present in both with combine.
// Non-conflicting keys carry through unchanged.
func (m Map[K, V]) MergeSkewed(other Map[K, V], combine func(key K, left, right V) V) Map[K, V] {
	return m.Merge(other, func(key K, item MergeItem[V]) (V, bool) {
		switch {
		case item.InLeft && item.InRight:
			return combine(key, item.Left, item.Right), true
		case item.InLeft:
			return item.Left, true
		default:
			return item.Right, true
		}
	})
}

// Union merges two maps on the tree engine's union primitive; keys present
// in both get combine(key, receiver's value, other's value).
func (m Map[K, V]) Union(other Map[K, V], combine func(key K, left, right V) V) Map[K, V] {
	m.root = union(m.root, other.root, m.order, combine)
	return m
}

// Partition splits the map by pred. Every binding lands in exactly one
// output.
func (m Map[K, V]) Partition(pred func(K, V) bool) (yes, no Map[K, V]) {
	yes, no = m, m
	yes.root, no.root = partition(m.root, pred)
	return yes, no
}

// Filter keeps the bindings satisfying pred.
func (m Map[K, V]) Filter(pred func(K, V) bool) Map[K, V] {
	yes, _ := m.Partition(pred)
	return yes
}

// MapEndo transforms the map's own values with no-op detection: as with
// MergeEndo, an all-Unchanged transform returns the receiver with unchanged
// identity.
func (m Map[K, V]) MapEndo(f func(key K, value V) Outcome[V]) Map[K, V] {
	root, changed := mapEndoNodes(m.root, f)
	if !changed {
		return m
	}
	m.root = root
	return m
}

func mapEndoNodes[K, V any](n *node[K, V], f func(K, V) Outcome[V]) (*node[K, V], bool) {
	if n == nil {
		return nil, false
	}
	left, lchanged := mapEndoNodes(n.left, f)
	out := f(n.key, n.value)
	right, rchanged := mapEndoNodes(n.right, f)
	switch out.op {
	case opUnchanged:
		if !lchanged && !rchanged {
			return n, false
		}
		return mk(n.key, n.value, n.prio, left, right), true
	case opChanged:
		return mk(n.key, out.value, n.prio, left, right), true
	default:
		return join(left, right), true
	}
}

// MapValues transforms every value, producing a new map over the same keys.
func MapValues[K, V, W any](m Map[K, V], f func(V) W) Map[K, W] {
	return MapIndexed(m, func(_ K, v V) W { return f(v) })
}

// MapIndexed is MapValues with the key available to the transform.
func MapIndexed[K, V, W any](m Map[K, V], f func(K, V) W) Map[K, W] {
	return Map[K, W]{
		root:  mapNodes(m.root, f),
		order: m.order,
		prio:  m.prio,
	}
}

func mapNodes[K, V, W any](n *node[K, V], f func(K, V) W) *node[K, W] {
	if n == nil {
		return nil
	}
	left := mapNodes(n.left, f)
	value := f(n.key, n.value)
	right := mapNodes(n.right, f)
	return mk(n.key, value, n.prio, left, right)
}

// FilterMap keeps the bindings for which f's second result is true, with
// their values transformed.
func FilterMap[K, V, W any](m Map[K, V], f func(K, V) (W, bool)) Map[K, W] {
	return Map[K, W]{
		root:  filterMapNodes(m.root, f),
		order: m.order,
		prio:  m.prio,
	}
}

func filterMapNodes[K, V, W any](n *node[K, V], f func(K, V) (W, bool)) *node[K, W] {
	if n == nil {
		return nil
	}
	left := filterMapNodes(n.left, f)
	value, keep := f(n.key, n.value)
	right := filterMapNodes(n.right, f)
	if !keep {
		return join(left, right)
	}
	return mk(n.key, value, n.prio, left, right)
}
