package pmap

// DiffKind classifies one entry of a symmetric diff.
type DiffKind uint8

const (
	// DiffLeft marks a key present only in the left map.
	DiffLeft DiffKind = iota
	// DiffRight marks a key present only in the right map.
	DiffRight
	// DiffUnequal marks a key present in both maps with unequal values.
	DiffUnequal
)

// Diff is one classified difference between two maps. Left and Right are
// meaningful according to Kind.
type Diff[K, V any] struct {
	Key   K
	Kind  DiffKind
	Left  V
	Right V
}

// DiffIter invokes f for every difference between m and other, in ascending
// key order. The iteration stops when f returns false. equal decides
// whether two values bound to the same key count as different; subtrees the
// two maps share by pointer are skipped without being visited.
func (m Map[K, V]) DiffIter(other Map[K, V], equal func(V, V) bool, f func(Diff[K, V]) bool) {
	diffNodes(m.root, other.root, m.order, equal, f)
}

// SymmetricDiff returns the ordered, classified differences between m and
// other. Keys bound to equal values in both maps are omitted.
func (m Map[K, V]) SymmetricDiff(other Map[K, V], equal func(V, V) bool) []Diff[K, V] {
	var diffs []Diff[K, V]
	m.DiffIter(other, equal, func(d Diff[K, V]) bool {
		diffs = append(diffs, d)
		return true
	})
	return diffs
}

// Equal reports whether the two maps hold the same keys bound to equal
// values.
func (m Map[K, V]) Equal(other Map[K, V], equal func(V, V) bool) bool {
	same := true
	m.DiffIter(other, equal, func(Diff[K, V]) bool {
		same = false
		return false
	})
	return same
}

// Same reports whether two maps are the same underlying structure. It is
// how callers observe the MergeEndo/MapEndo no-op contract: a map those
// return Same as their receiver was not changed at all.
func (m Map[K, V]) Same(other Map[K, V]) bool {
	return m.root == other.root
}

func diffNodes[K, V any](a, b *node[K, V], order func(x, y K) int, equal func(V, V) bool, f func(Diff[K, V]) bool) bool {
	if a == b {
		// Shared subtree, including both empty: nothing can differ.
		return true
	}
	if a == nil {
		return diffSide(b, DiffRight, f)
	}
	if b == nil {
		return diffSide(a, DiffLeft, f)
	}
	l, mid, r := split(b, a.key, order)
	if !diffNodes(a.left, l, order, equal, f) {
		return false
	}
	if mid == nil {
		if !f(Diff[K, V]{Key: a.key, Kind: DiffLeft, Left: a.value}) {
			return false
		}
	} else if !equal(a.value, mid.value) {
		if !f(Diff[K, V]{Key: a.key, Kind: DiffUnequal, Left: a.value, Right: mid.value}) {
			return false
		}
	}
	return diffNodes(a.right, r, order, equal, f)
}

func diffSide[K, V any](n *node[K, V], kind DiffKind, f func(Diff[K, V]) bool) bool {
	if n == nil {
		return true
	}
	if !diffSide(n.left, kind, f) {
		return false
	}
	d := Diff[K, V]{Key: n.key, Kind: kind}
	if kind == DiffLeft {
		d.Left = n.value
	} else {
		d.Right = n.value
	}
	if !f(d) {
		return false
	}
	return diffSide(n.right, kind, f)
}
