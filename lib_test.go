package pmap

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	m := New[int, string]()
	require.Equal(t, 0, m.Len())
	require.True(t, m.IsEmpty())
	_, ok := m.Get(1)
	require.False(t, ok)
}

func TestSetGet(t *testing.T) {
	t.Parallel()
	m := New[int, string]().Set(1, "a")
	v, ok := m.Get(1)
	require.True(t, ok)
	require.Equal(t, "a", v)
	require.True(t, m.Contains(1))
	require.False(t, m.Contains(2))

	m = m.Set(1, "b")
	v, ok = m.Get(1)
	require.True(t, ok)
	require.Equal(t, "b", v)
	require.Equal(t, 1, m.Len(), "replacing a value must not duplicate the key")
}

func TestAddIsSet(t *testing.T) {
	t.Parallel()
	m := New[int, string]().Add(1, "a")
	once := m.Add(1, "a")
	require.Equal(t, m.Entries(), once.Entries())
	require.Equal(t, 1, once.Len())
}

func TestRemove(t *testing.T) {
	t.Parallel()
	m := New[int, string]().Set(1, "a").Set(2, "b")
	m2 := m.Remove(1)
	_, ok := m2.Get(1)
	require.False(t, ok)
	require.Equal(t, 1, m2.Len())
	// the original still holds the binding
	v, ok := m.Get(1)
	require.True(t, ok)
	require.Equal(t, "a", v)
}

func TestFindAndRemove(t *testing.T) {
	t.Parallel()
	m := New[int, string]().Set(1, "a").Set(2, "b")
	v, rest, ok := m.FindAndRemove(1)
	require.True(t, ok)
	require.Equal(t, "a", v)
	require.Equal(t, 1, rest.Len())
	require.False(t, rest.Contains(1))

	_, rest, ok = m.FindAndRemove(99)
	require.False(t, ok)
	require.True(t, m.Same(rest))
}

func TestPop(t *testing.T) {
	t.Parallel()
	m := New[int, string]().Set(1, "a").Set(2, "b").Set(3, "c")
	seen := map[int]string{}
	for !m.IsEmpty() {
		k, v, rest, ok := m.Pop()
		require.True(t, ok)
		seen[k] = v
		m = rest
	}
	require.Equal(t, map[int]string{1: "a", 2: "b", 3: "c"}, seen)
	_, _, _, ok := m.Pop()
	require.False(t, ok)
}

func TestPopIsDeterministic(t *testing.T) {
	t.Parallel()
	a := New[int, string]().Set(1, "a").Set(2, "b").Set(3, "c")
	b := New[int, string]().Set(3, "c").Set(1, "a").Set(2, "b")
	ka, va, _, _ := a.Pop()
	kb, vb, _, _ := b.Pop()
	require.Equal(t, ka, kb)
	require.Equal(t, va, vb)
}

func TestPopMin(t *testing.T) {
	t.Parallel()
	m := New[int, string]().Set(1, "a").Set(2, "b")
	k, v, rest, ok := m.PopMin()
	require.True(t, ok)
	require.Equal(t, 1, k)
	require.Equal(t, "a", v)
	require.Equal(t, []Entry[int, string]{{2, "b"}}, rest.Entries())

	empty := New[int, string]()
	_, _, _, ok = empty.PopMin()
	require.False(t, ok)
}

func TestMin(t *testing.T) {
	t.Parallel()
	m := New[int, string]().Set(5, "e").Set(3, "c").Set(9, "i")
	k, v, ok := m.Min()
	require.True(t, ok)
	require.Equal(t, 3, k)
	require.Equal(t, "c", v)
}

func TestChoose(t *testing.T) {
	t.Parallel()
	empty := New[int, string]()
	_, _, ok := empty.Choose()
	require.False(t, ok)
	_, ok2 := empty.ChooseKey()
	require.False(t, ok2)

	m := empty.Set(7, "g")
	k, v, ok := m.Choose()
	require.True(t, ok)
	require.Equal(t, 7, k)
	require.Equal(t, "g", v)

	mk, mv := m.MustChoose()
	require.Equal(t, 7, mk)
	require.Equal(t, "g", mv)
}

func TestMustChoosePanicsOnEmpty(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() {
		New[int, string]().MustChoose()
	})
}

func TestMustGet(t *testing.T) {
	t.Parallel()
	m := New[int, string]().Set(1, "a")
	require.Equal(t, "a", m.MustGet(1))
	require.Panics(t, func() {
		m.MustGet(2)
	})
}

func TestClassify(t *testing.T) {
	t.Parallel()
	require.Equal(t, Zero, New[int, string]().Classify())
	require.Equal(t, One, Singleton(1, "x").Classify())
	require.Equal(t, Many, New[int, string]().Set(1, "x").Set(2, "y").Classify())
}

func TestOnlyBinding(t *testing.T) {
	t.Parallel()
	k, v, ok := Singleton(5, "z").OnlyBinding()
	require.True(t, ok)
	require.Equal(t, 5, k)
	require.Equal(t, "z", v)

	_, _, ok = New[int, string]().Set(1, "x").Set(2, "y").OnlyBinding()
	require.False(t, ok)
	_, _, ok = New[int, string]().OnlyBinding()
	require.False(t, ok)
}

func TestIsSingleton(t *testing.T) {
	t.Parallel()
	require.False(t, New[int, string]().IsSingleton())
	require.True(t, Singleton(1, "x").IsSingleton())
	require.False(t, Singleton(1, "x").Set(2, "y").IsSingleton())
}

func TestChange(t *testing.T) {
	t.Parallel()
	m := New[int, int]().Set(1, 10)

	// rebind an existing key
	m2 := m.Change(1, func(v int, ok bool) (int, bool) {
		require.True(t, ok)
		return v + 1, true
	})
	require.Equal(t, 11, m2.MustGet(1))

	// delete by returning false
	m3 := m2.Change(1, func(int, bool) (int, bool) {
		return 0, false
	})
	require.False(t, m3.Contains(1))

	// create a missing key
	m4 := m.Change(2, func(_ int, ok bool) (int, bool) {
		require.False(t, ok)
		return 20, true
	})
	require.Equal(t, 20, m4.MustGet(2))

	// deleting a missing key is a no-op, same identity
	m5 := m.Change(99, func(int, bool) (int, bool) {
		return 0, false
	})
	require.True(t, m.Same(m5))
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	m := New[string, int]()
	m = m.Update("hits", func(v int, _ bool) int { return v + 1 })
	m = m.Update("hits", func(v int, _ bool) int { return v + 1 })
	require.Equal(t, 2, m.MustGet("hits"))
}

func TestEntriesRoundTrip(t *testing.T) {
	t.Parallel()
	want := []Entry[int, string]{{1, "a"}, {2, "b"}, {3, "c"}}
	for _, order := range [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}} {
		m := New[int, string]()
		for _, i := range order {
			m = m.Add(want[i].Key, want[i].Value)
		}
		require.Equal(t, want, m.Entries())
	}
}

func TestFindFirst(t *testing.T) {
	t.Parallel()
	m := New[int, string]().Set(1, "a").Set(2, "bb").Set(3, "ccc").Set(4, "dd")
	k, v, ok := m.FindFirst(func(_ int, v string) bool { return len(v) > 1 })
	require.True(t, ok)
	require.Equal(t, 2, k)
	require.Equal(t, "bb", v)

	_, _, ok = m.FindFirst(func(_ int, v string) bool { return len(v) > 3 })
	require.False(t, ok)
}

func TestIterators(t *testing.T) {
	t.Parallel()
	m := New[int, string]().Set(2, "b").Set(1, "a").Set(3, "c")

	var keys []int
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	require.Equal(t, []int{1, 2, 3}, keys)

	var values []string
	for v := range m.Values() {
		values = append(values, v)
	}
	require.Equal(t, []string{"a", "b", "c"}, values)

	var pairs []Entry[int, string]
	for k, v := range m.All() {
		pairs = append(pairs, Entry[int, string]{k, v})
	}
	require.Equal(t, m.Entries(), pairs)

	// early exit
	n := 0
	for range m.Keys() {
		n++
		break
	}
	require.Equal(t, 1, n)
}

func TestFoldExistsForAll(t *testing.T) {
	t.Parallel()
	m := New[int, int]().Set(1, 1).Set(2, 2).Set(3, 3)
	sum := Fold(m, 0, func(acc, _, v int) int { return acc + v })
	require.Equal(t, 6, sum)

	require.True(t, m.Exists(func(_, v int) bool { return v == 2 }))
	require.False(t, m.Exists(func(_, v int) bool { return v == 9 }))
	require.True(t, m.ForAll(func(k, v int) bool { return k == v }))
	require.False(t, m.ForAll(func(_, v int) bool { return v < 3 }))
	require.True(t, New[int, int]().ForAll(func(_, _ int) bool { return false }))
}

func TestNewFunc(t *testing.T) {
	t.Parallel()
	descending := NewFunc[int, string](func(a, b int) int { return b - a })
	descending = descending.Set(1, "a").Set(2, "b").Set(3, "c")
	var keys []int
	for k := range descending.Keys() {
		keys = append(keys, k)
	}
	require.Equal(t, []int{3, 2, 1}, keys)
}

func TestNewFromConfigRequiresOrder(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() {
		NewFromConfig[int, string](Config[int]{})
	})
}

func TestPriorityCache(t *testing.T) {
	t.Parallel()
	cache := NewPriorityCache(100)
	cached := NewFromConfig[uint, uint](Config[uint]{
		Order:         DefaultOrder[uint],
		PriorityCache: cache,
	})
	plain := New[uint, uint]()
	for k := uint(0); k < 200; k++ {
		cached = cached.Set(k, k)
		plain = plain.Set(k, k)
	}
	// cached derivation must agree with the default
	require.True(t, sameStructure(cached.root, plain.root))
}

func TestRecall(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	properties.Property("every inserted binding is recalled in order", prop.ForAll(
		func(entries map[uint]uint) bool {
			m := New[uint, uint]()
			for k, v := range entries {
				m = m.Set(k, v)
			}
			if m.Len() != len(entries) {
				return false
			}
			var prev *uint
			inOrder := true
			m.Range(func(k uint, v uint) bool {
				if entries[k] != v {
					inOrder = false
					return false
				}
				if prev != nil && *prev >= k {
					inOrder = false
					return false
				}
				kk := k
				prev = &kk
				return true
			})
			return inOrder
		},
		gen.MapOf(gen.UIntRange(0, 99_999), gen.UIntRange(0, 99_999)),
	))
	properties.TestingRun(t)
}

func TestLenAcrossVersions(t *testing.T) {
	t.Parallel()
	versions := []Map[int, int]{New[int, int]()}
	for i := 0; i < 100; i++ {
		versions = append(versions, versions[len(versions)-1].Set(i, i))
	}
	for i, v := range versions {
		assert.Equal(t, i, v.Len())
	}
}
