/*
Package pmap provides an immutable, ordered, diffable map.  Every
operation that would modify a map instead returns a new one, sharing
unmodified subtrees with its parent, so keeping many versions of a
map around is cheap and comparing versions is fast.

Uses

- Copy-on-write alternative to the Go builtin map, with ordered iteration

- Accumulating multiple values per key (AddMulti/FindMulti)

- Set-like algebra over two maps: Merge, Union, Partition, SymmetricDiff

- Change detection: MergeEndo and MapEndo return the original map,
same identity, when a transform turns out to be a no-op

Shape

The backing structure is a persistent treap whose node priorities are
derived by hashing the key, so a map's shape depends only on the
bindings it holds, never on the order they were inserted.  Two maps
built from the same bindings are node-for-node identical, and
operations that pick "an arbitrary" binding (Choose, Pop) are
deterministic for a given binding set.

Concurrency

A Map value can be handed to any number of goroutines for reading
without coordination.  Deriving a new map from a shared one requires
no synchronization with its other readers; each derived map evolves
independently.  Nothing in this package blocks, so there is no
context plumbing and no cancellation.

Inspiration

The immutable data types in Clojure, Haskell, ML and other functional
languages really do make it easier to reason about systems.  The
three-way Merge combinator here is the universal primitive in that
tradition: Union, MergeSkewed and SymmetricDiff are all small
specializations of the same two-tree walk.
*/
package pmap
