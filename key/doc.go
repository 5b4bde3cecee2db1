// Package key provides Composite, an immutable identity built from an ordered
// list of arbitrary values.
//
// A Composite is equal to another Composite when both hold the same number of
// components and the components are pairwise equal, in order. The combined hash
// is computed once at construction and is used as a fast reject before the
// element-wise comparison, and as a bucket index by the cache package.
//
// Element semantics:
//   - Values implementing Hasher decide their own equality and hash.
//   - Comparable values (pointers, strings, numbers, comparable structs) use ==,
//     so pointer components have reference identity.
//   - Non-comparable values (slices, maps, funcs) use reflect.DeepEqual and a
//     hash computed by walking the value the same way.
//   - Floats follow ==, so -0 equals +0, except that a NaN component equals
//     any other NaN of the same type. NaN nested inside a comparable struct
//     still never equals itself, so such a key misses on every lookup.
package key
