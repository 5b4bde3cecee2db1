package key

import (
	"cmp"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Composite fuses an ordered sequence of values into a single identity.
//
// Contract:
// - Immutability: the components and the hash never change after New.
// - Equality: equal composites always report equal hashes; different hashes
// always mean different composites.
// - Concurrency: safe for concurrent use once constructed.
type Composite struct {
	parts []any
	hash  uint64
}

// New creates a Composite from two or more components.
func New(first, second any, rest ...any) Composite {
	parts := make([]any, 0, 2+len(rest))
	parts = append(parts, first, second)
	parts = append(parts, rest...)

	return Composite{
		parts: parts,
		hash:  combine(parts),
	}
}

// Get returns the component at index i.
// It panics if i is out of range, like a slice index.
func (c Composite) Get(i int) any {
	return c.parts[i]
}

// Len returns the number of components.
func (c Composite) Len() int {
	return len(c.parts)
}

// Hash returns the combined hash computed at construction.
func (c Composite) Hash() uint64 {
	return c.hash
}

// Equal reports whether c and other hold equal components in the same order.
func (c Composite) Equal(other Composite) bool {
	if c.hash != other.hash {
		return false
	}
	if len(c.parts) != len(other.parts) {
		return false
	}
	for i := range c.parts {
		if !equalElement(c.parts[i], other.parts[i]) {
			return false
		}
	}
	return true
}

// Compare orders composites by their hash and returns -1, 0 or +1.
//
// This is not a semantic ordering of the components: distinct composites whose
// hashes collide compare as 0. Use it for bucketing, not for sorted output.
func (c Composite) Compare(other Composite) int {
	return cmp.Compare(c.hash, other.hash)
}

// String returns a debug representation such as "Composite[a b]".
func (c Composite) String() string {
	return fmt.Sprintf("Composite%v", c.parts)
}

// combine folds the element hashes in order, so New(a, b) and New(b, a)
// hash differently.
func combine(parts []any) uint64 {
	d := xxhash.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(len(parts)))
	_, _ = d.Write(buf[:]) // Digest.Write never returns an error

	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], hashElement(p))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
