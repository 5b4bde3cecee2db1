package cache

import (
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/memocache/key"
)

type entry struct {
	key   key.Composite
	value any
}

// store maps composite keys to values. Buckets are indexed by the composite
// hash and hold immutable entry slices, so readers never lock. Writers must
// hold the cache mutex; they publish a fresh slice for every change.
type store struct {
	buckets sync.Map // uint64 -> []entry
	size    atomic.Int64
}

func (s *store) bucket(h uint64) []entry {
	b, ok := s.buckets.Load(h)
	if !ok {
		return nil
	}
	return b.([]entry)
}

func (s *store) load(k key.Composite) (any, bool) {
	for _, e := range s.bucket(k.Hash()) {
		if e.key.Equal(k) {
			return e.value, true
		}
	}
	return nil, false
}

func (s *store) put(k key.Composite, v any) {
	old := s.bucket(k.Hash())
	next := make([]entry, 0, len(old)+1)
	replaced := false
	for _, e := range old {
		if !replaced && e.key.Equal(k) {
			next = append(next, entry{key: k, value: v})
			replaced = true
			continue
		}
		next = append(next, e)
	}
	if !replaced {
		next = append(next, entry{key: k, value: v})
		s.size.Add(1)
	}
	s.buckets.Store(k.Hash(), next)
}

func (s *store) delete(k key.Composite) bool {
	h := k.Hash()
	old := s.bucket(h)
	for i, e := range old {
		if !e.key.Equal(k) {
			continue
		}
		if len(old) == 1 {
			s.buckets.Delete(h)
		} else {
			next := make([]entry, 0, len(old)-1)
			next = append(next, old[:i]...)
			next = append(next, old[i+1:]...)
			s.buckets.Store(h, next)
		}
		s.size.Add(-1)
		return true
	}
	return false
}

func (s *store) clear() {
	s.buckets.Clear()
	s.size.Store(0)
}

func (s *store) len() int {
	return int(s.size.Load())
}
