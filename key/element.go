package key

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hasher lets a component define value equality instead of the default rules.
//
// Contract:
// - Consistency: if a.Equal(b) then a.Hash() == b.Hash().
// - Symmetry: Equal must be symmetric for values of the same type.
// - Concurrency: implementations must be safe for concurrent use.
type Hasher interface {
	Hash() uint64
	Equal(other any) bool
}

var seed = maphash.MakeSeed()

const (
	// nilHash is the hash of a nil component.
	nilHash uint64 = 0x9e3779b97f4a7c15
	// nanHash is the hash of every NaN, at any depth.
	nanHash uint64 = 0x7ff8000000000001
)

// maxDepth bounds how many pointers, slices, maps and interfaces hashDeep
// follows. Cyclic values are cut off at the same depth on both sides of an
// equality, so their hashes still agree.
const maxDepth = 8

func hashElement(v any) uint64 {
	if v == nil {
		return nilHash
	}
	if h, ok := v.(Hasher); ok {
		return h.Hash()
	}
	if s, ok := v.(string); ok {
		return xxhash.Sum64String(s)
	}
	rv := reflect.ValueOf(v)
	if isNaN(rv) {
		return nanHash
	}
	if rv.Comparable() {
		return maphash.Comparable(seed, v)
	}
	return hashDeep(rv)
}

func equalElement(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if h, ok := a.(Hasher); ok {
		return h.Equal(b)
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if isNaN(va) && isNaN(vb) {
		return true
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// isNaN reports whether v is a float or complex NaN.
func isNaN(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return math.IsNaN(real(c)) || math.IsNaN(imag(c))
	}
	return false
}

// hashDeep hashes a non-comparable value following the same structure that
// reflect.DeepEqual compares, so DeepEqual values hash alike. Floats fold -0
// into +0 and every NaN into one value; non-nil funcs hash by type only.
func hashDeep(v reflect.Value) uint64 {
	w := walker{d: xxhash.New()}
	w.value(v, 0)
	return w.d.Sum64()
}

type walker struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (w *walker) word(u uint64) {
	binary.LittleEndian.PutUint64(w.buf[:], u)
	_, _ = w.d.Write(w.buf[:])
}

func (w *walker) float(f float64) {
	switch {
	case math.IsNaN(f):
		w.word(nanHash)
	case f == 0:
		w.word(0)
	default:
		w.word(math.Float64bits(f))
	}
}

func (w *walker) value(v reflect.Value, depth int) {
	if !v.IsValid() {
		w.word(nilHash)
		return
	}
	_, _ = w.d.WriteString(v.Type().String())

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			w.word(1)
		} else {
			w.word(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.word(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.word(v.Uint())
	case reflect.Float32, reflect.Float64:
		w.float(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		w.float(real(c))
		w.float(imag(c))
	case reflect.String:
		w.word(uint64(v.Len()))
		_, _ = w.d.WriteString(v.String())
	case reflect.Array:
		for i := range v.Len() {
			w.value(v.Index(i), depth)
		}
	case reflect.Struct:
		for i := range v.NumField() {
			w.value(v.Field(i), depth)
		}
	case reflect.Slice:
		w.word(uint64(v.Len()))
		if depth >= maxDepth {
			return
		}
		for i := range v.Len() {
			w.value(v.Index(i), depth+1)
		}
	case reflect.Map:
		w.word(uint64(v.Len()))
		if depth >= maxDepth {
			return
		}
		// Entries are hashed separately and summed so that iteration order
		// does not matter.
		var sum uint64
		iter := v.MapRange()
		for iter.Next() {
			entry := walker{d: xxhash.New()}
			entry.value(iter.Key(), depth+1)
			entry.value(iter.Value(), depth+1)
			sum += entry.d.Sum64()
		}
		w.word(sum)
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			w.word(nilHash)
			return
		}
		if depth >= maxDepth {
			return
		}
		w.value(v.Elem(), depth+1)
	case reflect.Func:
		if v.IsNil() {
			w.word(nilHash)
		}
	case reflect.Chan, reflect.UnsafePointer:
		w.word(uint64(v.Pointer()))
	}
}
