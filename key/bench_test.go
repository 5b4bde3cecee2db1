package key

import "testing"

// BenchmarkNew_Strings measures construction with string components.
func BenchmarkNew_Strings(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = New("loader", "key")
	}
}

// BenchmarkNew_Pointer measures construction with a pointer component.
func BenchmarkNew_Pointer(b *testing.B) {
	p := &point{X: 1}
	for i := 0; i < b.N; i++ {
		_ = New(p, 42)
	}
}

// BenchmarkNew_Slice measures construction with a non-comparable component.
func BenchmarkNew_Slice(b *testing.B) {
	s := []int{1, 2, 3}
	for i := 0; i < b.N; i++ {
		_ = New("loader", s)
	}
}

// BenchmarkEqual measures equality of separately built composites.
func BenchmarkEqual(b *testing.B) {
	x := New("loader", "key", 1)
	y := New("loader", "key", 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.Equal(y)
	}
}
