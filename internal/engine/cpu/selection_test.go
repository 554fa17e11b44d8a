package cpu

import (
	"math"
	"testing"
)

func TestSelect(t *testing.T) {
	eng := New()

	cond := []float32{1, 0, 1}
	ifv := []float32{10, 20, 30}
	elsev := []float32{100, 200, 300}
	dst := make([]float32, 3)

	eng.Select(dst, cond, ifv, elsev, 3)

	want := []float32{10, 200, 30}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestSelectNonzeroTruthy(t *testing.T) {
	// Any nonzero condition is truthy, including negatives and NaN;
	// both zeroes are falsy.
	eng := New()

	nan := float32(math.NaN())
	cond := []float32{-1, 0.5, nan, 0, float32(math.Copysign(0, -1))}
	ifv := []float32{1, 1, 1, 1, 1}
	elsev := []float32{2, 2, 2, 2, 2}
	dst := make([]float32, 5)

	eng.Select(dst, cond, ifv, elsev, 5)

	want := []float32{1, 1, 1, 2, 2}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}
