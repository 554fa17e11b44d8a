//go:build windows

package webgpu

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shaia/cudalearn/internal/engine/cpu"
)

// newEngine skips the test when no WebGPU adapter is available.
func newEngine(t *testing.T) *Engine {
	t.Helper()
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}
	eng, err := New()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	t.Cleanup(eng.Release)
	return eng
}

func randSlice(rng *rand.Rand, n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = rng.Float32()*20 - 10
	}
	return s
}

// compareSlices checks element-wise equality with tolerance; NaNs match NaNs.
func compareSlices(t *testing.T, name string, expected, actual []float32, tolerance float64) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("%s: length mismatch: expected %d, got %d", name, len(expected), len(actual))
	}
	for i := range expected {
		e, a := float64(expected[i]), float64(actual[i])
		if math.IsNaN(e) && math.IsNaN(a) {
			continue
		}
		if math.IsInf(e, 0) || math.IsInf(a, 0) {
			if e == a {
				continue
			}
			t.Errorf("%s: mismatch at %d: expected %v, got %v", name, i, e, a)
			continue
		}
		if math.Abs(e-a) > tolerance {
			t.Errorf("%s: mismatch at %d: expected %v, got %v", name, i, e, a)
		}
	}
}

func TestElementwiseParity(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(1))

	const n = 1000
	a := randSlice(rng, n)
	b := randSlice(rng, n)

	gpuOut := make([]float32, n)
	cpuOut := make([]float32, n)

	eng.Add(gpuOut, a, b, n)
	ref.Add(cpuOut, a, b, n)
	compareSlices(t, "Add", cpuOut, gpuOut, 1e-5)

	eng.Sub(gpuOut, a, b, n)
	ref.Sub(cpuOut, a, b, n)
	compareSlices(t, "Sub", cpuOut, gpuOut, 1e-5)

	eng.Mul(gpuOut, a, b, n)
	ref.Mul(cpuOut, a, b, n)
	compareSlices(t, "Mul", cpuOut, gpuOut, 1e-4)

	eng.Div(gpuOut, a, b, n)
	ref.Div(cpuOut, a, b, n)
	compareSlices(t, "Div", cpuOut, gpuOut, 1e-3)

	eng.MinElem(gpuOut, a, b, n)
	ref.MinElem(cpuOut, a, b, n)
	compareSlices(t, "MinElem", cpuOut, gpuOut, 0)

	eng.MaxElem(gpuOut, a, b, n)
	ref.MaxElem(cpuOut, a, b, n)
	compareSlices(t, "MaxElem", cpuOut, gpuOut, 0)

	eng.Less(gpuOut, a, b, n)
	ref.Less(cpuOut, a, b, n)
	compareSlices(t, "Less", cpuOut, gpuOut, 0)

	eng.Greater(gpuOut, a, b, n)
	ref.Greater(cpuOut, a, b, n)
	compareSlices(t, "Greater", cpuOut, gpuOut, 0)

	eng.Equal(gpuOut, a, a, n)
	ref.Equal(cpuOut, a, a, n)
	compareSlices(t, "Equal", cpuOut, gpuOut, 0)

	// Keep exponents tame so pow stays finite.
	exps := make([]float32, n)
	for i := range exps {
		exps[i] = float32(i%5) - 2
	}
	base := make([]float32, n)
	for i := range base {
		base[i] = float32(math.Abs(float64(a[i]))) + 0.5
	}
	eng.PowElem(gpuOut, base, exps, n)
	ref.PowElem(cpuOut, base, exps, n)
	compareSlices(t, "PowElem", cpuOut, gpuOut, 1e-2)
}

func TestScalarParity(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(2))

	const n = 777
	src := randSlice(rng, n)
	const s = float32(2.5)

	gpuOut := make([]float32, n)
	cpuOut := make([]float32, n)

	eng.AddScalar(gpuOut, src, s, n)
	ref.AddScalar(cpuOut, src, s, n)
	compareSlices(t, "AddScalar", cpuOut, gpuOut, 1e-5)

	eng.SubScalar(gpuOut, src, s, n)
	ref.SubScalar(cpuOut, src, s, n)
	compareSlices(t, "SubScalar", cpuOut, gpuOut, 1e-5)

	eng.MulScalar(gpuOut, src, s, n)
	ref.MulScalar(cpuOut, src, s, n)
	compareSlices(t, "MulScalar", cpuOut, gpuOut, 1e-4)

	eng.DivScalar(gpuOut, src, s, n)
	ref.DivScalar(cpuOut, src, s, n)
	compareSlices(t, "DivScalar", cpuOut, gpuOut, 1e-4)

	eng.MinScalar(gpuOut, src, s, n)
	ref.MinScalar(cpuOut, src, s, n)
	compareSlices(t, "MinScalar", cpuOut, gpuOut, 0)

	eng.MaxScalar(gpuOut, src, s, n)
	ref.MaxScalar(cpuOut, src, s, n)
	compareSlices(t, "MaxScalar", cpuOut, gpuOut, 0)

	eng.LessScalar(gpuOut, src, s, n)
	ref.LessScalar(cpuOut, src, s, n)
	compareSlices(t, "LessScalar", cpuOut, gpuOut, 0)

	eng.GreaterScalar(gpuOut, src, s, n)
	ref.GreaterScalar(cpuOut, src, s, n)
	compareSlices(t, "GreaterScalar", cpuOut, gpuOut, 0)

	eng.EqualScalar(gpuOut, src, src[0], n)
	ref.EqualScalar(cpuOut, src, src[0], n)
	compareSlices(t, "EqualScalar", cpuOut, gpuOut, 0)

	eng.Pow(gpuOut, src, 2, n)
	ref.Pow(cpuOut, src, 2, n)
	compareSlices(t, "Pow", cpuOut, gpuOut, 1e-3)

	eng.Shrink(gpuOut, src, 0.5, n)
	ref.Shrink(cpuOut, src, 0.5, n)
	compareSlices(t, "Shrink", cpuOut, gpuOut, 1e-5)
}

func TestUnaryParity(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(3))

	const n = 513
	src := randSlice(rng, n)
	pos := make([]float32, n)
	for i, v := range src {
		pos[i] = float32(math.Abs(float64(v))) + 0.1
	}

	gpuOut := make([]float32, n)
	cpuOut := make([]float32, n)

	eng.Sign(gpuOut, src, n)
	ref.Sign(cpuOut, src, n)
	compareSlices(t, "Sign", cpuOut, gpuOut, 0)

	eng.Abs(gpuOut, src, n)
	ref.Abs(cpuOut, src, n)
	compareSlices(t, "Abs", cpuOut, gpuOut, 0)

	eng.Reciprocal(gpuOut, pos, n)
	ref.Reciprocal(cpuOut, pos, n)
	compareSlices(t, "Reciprocal", cpuOut, gpuOut, 1e-4)

	eng.Sqrt(gpuOut, pos, n)
	ref.Sqrt(cpuOut, pos, n)
	compareSlices(t, "Sqrt", cpuOut, gpuOut, 1e-4)

	eng.Exp(gpuOut, src, n)
	ref.Exp(cpuOut, src, n)
	compareSlices(t, "Exp", cpuOut, gpuOut, 1e-1)

	eng.Log(gpuOut, pos, n)
	ref.Log(cpuOut, pos, n)
	compareSlices(t, "Log", cpuOut, gpuOut, 1e-4)

	eng.Softplus(gpuOut, src, n)
	ref.Softplus(cpuOut, src, n)
	compareSlices(t, "Softplus", cpuOut, gpuOut, 1e-3)

	eng.Sigmoid(gpuOut, src, n)
	ref.Sigmoid(cpuOut, src, n)
	compareSlices(t, "Sigmoid", cpuOut, gpuOut, 1e-4)

	eng.Tanh(gpuOut, src, n)
	ref.Tanh(cpuOut, src, n)
	compareSlices(t, "Tanh", cpuOut, gpuOut, 1e-4)
}

func TestBroadcastParity(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(4))

	const width, height = 37, 53
	m := randSlice(rng, width*height)
	colVec := randSlice(rng, height)
	rowVec := randSlice(rng, width)

	gpuOut := make([]float32, width*height)
	cpuOut := make([]float32, width*height)

	eng.AddColVector(gpuOut, m, colVec, width, height)
	ref.AddColVector(cpuOut, m, colVec, width, height)
	compareSlices(t, "AddColVector", cpuOut, gpuOut, 1e-5)

	eng.MulColVector(gpuOut, m, colVec, width, height)
	ref.MulColVector(cpuOut, m, colVec, width, height)
	compareSlices(t, "MulColVector", cpuOut, gpuOut, 1e-4)

	eng.DivColVector(gpuOut, m, colVec, width, height)
	ref.DivColVector(cpuOut, m, colVec, width, height)
	compareSlices(t, "DivColVector", cpuOut, gpuOut, 1e-2)

	eng.AddScaledColVector(gpuOut, m, colVec, 0.5, width, height)
	ref.AddScaledColVector(cpuOut, m, colVec, 0.5, width, height)
	compareSlices(t, "AddScaledColVector", cpuOut, gpuOut, 1e-4)

	eng.AddRowVector(gpuOut, m, rowVec, width, height)
	ref.AddRowVector(cpuOut, m, rowVec, width, height)
	compareSlices(t, "AddRowVector", cpuOut, gpuOut, 1e-5)

	eng.MulRowVector(gpuOut, m, rowVec, width, height)
	ref.MulRowVector(cpuOut, m, rowVec, width, height)
	compareSlices(t, "MulRowVector", cpuOut, gpuOut, 1e-4)

	eng.DivRowVector(gpuOut, m, rowVec, width, height)
	ref.DivRowVector(cpuOut, m, rowVec, width, height)
	compareSlices(t, "DivRowVector", cpuOut, gpuOut, 1e-2)

	eng.AddScaledRowVector(gpuOut, m, rowVec, -1.5, width, height)
	ref.AddScaledRowVector(cpuOut, m, rowVec, -1.5, width, height)
	compareSlices(t, "AddScaledRowVector", cpuOut, gpuOut, 1e-4)
}

func TestReductionParity(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(5))

	// Odd extents exercise the ragged last lane of the 32-wide scan.
	const width, height = 41, 99
	m := randSlice(rng, width*height)

	gpuCol := make([]float32, width)
	cpuCol := make([]float32, width)
	gpuRow := make([]float32, height)
	cpuRow := make([]float32, height)

	eng.ColumnMin(gpuCol, m, width, height)
	ref.ColumnMin(cpuCol, m, width, height)
	compareSlices(t, "ColumnMin", cpuCol, gpuCol, 0)

	eng.ColumnMax(gpuCol, m, width, height)
	ref.ColumnMax(cpuCol, m, width, height)
	compareSlices(t, "ColumnMax", cpuCol, gpuCol, 0)

	eng.ColumnArgmin(gpuCol, m, width, height)
	ref.ColumnArgmin(cpuCol, m, width, height)
	compareSlices(t, "ColumnArgmin", cpuCol, gpuCol, 0)

	eng.ColumnArgmax(gpuCol, m, width, height)
	ref.ColumnArgmax(cpuCol, m, width, height)
	compareSlices(t, "ColumnArgmax", cpuCol, gpuCol, 0)

	eng.RowMin(gpuRow, m, width, height)
	ref.RowMin(cpuRow, m, width, height)
	compareSlices(t, "RowMin", cpuRow, gpuRow, 0)

	eng.RowMax(gpuRow, m, width, height)
	ref.RowMax(cpuRow, m, width, height)
	compareSlices(t, "RowMax", cpuRow, gpuRow, 0)

	eng.RowArgmin(gpuRow, m, width, height)
	ref.RowArgmin(cpuRow, m, width, height)
	compareSlices(t, "RowArgmin", cpuRow, gpuRow, 0)

	eng.RowArgmax(gpuRow, m, width, height)
	ref.RowArgmax(cpuRow, m, width, height)
	compareSlices(t, "RowArgmax", cpuRow, gpuRow, 0)
}

func TestArgTieBreak(t *testing.T) {
	eng := newEngine(t)

	// Duplicated minimum at rows 5 and 70 lands in different lanes of the
	// 32-wide scan; the first occurrence must win.
	const width, height = 1, 100
	m := make([]float32, height)
	for i := range m {
		m[i] = float32(i%7) + 1
	}
	m[5] = -3
	m[70] = -3

	dst := make([]float32, width)
	eng.ColumnArgmin(dst, m, width, height)
	if dst[0] != 5 {
		t.Errorf("ColumnArgmin = %v, want 5", dst[0])
	}
}

func TestTransposeParity(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(6))

	// 33x17 spans tile boundaries on both axes.
	for _, dims := range [][2]int{{8, 8}, {33, 17}, {64, 64}, {100, 3}} {
		width, height := dims[0], dims[1]
		src := randSlice(rng, width*height)
		gpuOut := make([]float32, width*height)
		cpuOut := make([]float32, width*height)

		eng.Transpose(gpuOut, src, width, height)
		ref.Transpose(cpuOut, src, width, height)
		compareSlices(t, "Transpose", cpuOut, gpuOut, 0)
	}
}

func TestRowSliceParity(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(7))

	const width, height = 29, 130
	const start, end = 33, 97
	src := randSlice(rng, width*height)

	gpuOut := make([]float32, width*(end-start))
	cpuOut := make([]float32, width*(end-start))

	eng.GetRowSlice(gpuOut, src, start, end, width, height)
	ref.GetRowSlice(cpuOut, src, start, end, width, height)
	compareSlices(t, "GetRowSlice", cpuOut, gpuOut, 0)

	// SetRowSlice must leave rows outside [start, end) untouched.
	gpuDst := randSlice(rng, width*height)
	cpuDst := make([]float32, width*height)
	copy(cpuDst, gpuDst)

	eng.SetRowSlice(gpuDst, gpuOut, start, end, width, height)
	ref.SetRowSlice(cpuDst, cpuOut, start, end, width, height)
	compareSlices(t, "SetRowSlice", cpuDst, gpuDst, 0)
}

func TestSelectRowsParity(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(8))

	const nSrcRows, nCols = 75, 17
	src := randSlice(rng, nSrcRows*nCols)

	// Mix of in-range, negative-wrapped and invalid indices.
	indices := []float32{3, 0, -1, 74, -75, 80, -76, 12}
	nRowIs := len(indices)

	gpuOut := make([]float32, nRowIs*nCols)
	cpuOut := make([]float32, nRowIs*nCols)

	eng.SelectRows(gpuOut, src, indices, nRowIs, nSrcRows, nCols)
	ref.SelectRows(cpuOut, src, indices, nRowIs, nSrcRows, nCols)
	compareSlices(t, "SelectRows", cpuOut, gpuOut, 0)
}

func TestSetSelectedRowsParity(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(9))

	const nDstRows, nCols = 60, 11
	indices := []float32{5, -1, 60, 0, -61, 33}
	nRowIs := len(indices)
	src := randSlice(rng, nRowIs*nCols)

	gpuDst := randSlice(rng, nDstRows*nCols)
	cpuDst := make([]float32, nDstRows*nCols)
	copy(cpuDst, gpuDst)

	eng.SetSelectedRows(gpuDst, src, indices, nRowIs, nDstRows, nCols)
	ref.SetSelectedRows(cpuDst, src, indices, nRowIs, nDstRows, nCols)
	compareSlices(t, "SetSelectedRows", cpuDst, gpuDst, 0)
}

func TestSelectParity(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()
	rng := rand.New(rand.NewSource(10))

	const n = 300
	cond := make([]float32, n)
	for i := range cond {
		cond[i] = float32(i % 2)
	}
	ifv := randSlice(rng, n)
	elsev := randSlice(rng, n)

	gpuOut := make([]float32, n)
	cpuOut := make([]float32, n)

	eng.Select(gpuOut, cond, ifv, elsev, n)
	ref.Select(cpuOut, cond, ifv, elsev, n)
	compareSlices(t, "Select", cpuOut, gpuOut, 0)
}

func TestLargeDispatch(t *testing.T) {
	eng := newEngine(t)
	ref := cpu.New()

	// Longer than maxGroups * wgSize so the grid-stride loop carries the
	// remainder.
	n := maxGroups*wgSize + 1234
	a := make([]float32, n)
	b := make([]float32, n)
	for i := range a {
		a[i] = float32(i % 101)
		b[i] = float32(i % 13)
	}

	gpuOut := make([]float32, n)
	cpuOut := make([]float32, n)

	eng.Add(gpuOut, a, b, n)
	ref.Add(cpuOut, a, b, n)
	compareSlices(t, "Add", cpuOut, gpuOut, 0)
}
