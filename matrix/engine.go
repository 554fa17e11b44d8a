// Copyright 2026 The cudalearn Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

// Engine is the contract every compute engine implements.
//
// All operations are pure: they read the input buffers, write the designated
// output buffer and hold no state between calls. Extents are passed
// explicitly; buffers may be larger than the extent they are used with, and
// every buffer must satisfy len(buf) >= the extent the operation touches.
// Preconditions (matching lengths, valid row ranges) are the caller's
// responsibility; floating-point domain errors propagate as NaN/Inf per
// IEEE-754 and are never trapped.
//
// In-place use (dst aliasing an input) is safe only for the strictly
// element-local operations: the element-wise, broadcast and Select families.
// Transpose, the reductions and the row-movement operations require
// physically distinct source and destination buffers.
//
// Implementations:
//   - CPU: pure Go worker-pool engine (backend/cpu)
//   - WebGPU: WGSL compute shaders (backend/webgpu, Windows)
type Engine interface {
	// Element-wise arithmetic, matrix-matrix and matrix-scalar forms.
	Add(dst, a, b []float32, n int)
	Sub(dst, a, b []float32, n int)
	Mul(dst, a, b []float32, n int)
	Div(dst, a, b []float32, n int)
	AddScalar(dst, src []float32, s float32, n int)
	SubScalar(dst, src []float32, s float32, n int)
	MulScalar(dst, src []float32, s float32, n int)
	DivScalar(dst, src []float32, s float32, n int)

	// Element-wise comparison; outputs are 1.0 where the predicate holds,
	// 0.0 elsewhere.
	Less(dst, a, b []float32, n int)
	Greater(dst, a, b []float32, n int)
	Equal(dst, a, b []float32, n int)
	LessScalar(dst, src []float32, s float32, n int)
	GreaterScalar(dst, src []float32, s float32, n int)
	EqualScalar(dst, src []float32, s float32, n int)

	// Element-wise min/max.
	MinElem(dst, a, b []float32, n int)
	MaxElem(dst, a, b []float32, n int)
	MinScalar(dst, src []float32, s float32, n int)
	MaxScalar(dst, src []float32, s float32, n int)

	// Element-wise unary math.
	Sign(dst, src []float32, n int)
	Abs(dst, src []float32, n int)
	Reciprocal(dst, src []float32, n int)
	Sqrt(dst, src []float32, n int)
	Exp(dst, src []float32, n int)
	Log(dst, src []float32, n int)
	Softplus(dst, src []float32, n int)
	Gamma(dst, src []float32, n int)
	Lgamma(dst, src []float32, n int)
	Sigmoid(dst, src []float32, n int)
	Tanh(dst, src []float32, n int)

	// Pow raises each element to a fixed exponent; PowElem takes the
	// exponent per element from b.
	Pow(dst, src []float32, p float32, n int)
	PowElem(dst, a, b []float32, n int)

	// Shrink applies soft-threshold shrinkage with threshold alpha:
	// x > 0 ? max(0, x-alpha) : min(0, x+alpha).
	Shrink(dst, src []float32, alpha float32, n int)

	// Broadcast: combine a width x height matrix with a column vector
	// (length height, replicated across columns) or a row vector (length
	// width, replicated down rows).
	AddColVector(dst, m, v []float32, width, height int)
	MulColVector(dst, m, v []float32, width, height int)
	DivColVector(dst, m, v []float32, width, height int)
	AddScaledColVector(dst, m, v []float32, alpha float32, width, height int)
	AddRowVector(dst, m, v []float32, width, height int)
	MulRowVector(dst, m, v []float32, width, height int)
	DivRowVector(dst, m, v []float32, width, height int)
	AddScaledRowVector(dst, m, v []float32, alpha float32, width, height int)

	// Axis reductions. Column reductions write one value per column
	// (len(dst) >= width), row reductions one per row (len(dst) >= height).
	// Arg variants write the index of the first occurrence as float32.
	ColumnMin(dst, m []float32, width, height int)
	ColumnMax(dst, m []float32, width, height int)
	ColumnArgmin(dst, m []float32, width, height int)
	ColumnArgmax(dst, m []float32, width, height int)
	RowMin(dst, m []float32, width, height int)
	RowMax(dst, m []float32, width, height int)
	RowArgmin(dst, m []float32, width, height int)
	RowArgmax(dst, m []float32, width, height int)

	// Transpose writes the height x width transpose of a width x height
	// source: dst[i,j] = src[j,i].
	Transpose(dst, src []float32, width, height int)

	// GetRowSlice copies rows [start, end) of a width x height source into
	// a compact width x (end-start) destination; SetRowSlice is the
	// inverse, writing a compact source into rows [start, end) of a
	// width x height destination. Precondition: 0 <= start < end <= height.
	GetRowSlice(dst, src []float32, start, end, width, height int)
	SetRowSlice(dst, src []float32, start, end, width, height int)

	// SelectRows gathers rows of a nSrcRows x nCols source into an
	// nRowIs x nCols destination; destination row r is source row
	// resolve(indices[r]). Invalid indices produce a NaN-filled row.
	SelectRows(dst, src, indices []float32, nRowIs, nSrcRows, nCols int)

	// SetSelectedRows scatters the rows of an nRowIs x nCols source into a
	// nDstRows x nCols destination at the resolved target rows. Invalid
	// indices skip the write.
	SetSelectedRows(dst, src, indices []float32, nRowIs, nDstRows, nCols int)

	// Select picks per element: dst[i] = cond[i] != 0 ? ifv[i] : elsev[i].
	Select(dst, cond, ifv, elsev []float32, n int)

	// Name identifies the engine.
	Name() string
}
