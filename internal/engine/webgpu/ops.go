//go:build windows

package webgpu

import (
	"math"
)

// matrix.Engine implementation. Kernel methods have no error returns by
// contract, so GPU failures (lost device, failed readback) panic with the
// operation name. Gamma and Lgamma have no WGSL intrinsic and are CPU-only.

func (e *Engine) binary(name, expr string, dst, a, b []float32, n int) {
	//nolint:gosec // G115: extents are non-negative
	err := e.run(name, binaryShader(expr), [][]float32{a[:n], b[:n]}, dst, n, false,
		[]uint32{uint32(n)}, elementGroups(n), 1)
	if err != nil {
		panic("webgpu: " + name + ": " + err.Error())
	}
}

func (e *Engine) unary(name, expr string, dst, src []float32, n int) {
	//nolint:gosec // G115: extents are non-negative
	err := e.run(name, unaryShader(expr), [][]float32{src[:n]}, dst, n, false,
		[]uint32{uint32(n)}, elementGroups(n), 1)
	if err != nil {
		panic("webgpu: " + name + ": " + err.Error())
	}
}

func (e *Engine) unaryScalar(name, expr string, dst, src []float32, s float32, n int) {
	//nolint:gosec // G115: extents are non-negative
	err := e.run(name, unaryScalarShader(expr), [][]float32{src[:n]}, dst, n, false,
		[]uint32{uint32(n), math.Float32bits(s)}, elementGroups(n), 1)
	if err != nil {
		panic("webgpu: " + name + ": " + err.Error())
	}
}

func (e *Engine) broadcast(name, vecIndex, expr string, dst, m, v []float32, alpha float32, width, height int) {
	n := width * height
	//nolint:gosec // G115: extents are non-negative
	err := e.run(name, broadcastShader(vecIndex, expr), [][]float32{m[:n], v}, dst, n, false,
		[]uint32{uint32(n), uint32(height), math.Float32bits(alpha)}, elementGroups(n), 1)
	if err != nil {
		panic("webgpu: " + name + ": " + err.Error())
	}
}

func (e *Engine) reduce(name string, axisCount, axisBase, axisStride, sentinel, cmp, result string,
	dst, m []float32, width, height, nOut int) {
	code := reduceShader(axisCount, axisBase, axisStride, sentinel, cmp, result)
	//nolint:gosec // G115: extents are non-negative
	err := e.run(name, code, [][]float32{m[:width*height]}, dst, nOut, false,
		[]uint32{uint32(width), uint32(height)}, uint32(nOut), 1)
	if err != nil {
		panic("webgpu: " + name + ": " + err.Error())
	}
}

// Add computes dst[i] = a[i] + b[i].
func (e *Engine) Add(dst, a, b []float32, n int) { e.binary("add", "a[i] + b[i]", dst, a, b, n) }

// Sub computes dst[i] = a[i] - b[i].
func (e *Engine) Sub(dst, a, b []float32, n int) { e.binary("sub", "a[i] - b[i]", dst, a, b, n) }

// Mul computes dst[i] = a[i] * b[i].
func (e *Engine) Mul(dst, a, b []float32, n int) { e.binary("mul", "a[i] * b[i]", dst, a, b, n) }

// Div computes dst[i] = a[i] / b[i].
func (e *Engine) Div(dst, a, b []float32, n int) { e.binary("div", "a[i] / b[i]", dst, a, b, n) }

// AddScalar computes dst[i] = src[i] + s.
func (e *Engine) AddScalar(dst, src []float32, s float32, n int) {
	e.unaryScalar("add_scalar", "x + s", dst, src, s, n)
}

// SubScalar computes dst[i] = src[i] - s.
func (e *Engine) SubScalar(dst, src []float32, s float32, n int) {
	e.unaryScalar("sub_scalar", "x - s", dst, src, s, n)
}

// MulScalar computes dst[i] = src[i] * s.
func (e *Engine) MulScalar(dst, src []float32, s float32, n int) {
	e.unaryScalar("mul_scalar", "x * s", dst, src, s, n)
}

// DivScalar computes dst[i] = src[i] / s.
func (e *Engine) DivScalar(dst, src []float32, s float32, n int) {
	e.unaryScalar("div_scalar", "x / s", dst, src, s, n)
}

// Less computes dst[i] = a[i] < b[i] ? 1 : 0.
func (e *Engine) Less(dst, a, b []float32, n int) {
	e.binary("less", "select(0.0, 1.0, a[i] < b[i])", dst, a, b, n)
}

// Greater computes dst[i] = a[i] > b[i] ? 1 : 0.
func (e *Engine) Greater(dst, a, b []float32, n int) {
	e.binary("greater", "select(0.0, 1.0, a[i] > b[i])", dst, a, b, n)
}

// Equal computes dst[i] = a[i] == b[i] ? 1 : 0.
func (e *Engine) Equal(dst, a, b []float32, n int) {
	e.binary("equal", "select(0.0, 1.0, a[i] == b[i])", dst, a, b, n)
}

// LessScalar computes dst[i] = src[i] < s ? 1 : 0.
func (e *Engine) LessScalar(dst, src []float32, s float32, n int) {
	e.unaryScalar("less_scalar", "select(0.0, 1.0, x < s)", dst, src, s, n)
}

// GreaterScalar computes dst[i] = src[i] > s ? 1 : 0.
func (e *Engine) GreaterScalar(dst, src []float32, s float32, n int) {
	e.unaryScalar("greater_scalar", "select(0.0, 1.0, x > s)", dst, src, s, n)
}

// EqualScalar computes dst[i] = src[i] == s ? 1 : 0.
func (e *Engine) EqualScalar(dst, src []float32, s float32, n int) {
	e.unaryScalar("equal_scalar", "select(0.0, 1.0, x == s)", dst, src, s, n)
}

// MinElem computes dst[i] = min(a[i], b[i]).
func (e *Engine) MinElem(dst, a, b []float32, n int) {
	e.binary("min_elem", "min(a[i], b[i])", dst, a, b, n)
}

// MaxElem computes dst[i] = max(a[i], b[i]).
func (e *Engine) MaxElem(dst, a, b []float32, n int) {
	e.binary("max_elem", "max(a[i], b[i])", dst, a, b, n)
}

// MinScalar computes dst[i] = min(src[i], s).
func (e *Engine) MinScalar(dst, src []float32, s float32, n int) {
	e.unaryScalar("min_scalar", "min(x, s)", dst, src, s, n)
}

// MaxScalar computes dst[i] = max(src[i], s).
func (e *Engine) MaxScalar(dst, src []float32, s float32, n int) {
	e.unaryScalar("max_scalar", "max(x, s)", dst, src, s, n)
}

// Sign computes the sign of each element.
func (e *Engine) Sign(dst, src []float32, n int) { e.unary("sign", "sign(x)", dst, src, n) }

// Abs computes dst[i] = |src[i]|.
func (e *Engine) Abs(dst, src []float32, n int) { e.unary("abs", "abs(x)", dst, src, n) }

// Reciprocal computes dst[i] = 1 / src[i].
func (e *Engine) Reciprocal(dst, src []float32, n int) {
	e.unary("reciprocal", "1.0 / x", dst, src, n)
}

// Sqrt computes dst[i] = sqrt(src[i]).
func (e *Engine) Sqrt(dst, src []float32, n int) { e.unary("sqrt", "sqrt(x)", dst, src, n) }

// Exp computes dst[i] = exp(src[i]).
func (e *Engine) Exp(dst, src []float32, n int) { e.unary("exp", "exp(x)", dst, src, n) }

// Log computes dst[i] = ln(src[i]).
func (e *Engine) Log(dst, src []float32, n int) { e.unary("log", "log(x)", dst, src, n) }

// Softplus computes log(1 + exp(x)) branch-stably.
func (e *Engine) Softplus(dst, src []float32, n int) {
	e.unary("softplus", "select(log(1.0 + exp(x)), x + log(1.0 + exp(-x)), x > 0.0)", dst, src, n)
}

// Gamma is not available on the GPU engine; use the CPU engine.
func (e *Engine) Gamma(dst, src []float32, n int) {
	panic("webgpu: Gamma not implemented")
}

// Lgamma is not available on the GPU engine; use the CPU engine.
func (e *Engine) Lgamma(dst, src []float32, n int) {
	panic("webgpu: Lgamma not implemented")
}

// Sigmoid computes dst[i] = 1 / (1 + exp(-src[i])).
func (e *Engine) Sigmoid(dst, src []float32, n int) {
	e.unary("sigmoid", "1.0 / (1.0 + exp(-x))", dst, src, n)
}

// Tanh computes the hyperbolic tangent as 1 - 2/(exp(2x) + 1).
func (e *Engine) Tanh(dst, src []float32, n int) {
	e.unary("tanh", "1.0 - 2.0 / (exp(2.0 * x) + 1.0)", dst, src, n)
}

// Pow raises each element to the fixed exponent p.
func (e *Engine) Pow(dst, src []float32, p float32, n int) {
	e.unaryScalar("pow", "pow(x, s)", dst, src, p, n)
}

// PowElem computes dst[i] = a[i] ** b[i].
func (e *Engine) PowElem(dst, a, b []float32, n int) {
	e.binary("pow_elem", "pow(a[i], b[i])", dst, a, b, n)
}

// Shrink applies soft-threshold shrinkage with threshold alpha.
func (e *Engine) Shrink(dst, src []float32, alpha float32, n int) {
	e.unaryScalar("shrink", "select(min(0.0, x + s), max(0.0, x - s), x > 0.0)", dst, src, alpha, n)
}

// AddColVector adds a column vector to every column of m.
func (e *Engine) AddColVector(dst, m, v []float32, width, height int) {
	e.broadcast("add_col_vec", "i % params.height", "m[i] + y", dst, m, v, 0, width, height)
}

// MulColVector multiplies every column of m by a column vector.
func (e *Engine) MulColVector(dst, m, v []float32, width, height int) {
	e.broadcast("mul_col_vec", "i % params.height", "m[i] * y", dst, m, v, 0, width, height)
}

// DivColVector divides every column of m by a column vector.
func (e *Engine) DivColVector(dst, m, v []float32, width, height int) {
	e.broadcast("div_col_vec", "i % params.height", "m[i] / y", dst, m, v, 0, width, height)
}

// AddScaledColVector adds alpha * v to every column of m.
func (e *Engine) AddScaledColVector(dst, m, v []float32, alpha float32, width, height int) {
	e.broadcast("add_scaled_col_vec", "i % params.height", "m[i] + params.alpha * y", dst, m, v, alpha, width, height)
}

// AddRowVector adds a row vector to every row of m.
func (e *Engine) AddRowVector(dst, m, v []float32, width, height int) {
	e.broadcast("add_row_vec", "i / params.height", "m[i] + y", dst, m, v, 0, width, height)
}

// MulRowVector multiplies every row of m by a row vector.
func (e *Engine) MulRowVector(dst, m, v []float32, width, height int) {
	e.broadcast("mul_row_vec", "i / params.height", "m[i] * y", dst, m, v, 0, width, height)
}

// DivRowVector divides every row of m by a row vector.
func (e *Engine) DivRowVector(dst, m, v []float32, width, height int) {
	e.broadcast("div_row_vec", "i / params.height", "m[i] / y", dst, m, v, 0, width, height)
}

// AddScaledRowVector adds alpha * v to every row of m.
func (e *Engine) AddScaledRowVector(dst, m, v []float32, alpha float32, width, height int) {
	e.broadcast("add_scaled_row_vec", "i / params.height", "m[i] + params.alpha * y", dst, m, v, alpha, width, height)
}

// ColumnMin writes the minimum of each column.
func (e *Engine) ColumnMin(dst, m []float32, width, height int) {
	e.reduce("col_min", colCount, colBase, colStride, posInfBits, "<", "r", dst, m, width, height, width)
}

// ColumnMax writes the maximum of each column.
func (e *Engine) ColumnMax(dst, m []float32, width, height int) {
	e.reduce("col_max", colCount, colBase, colStride, negInfBits, ">", "r", dst, m, width, height, width)
}

// ColumnArgmin writes the row index of each column's first minimum.
func (e *Engine) ColumnArgmin(dst, m []float32, width, height int) {
	e.reduce("col_argmin", colCount, colBase, colStride, posInfBits, "<", "f32(r_pos)", dst, m, width, height, width)
}

// ColumnArgmax writes the row index of each column's first maximum.
func (e *Engine) ColumnArgmax(dst, m []float32, width, height int) {
	e.reduce("col_argmax", colCount, colBase, colStride, negInfBits, ">", "f32(r_pos)", dst, m, width, height, width)
}

// RowMin writes the minimum of each row.
func (e *Engine) RowMin(dst, m []float32, width, height int) {
	e.reduce("row_min", rowCount, rowBase, rowStride, posInfBits, "<", "r", dst, m, width, height, height)
}

// RowMax writes the maximum of each row.
func (e *Engine) RowMax(dst, m []float32, width, height int) {
	e.reduce("row_max", rowCount, rowBase, rowStride, negInfBits, ">", "r", dst, m, width, height, height)
}

// RowArgmin writes the column index of each row's first minimum.
func (e *Engine) RowArgmin(dst, m []float32, width, height int) {
	e.reduce("row_argmin", rowCount, rowBase, rowStride, posInfBits, "<", "f32(r_pos)", dst, m, width, height, height)
}

// RowArgmax writes the column index of each row's first maximum.
func (e *Engine) RowArgmax(dst, m []float32, width, height int) {
	e.reduce("row_argmax", rowCount, rowBase, rowStride, negInfBits, ">", "f32(r_pos)", dst, m, width, height, height)
}

// Transpose writes the height x width transpose of a width x height source.
func (e *Engine) Transpose(dst, src []float32, width, height int) {
	n := width * height
	tilesX := (width + 31) / 32
	tilesY := (height + 31) / 32
	//nolint:gosec // G115: extents are non-negative
	err := e.run("transpose", transposeShader, [][]float32{src[:n]}, dst, n, false,
		[]uint32{uint32(width), uint32(height)}, uint32(tilesX), uint32(tilesY))
	if err != nil {
		panic("webgpu: Transpose: " + err.Error())
	}
}

// GetRowSlice copies rows [start, end) of the source into a compact buffer.
func (e *Engine) GetRowSlice(dst, src []float32, start, end, width, height int) {
	sliceH := end - start
	//nolint:gosec // G115: extents are non-negative
	err := e.run("get_row_slice", getRowSliceShader, [][]float32{src[:width*height]},
		dst, width*sliceH, false,
		[]uint32{uint32(start), uint32(end), uint32(width), uint32(height)},
		uint32((width+15)/16), uint32((sliceH+15)/16))
	if err != nil {
		panic("webgpu: GetRowSlice: " + err.Error())
	}
}

// SetRowSlice writes a compact buffer into rows [start, end) of dst.
func (e *Engine) SetRowSlice(dst, src []float32, start, end, width, height int) {
	sliceH := end - start
	//nolint:gosec // G115: extents are non-negative
	err := e.run("set_row_slice", setRowSliceShader, [][]float32{src[:width*sliceH]},
		dst, width*height, true,
		[]uint32{uint32(start), uint32(end), uint32(width), uint32(height)},
		uint32((width+15)/16), uint32((sliceH+15)/16))
	if err != nil {
		panic("webgpu: SetRowSlice: " + err.Error())
	}
}

// SelectRows gathers rows by index list; invalid indices yield NaN rows.
func (e *Engine) SelectRows(dst, src, indices []float32, nRowIs, nSrcRows, nCols int) {
	//nolint:gosec // G115: extents are non-negative
	err := e.run("select_rows", selectRowsShader,
		[][]float32{src[:nSrcRows*nCols], indices[:nRowIs]}, dst, nRowIs*nCols, false,
		[]uint32{uint32(nRowIs), uint32(nSrcRows), uint32(nCols)},
		uint32((nRowIs+31)/32), 1)
	if err != nil {
		panic("webgpu: SelectRows: " + err.Error())
	}
}

// SetSelectedRows scatters rows through the index list; invalid indices
// skip the write.
func (e *Engine) SetSelectedRows(dst, src, indices []float32, nRowIs, nDstRows, nCols int) {
	//nolint:gosec // G115: extents are non-negative
	err := e.run("set_selected_rows", setSelectedRowsShader,
		[][]float32{src[:nRowIs*nCols], indices[:nRowIs]}, dst, nDstRows*nCols, true,
		[]uint32{uint32(nRowIs), uint32(nDstRows), uint32(nCols)},
		uint32((nRowIs+31)/32), 1)
	if err != nil {
		panic("webgpu: SetSelectedRows: " + err.Error())
	}
}

// Select picks per element: dst[i] = cond[i] != 0 ? ifv[i] : elsev[i].
func (e *Engine) Select(dst, cond, ifv, elsev []float32, n int) {
	//nolint:gosec // G115: extents are non-negative
	err := e.run("select", selectShader, [][]float32{cond[:n], ifv[:n], elsev[:n]}, dst, n, false,
		[]uint32{uint32(n)}, elementGroups(n), 1)
	if err != nil {
		panic("webgpu: Select: " + err.Error())
	}
}
