package cpu

import (
	"github.com/shaia/cudalearn/internal/launch"
)

// Broadcast kernels. A column vector (length height) is replicated across
// columns, a row vector (length width) down rows. With column-major storage
// the flat index i decomposes as row = i % height, col = i / height, so the
// column-vector operand index is i % height and the row-vector operand index
// is i / height. Element-local, so dst may alias m.

// broadcastCol runs dst[i] = f(m[i], v[i % height]) over the full matrix.
func (e *Engine) broadcastCol(dst, m, v []float32, width, height int, f func(x, y float32) float32) {
	launch.For(width*height, func(i int) {
		dst[i] = f(m[i], v[i%height])
	}, e.cfg)
}

// broadcastRow runs dst[i] = f(m[i], v[i / height]) over the full matrix.
func (e *Engine) broadcastRow(dst, m, v []float32, width, height int, f func(x, y float32) float32) {
	launch.For(width*height, func(i int) {
		dst[i] = f(m[i], v[i/height])
	}, e.cfg)
}

// AddColVector adds a column vector to every column of m.
func (e *Engine) AddColVector(dst, m, v []float32, width, height int) {
	e.broadcastCol(dst, m, v, width, height, func(x, y float32) float32 { return x + y })
}

// MulColVector multiplies every column of m by a column vector.
func (e *Engine) MulColVector(dst, m, v []float32, width, height int) {
	e.broadcastCol(dst, m, v, width, height, func(x, y float32) float32 { return x * y })
}

// DivColVector divides every column of m by a column vector.
func (e *Engine) DivColVector(dst, m, v []float32, width, height int) {
	e.broadcastCol(dst, m, v, width, height, func(x, y float32) float32 { return x / y })
}

// AddScaledColVector adds alpha * v to every column of m.
func (e *Engine) AddScaledColVector(dst, m, v []float32, alpha float32, width, height int) {
	e.broadcastCol(dst, m, v, width, height, func(x, y float32) float32 { return x + alpha*y })
}

// AddRowVector adds a row vector to every row of m.
func (e *Engine) AddRowVector(dst, m, v []float32, width, height int) {
	e.broadcastRow(dst, m, v, width, height, func(x, y float32) float32 { return x + y })
}

// MulRowVector multiplies every row of m by a row vector.
func (e *Engine) MulRowVector(dst, m, v []float32, width, height int) {
	e.broadcastRow(dst, m, v, width, height, func(x, y float32) float32 { return x * y })
}

// DivRowVector divides every row of m by a row vector.
func (e *Engine) DivRowVector(dst, m, v []float32, width, height int) {
	e.broadcastRow(dst, m, v, width, height, func(x, y float32) float32 { return x / y })
}

// AddScaledRowVector adds alpha * v to every row of m.
func (e *Engine) AddScaledRowVector(dst, m, v []float32, alpha float32, width, height int) {
	e.broadcastRow(dst, m, v, width, height, func(x, y float32) float32 { return x + alpha*y })
}
