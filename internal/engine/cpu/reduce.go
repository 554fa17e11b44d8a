package cpu

import (
	"math"

	"github.com/shaia/cudalearn/internal/launch"
)

// Axis reductions. Each output element is produced by one cooperative group:
// launch.GroupWidth lanes each scan a strided subset of the axis keeping a
// running best, the partials land in a fixed-width staging buffer, and a
// single serial pass over the staging buffer yields the final result.
//
// Comparisons are strict, so within a lane the earliest-scanned of equal
// values wins, and in the merge the lowest lane wins. That makes the arg
// variants return the first occurrence along the axis, and keeps tie-break
// behavior identical to the GPU engine's 32-wide workgroups.
//
// dst must not alias m.

// reduceVal scans count elements at src[base], src[base+stride], ... and
// returns the best value under better. init is the sentinel for empty lanes.
func reduceVal(src []float32, base, stride, count int, init float32, better func(a, b float32) bool) float32 {
	var part [launch.GroupWidth]float32
	for l := range part {
		part[l] = init
		for k := l; k < count; k += launch.GroupWidth {
			if v := src[base+k*stride]; better(v, part[l]) {
				part[l] = v
			}
		}
	}

	best := part[0]
	for l := 1; l < launch.GroupWidth; l++ {
		if better(part[l], best) {
			best = part[l]
		}
	}
	return best
}

// reduceArg is reduceVal keeping the axis position of each lane's best.
func reduceArg(src []float32, base, stride, count int, init float32, better func(a, b float32) bool) int {
	var part [launch.GroupWidth]float32
	var pos [launch.GroupWidth]int
	for l := range part {
		part[l] = init
		for k := l; k < count; k += launch.GroupWidth {
			if v := src[base+k*stride]; better(v, part[l]) {
				part[l] = v
				pos[l] = k
			}
		}
	}

	best, bestPos := part[0], pos[0]
	for l := 1; l < launch.GroupWidth; l++ {
		if better(part[l], best) {
			best, bestPos = part[l], pos[l]
		}
	}
	return bestPos
}

func less(a, b float32) bool    { return a < b }
func greater(a, b float32) bool { return a > b }

var (
	posInf = float32(math.Inf(1))
	negInf = float32(math.Inf(-1))
)

// ColumnMin writes the minimum of each column: dst[c] = min over rows of
// m[r,c]. len(dst) >= width.
func (e *Engine) ColumnMin(dst, m []float32, width, height int) {
	launch.For(width, func(col int) {
		dst[col] = reduceVal(m, col*height, 1, height, posInf, less)
	}, e.cfg)
}

// ColumnMax writes the maximum of each column.
func (e *Engine) ColumnMax(dst, m []float32, width, height int) {
	launch.For(width, func(col int) {
		dst[col] = reduceVal(m, col*height, 1, height, negInf, greater)
	}, e.cfg)
}

// ColumnArgmin writes the row index of each column's first minimum.
func (e *Engine) ColumnArgmin(dst, m []float32, width, height int) {
	launch.For(width, func(col int) {
		dst[col] = float32(reduceArg(m, col*height, 1, height, posInf, less))
	}, e.cfg)
}

// ColumnArgmax writes the row index of each column's first maximum.
func (e *Engine) ColumnArgmax(dst, m []float32, width, height int) {
	launch.For(width, func(col int) {
		dst[col] = float32(reduceArg(m, col*height, 1, height, negInf, greater))
	}, e.cfg)
}

// RowMin writes the minimum of each row: dst[r] = min over columns of
// m[r,c]. len(dst) >= height.
func (e *Engine) RowMin(dst, m []float32, width, height int) {
	launch.For(height, func(row int) {
		dst[row] = reduceVal(m, row, height, width, posInf, less)
	}, e.cfg)
}

// RowMax writes the maximum of each row.
func (e *Engine) RowMax(dst, m []float32, width, height int) {
	launch.For(height, func(row int) {
		dst[row] = reduceVal(m, row, height, width, negInf, greater)
	}, e.cfg)
}

// RowArgmin writes the column index of each row's first minimum.
func (e *Engine) RowArgmin(dst, m []float32, width, height int) {
	launch.For(height, func(row int) {
		dst[row] = float32(reduceArg(m, row, height, width, posInf, less))
	}, e.cfg)
}

// RowArgmax writes the column index of each row's first maximum.
func (e *Engine) RowArgmax(dst, m []float32, width, height int) {
	launch.For(height, func(row int) {
		dst[row] = float32(reduceArg(m, row, height, width, negInf, greater))
	}, e.cfg)
}
