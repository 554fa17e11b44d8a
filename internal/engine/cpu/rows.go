package cpu

import (
	"math"

	"github.com/shaia/cudalearn/internal/launch"
	"github.com/shaia/cudalearn/matrix"
)

// Row-movement kernels: contiguous row-range copy between a matrix and a
// compact buffer, and arbitrary row gather/scatter driven by a float32 index
// list. Index entries resolve with negative wraparound (nRows added once);
// entries still out of range are the "no such row" sentinel. dst must not
// alias src.

// chunkDim is the row/column chunk size of the row-range copy grid.
const chunkDim = 32

// GetRowSlice copies rows [start, end) of a width x height source into a
// compact width x (end-start) destination. Precondition:
// 0 <= start < end <= height.
func (e *Engine) GetRowSlice(dst, src []float32, start, end, width, height int) {
	sliceH := end - start
	rowChunks := (sliceH + chunkDim - 1) / chunkDim
	colChunks := (width + chunkDim - 1) / chunkDim

	launch.For2D(rowChunks, colChunks, func(rc, cc int) {
		r0 := rc * chunkDim
		c0 := cc * chunkDim
		rows := min(chunkDim, sliceH-r0)
		cols := min(chunkDim, width-c0)

		for c := c0; c < c0+cols; c++ {
			copy(dst[c*sliceH+r0:c*sliceH+r0+rows], src[c*height+start+r0:])
		}
	}, e.cfg)
}

// SetRowSlice copies a compact width x (end-start) source into rows
// [start, end) of a width x height destination. Inverse of GetRowSlice.
func (e *Engine) SetRowSlice(dst, src []float32, start, end, width, height int) {
	sliceH := end - start
	rowChunks := (sliceH + chunkDim - 1) / chunkDim
	colChunks := (width + chunkDim - 1) / chunkDim

	launch.For2D(rowChunks, colChunks, func(rc, cc int) {
		r0 := rc * chunkDim
		c0 := cc * chunkDim
		rows := min(chunkDim, sliceH-r0)
		cols := min(chunkDim, width-c0)

		for c := c0; c < c0+cols; c++ {
			copy(dst[c*height+start+r0:c*height+start+r0+rows], src[c*sliceH+r0:c*sliceH+r0+rows])
		}
	}, e.cfg)
}

// SelectRows gathers rows of an nSrcRows x nCols source into an
// nRowIs x nCols destination: destination row r is source row
// resolve(indices[r]). Rows named by an invalid index are filled with NaN.
//
// Each cooperative group resolves its launch.GroupWidth indices up front,
// then copies column by column, so the per-row resolution happens once
// rather than once per column.
func (e *Engine) SelectRows(dst, src, indices []float32, nRowIs, nSrcRows, nCols int) {
	nan := float32(math.NaN())

	launch.ForGroups(nRowIs, func(_, lo, hi int) {
		var resolved [launch.GroupWidth]int
		var valid [launch.GroupWidth]bool
		for r := lo; r < hi; r++ {
			resolved[r-lo], valid[r-lo] = matrix.ResolveRowIndex(indices[r], nSrcRows)
		}

		for c := 0; c < nCols; c++ {
			for r := lo; r < hi; r++ {
				if valid[r-lo] {
					dst[c*nRowIs+r] = src[c*nSrcRows+resolved[r-lo]]
				} else {
					dst[c*nRowIs+r] = nan
				}
			}
		}
	}, e.cfg)
}

// SetSelectedRows scatters the rows of an nRowIs x nCols source into an
// nDstRows x nCols destination: source row r lands in destination row
// resolve(indices[r]). Rows named by an invalid index are skipped. Duplicate
// target indices leave the destination row with one of the candidate source
// rows, unspecified which.
func (e *Engine) SetSelectedRows(dst, src, indices []float32, nRowIs, nDstRows, nCols int) {
	launch.ForGroups(nRowIs, func(_, lo, hi int) {
		var resolved [launch.GroupWidth]int
		var valid [launch.GroupWidth]bool
		for r := lo; r < hi; r++ {
			resolved[r-lo], valid[r-lo] = matrix.ResolveRowIndex(indices[r], nDstRows)
		}

		for c := 0; c < nCols; c++ {
			for r := lo; r < hi; r++ {
				if valid[r-lo] {
					dst[c*nDstRows+resolved[r-lo]] = src[c*nRowIs+r]
				}
			}
		}
	}, e.cfg)
}
