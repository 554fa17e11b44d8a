package cpu

import (
	"github.com/shaia/cudalearn/internal/launch"
)

// tileDim is the side length of the square transpose tiles. The staging
// buffer carries one padding column so tile rows land in distinct cache sets
// when read back column-wise.
const tileDim = 32

// Transpose writes the height x width transpose of a width x height source:
// dst[i,j] = src[j,i]. The matrix is tiled into tileDim x tileDim blocks;
// each block is staged fully before being written out, so both the source
// read and the destination write walk contiguous columns. Edge tiles are
// boundary-checked. dst must not alias src.
func (e *Engine) Transpose(dst, src []float32, width, height int) {
	tilesX := (width + tileDim - 1) / tileDim
	tilesY := (height + tileDim - 1) / tileDim

	launch.For2D(tilesY, tilesX, func(ty, tx int) {
		var tile [tileDim][tileDim + 1]float32

		row0 := ty * tileDim
		col0 := tx * tileDim
		rows := min(tileDim, height-row0)
		cols := min(tileDim, width-col0)

		for c := 0; c < cols; c++ {
			base := (col0+c)*height + row0
			for r := 0; r < rows; r++ {
				tile[r][c] = src[base+r]
			}
		}

		// dst is height columns wide and width rows tall: element (j, i) of
		// dst sits at i*width + j.
		for r := 0; r < rows; r++ {
			base := (row0+r)*width + col0
			for c := 0; c < cols; c++ {
				dst[base+c] = tile[r][c]
			}
		}
	}, e.cfg)
}
