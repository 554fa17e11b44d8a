// Copyright 2026 The cudalearn Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

// Offset returns the flat buffer offset of element (row, col) in a
// column-major matrix of the given height.
func Offset(row, col, height int) int {
	return col*height + row
}

// ResolveRowIndex converts one index-list entry into a concrete row index of
// a matrix with nRows rows. Negative indices count from the end (nRows is
// added once). The second result reports whether the adjusted index is a
// valid row; an invalid index is the "no such row" sentinel, not an error.
func ResolveRowIndex(v float32, nRows int) (int, bool) {
	idx := int(v)
	if idx < 0 {
		idx += nRows
	}
	return idx, idx >= 0 && idx < nRows
}
