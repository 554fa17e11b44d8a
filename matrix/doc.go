// Copyright 2026 The cudalearn Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix defines the buffer conventions and the Engine interface of
// the cudalearn matrix-kernel layer.
//
// # Overview
//
// The kernel layer exposes stateless single-precision numeric primitives over
// dense column-major matrices. It is consumed as a pure computation backend:
// callers own every buffer, the engines never allocate or free, and all
// failure is expressed in the output data (IEEE NaN/Inf), never as an error
// or panic from a kernel.
//
// # Layout
//
// Matrices are column-major: element (row, col) of a width x height matrix
// lives at flat offset col*height + row. Vector operands are plain buffers of
// length height (column vector) or width (row vector); the operation called
// determines which axis the vector is broadcast along, the buffer is never
// inspected.
//
// # Basic Usage
//
//	import (
//	    "github.com/shaia/cudalearn/backend/cpu"
//	)
//
//	func main() {
//	    eng := cpu.New()
//
//	    m := make([]float32, 2*3)   // 2 columns x 3 rows
//	    v := []float32{1, 1, 1}     // column vector
//	    dst := make([]float32, 2*3)
//
//	    eng.AddColVector(dst, m, v, 2, 3)
//	}
//
// # Index lists
//
// Row gather/scatter operations take index lists: float32 buffers whose
// values are semantically integer row indices. A negative index counts from
// the end (index += nRows, applied once). An index still outside [0, nRows)
// after adjustment is a sentinel "invalid row", not an error: gathers fill
// the corresponding output row with NaN, scatters skip the write.
//
// # Engines
//
//   - CPU: pure Go, parallelized across worker goroutines (backend/cpu)
//   - WebGPU: WGSL compute shaders, zero-CGO (backend/webgpu, Windows)
package matrix
