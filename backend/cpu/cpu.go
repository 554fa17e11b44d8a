// Copyright 2026 The cudalearn Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU engine for matrix kernels.
//
// Operations are parallelized across a worker pool sized to GOMAXPROCS;
// small inputs run sequentially to avoid goroutine overhead.
//
// Example:
//
//	import (
//	    "github.com/shaia/cudalearn/backend/cpu"
//	)
//
//	func main() {
//	    eng := cpu.New()
//	    dst := make([]float32, 6)
//	    eng.Add(dst, a, b, 6)
//	}
package cpu

import (
	internalcpu "github.com/shaia/cudalearn/internal/engine/cpu"
	"github.com/shaia/cudalearn/internal/launch"
	"github.com/shaia/cudalearn/matrix"
)

// Engine is the CPU implementation of matrix.Engine.
type Engine = internalcpu.Engine

// Config controls how kernels are parallelized.
type Config = launch.Config

// Compile-time check that Engine implements matrix.Engine.
var _ matrix.Engine = (*Engine)(nil)

// New creates a CPU engine with the default launch configuration.
func New() *Engine {
	return internalcpu.New()
}

// NewWithConfig creates a CPU engine with an explicit launch configuration.
// Useful for forcing sequential execution in tests or pinning the worker
// count.
func NewWithConfig(cfg Config) *Engine {
	return internalcpu.NewWithConfig(cfg)
}
