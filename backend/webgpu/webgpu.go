//go:build windows

// Copyright 2026 The cudalearn Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the GPU engine for matrix kernels, executing them
// as WGSL compute shaders through WebGPU.
//
// Example:
//
//	import (
//	    "github.com/shaia/cudalearn/backend/cpu"
//	    "github.com/shaia/cudalearn/backend/webgpu"
//	    "github.com/shaia/cudalearn/matrix"
//	)
//
//	func main() {
//	    var eng matrix.Engine
//	    if webgpu.IsAvailable() {
//	        gpu, err := webgpu.New()
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	        defer gpu.Release()
//	        eng = gpu
//	    } else {
//	        eng = cpu.New()
//	    }
//	}
package webgpu

import (
	internalwebgpu "github.com/shaia/cudalearn/internal/engine/webgpu"
	"github.com/shaia/cudalearn/matrix"
)

// Engine is the WebGPU implementation of matrix.Engine.
type Engine = internalwebgpu.Engine

// Compile-time check that Engine implements matrix.Engine.
var _ matrix.Engine = (*Engine)(nil)

// New creates a WebGPU engine.
//
// This initializes a device and queue and returns an engine ready for
// kernel dispatch. Call Release when done to free GPU resources. Returns an
// error if no compatible adapter is present or the native library cannot be
// loaded.
func New() (*Engine, error) {
	return internalwebgpu.New()
}

// IsAvailable reports whether a WebGPU adapter can be acquired on this
// system. Useful for graceful fallback to the CPU engine.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
