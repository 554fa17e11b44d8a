//go:build windows

// Package webgpu implements the matrix kernel engine on GPU via WebGPU
// compute shaders. Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO
// WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// Engine executes matrix kernels as WGSL compute shaders. Shader modules and
// pipelines are compiled once and cached; data buffers are created per call,
// matching the caller-owned-buffer contract of the kernel layer.
type Engine struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex
}

// New creates a WebGPU engine.
// Returns an error if WebGPU is not available or initialization fails.
func New() (engine *Engine, err error) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			engine = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instErr := wgpu.CreateInstance(nil)
	if instErr != nil {
		return nil, fmt.Errorf("webgpu: failed to create instance: %w", instErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Engine{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
	}, nil
}

// IsAvailable reports whether a WebGPU adapter can be acquired on this
// system. Useful for graceful fallback to the CPU engine.
func IsAvailable() (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	instance, instErr := wgpu.CreateInstance(nil)
	if instErr != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}

// Release frees the GPU resources held by the engine.
func (e *Engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.pipelines {
		p.Release()
	}
	for _, s := range e.shaders {
		s.Release()
	}
	e.pipelines = nil
	e.shaders = nil

	if e.device != nil {
		e.device.Release()
	}
	if e.adapter != nil {
		e.adapter.Release()
	}
	if e.instance != nil {
		e.instance.Release()
	}
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return "WebGPU"
}
