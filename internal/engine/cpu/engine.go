// Package cpu implements the matrix kernel engine in pure Go, parallelized
// across worker goroutines.
package cpu

import (
	"github.com/shaia/cudalearn/internal/launch"
)

// Engine executes matrix kernels on the host CPU. It holds only launch
// parameters; all data lives in caller-owned buffers.
type Engine struct {
	cfg launch.Config
}

// New creates a CPU engine with launch defaults tuned to the host.
func New() *Engine {
	return &Engine{cfg: launch.DefaultConfig()}
}

// NewWithConfig creates a CPU engine with an explicit launch configuration.
// Useful for forcing sequential execution in tests and benchmarks.
func NewWithConfig(cfg launch.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return "CPU"
}
