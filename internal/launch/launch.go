// Package launch maps flat kernel domains onto worker goroutines. It is the
// grid-stride scheme shared by every CPU kernel: a domain [0, n) is split
// into contiguous lane-local chunks, one goroutine per chunk, so the same
// kernel shape handles any n without per-size tuning.
package launch

import (
	"runtime"
	"sync"
)

// GroupWidth is the cooperative group size: the number of lanes that share a
// staging buffer in the reduction and row-gather kernels. It matches the GPU
// engine's workgroup width so tie-break behavior is identical on both.
const GroupWidth = 32

// Config controls how kernel domains are spread across workers.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum elements per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count and detected vector
// width (see dispatch_*.go).
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: minChunk,
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too
// small to amortize goroutine startup.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// For2D executes f(r, c) over an rows x cols chunk grid. Used by the
// row-range copy kernels, which move data in 32x32 blocks.
func For2D(rows, cols int, f func(r, c int), cfg Config) {
	n := rows * cols
	For(n, func(k int) {
		f(k/cols, k%cols)
	}, cfg)
}

// ForGroups executes f(group) for each cooperative group of GroupWidth
// consecutive domain elements: group g owns [g*GroupWidth, min((g+1)*GroupWidth, n)).
// One goroutine runs a whole group, so the staging-then-merge phases inside f
// need no further synchronization.
func ForGroups(n int, f func(group, lo, hi int), cfg Config) {
	groups := (n + GroupWidth - 1) / GroupWidth
	For(groups, func(g int) {
		lo := g * GroupWidth
		hi := min(lo+GroupWidth, n)
		f(g, lo, hi)
	}, cfg)
}
