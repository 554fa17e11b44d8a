//go:build arm64

package launch

import "golang.org/x/sys/cpu"

// minChunk is the smallest per-goroutine work unit. NEON is baseline on
// arm64; ASIMD-capable parts get a larger chunk for the same reason wider
// x86 vectors do.
var minChunk = 64

func init() {
	if cpu.ARM64.HasASIMD {
		minChunk = 128
	}
}
