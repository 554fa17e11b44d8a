//go:build amd64

package launch

import "golang.org/x/sys/cpu"

// minChunk is the smallest per-goroutine work unit. Wider vector units chew
// through a chunk faster, so the break-even point for spawning a goroutine
// moves up with the detected feature level.
var minChunk = 64

func init() {
	switch {
	case cpu.X86.HasAVX512F:
		minChunk = 256
	case cpu.X86.HasAVX2:
		minChunk = 128
	}
}
