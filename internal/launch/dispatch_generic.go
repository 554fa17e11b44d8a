//go:build !amd64 && !arm64

package launch

// minChunk is the smallest per-goroutine work unit on architectures without
// feature detection.
var minChunk = 64
