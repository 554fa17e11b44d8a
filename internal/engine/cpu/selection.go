package cpu

import (
	"github.com/shaia/cudalearn/internal/launch"
)

// Select picks per element between two matrices:
// dst[i] = cond[i] != 0 ? ifv[i] : elsev[i]. Any nonzero condition value is
// truthy, including NaN. Element-local, so dst may alias any input.
func (e *Engine) Select(dst, cond, ifv, elsev []float32, n int) {
	launch.For(n, func(i int) {
		if cond[i] != 0 {
			dst[i] = ifv[i]
		} else {
			dst[i] = elsev[i]
		}
	}, e.cfg)
}
