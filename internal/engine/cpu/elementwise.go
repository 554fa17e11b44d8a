package cpu

import (
	"math"

	"github.com/shaia/cudalearn/internal/launch"
)

// Element-wise kernels. Every operation maps [0, n) across worker lanes with
// no cross-lane communication; dst[i] depends only on the inputs at i, so dst
// may alias a source buffer. Domain errors (log of a negative, division by
// zero) propagate as NaN/Inf and are never trapped.

// apply1 runs dst[i] = f(src[i]) over [0, n).
func (e *Engine) apply1(dst, src []float32, n int, f func(float32) float32) {
	launch.For(n, func(i int) {
		dst[i] = f(src[i])
	}, e.cfg)
}

// apply2 runs dst[i] = f(a[i], b[i]) over [0, n).
func (e *Engine) apply2(dst, a, b []float32, n int, f func(x, y float32) float32) {
	launch.For(n, func(i int) {
		dst[i] = f(a[i], b[i])
	}, e.cfg)
}

// b2f converts a predicate result to the 1.0/0.0 convention of the
// comparison kernels.
func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Add computes dst[i] = a[i] + b[i].
func (e *Engine) Add(dst, a, b []float32, n int) {
	e.apply2(dst, a, b, n, func(x, y float32) float32 { return x + y })
}

// Sub computes dst[i] = a[i] - b[i].
func (e *Engine) Sub(dst, a, b []float32, n int) {
	e.apply2(dst, a, b, n, func(x, y float32) float32 { return x - y })
}

// Mul computes dst[i] = a[i] * b[i].
func (e *Engine) Mul(dst, a, b []float32, n int) {
	e.apply2(dst, a, b, n, func(x, y float32) float32 { return x * y })
}

// Div computes dst[i] = a[i] / b[i].
func (e *Engine) Div(dst, a, b []float32, n int) {
	e.apply2(dst, a, b, n, func(x, y float32) float32 { return x / y })
}

// AddScalar computes dst[i] = src[i] + s.
func (e *Engine) AddScalar(dst, src []float32, s float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 { return x + s })
}

// SubScalar computes dst[i] = src[i] - s.
func (e *Engine) SubScalar(dst, src []float32, s float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 { return x - s })
}

// MulScalar computes dst[i] = src[i] * s.
func (e *Engine) MulScalar(dst, src []float32, s float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 { return x * s })
}

// DivScalar computes dst[i] = src[i] / s.
func (e *Engine) DivScalar(dst, src []float32, s float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 { return x / s })
}

// Less computes dst[i] = a[i] < b[i] ? 1 : 0.
func (e *Engine) Less(dst, a, b []float32, n int) {
	e.apply2(dst, a, b, n, func(x, y float32) float32 { return b2f(x < y) })
}

// Greater computes dst[i] = a[i] > b[i] ? 1 : 0.
func (e *Engine) Greater(dst, a, b []float32, n int) {
	e.apply2(dst, a, b, n, func(x, y float32) float32 { return b2f(x > y) })
}

// Equal computes dst[i] = a[i] == b[i] ? 1 : 0.
func (e *Engine) Equal(dst, a, b []float32, n int) {
	e.apply2(dst, a, b, n, func(x, y float32) float32 { return b2f(x == y) })
}

// LessScalar computes dst[i] = src[i] < s ? 1 : 0.
func (e *Engine) LessScalar(dst, src []float32, s float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 { return b2f(x < s) })
}

// GreaterScalar computes dst[i] = src[i] > s ? 1 : 0.
func (e *Engine) GreaterScalar(dst, src []float32, s float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 { return b2f(x > s) })
}

// EqualScalar computes dst[i] = src[i] == s ? 1 : 0.
func (e *Engine) EqualScalar(dst, src []float32, s float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 { return b2f(x == s) })
}

// MinElem computes dst[i] = min(a[i], b[i]).
func (e *Engine) MinElem(dst, a, b []float32, n int) {
	e.apply2(dst, a, b, n, func(x, y float32) float32 {
		if y < x {
			return y
		}
		return x
	})
}

// MaxElem computes dst[i] = max(a[i], b[i]).
func (e *Engine) MaxElem(dst, a, b []float32, n int) {
	e.apply2(dst, a, b, n, func(x, y float32) float32 {
		if y > x {
			return y
		}
		return x
	})
}

// MinScalar computes dst[i] = min(src[i], s).
func (e *Engine) MinScalar(dst, src []float32, s float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		if s < x {
			return s
		}
		return x
	})
}

// MaxScalar computes dst[i] = max(src[i], s).
func (e *Engine) MaxScalar(dst, src []float32, s float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		if s > x {
			return s
		}
		return x
	})
}

// Sign computes the sign of each element: 1 for positive, -1 for negative,
// the value itself otherwise (preserves 0, -0 and NaN).
func (e *Engine) Sign(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return x
		}
	})
}

// Abs computes dst[i] = |src[i]|.
func (e *Engine) Abs(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		return float32(math.Abs(float64(x)))
	})
}

// Reciprocal computes dst[i] = 1 / src[i].
func (e *Engine) Reciprocal(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 { return 1 / x })
}

// Sqrt computes dst[i] = sqrt(src[i]).
func (e *Engine) Sqrt(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		return float32(math.Sqrt(float64(x)))
	})
}

// Exp computes dst[i] = exp(src[i]).
func (e *Engine) Exp(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		return float32(math.Exp(float64(x)))
	})
}

// Log computes dst[i] = ln(src[i]).
func (e *Engine) Log(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		return float32(math.Log(float64(x)))
	})
}

// Softplus computes dst[i] = log(1 + exp(src[i])). For positive inputs the
// identity x + log(1 + exp(-x)) keeps exp from overflowing.
func (e *Engine) Softplus(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		if x > 0 {
			return x + float32(math.Log1p(math.Exp(float64(-x))))
		}
		return float32(math.Log1p(math.Exp(float64(x))))
	})
}

// Gamma computes the gamma function of each element.
func (e *Engine) Gamma(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		return float32(math.Gamma(float64(x)))
	})
}

// Lgamma computes the natural log of |gamma| of each element.
func (e *Engine) Lgamma(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		v, _ := math.Lgamma(float64(x))
		return float32(v)
	})
}

// Sigmoid computes dst[i] = 1 / (1 + exp(-src[i])).
func (e *Engine) Sigmoid(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		return float32(1 / (1 + math.Exp(float64(-x))))
	})
}

// Tanh computes the hyperbolic tangent as 1 - 2/(exp(2x) + 1).
func (e *Engine) Tanh(dst, src []float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		return float32(1 - 2/(math.Exp(2*float64(x))+1))
	})
}

// Pow raises each element to the fixed exponent p.
func (e *Engine) Pow(dst, src []float32, p float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		return float32(math.Pow(float64(x), float64(p)))
	})
}

// PowElem computes dst[i] = a[i] ** b[i].
func (e *Engine) PowElem(dst, a, b []float32, n int) {
	e.apply2(dst, a, b, n, func(x, y float32) float32 {
		return float32(math.Pow(float64(x), float64(y)))
	})
}

// Shrink applies soft-threshold shrinkage: values are pulled toward zero by
// alpha and clamped at zero once they cross it.
func (e *Engine) Shrink(dst, src []float32, alpha float32, n int) {
	e.apply1(dst, src, n, func(x float32) float32 {
		if x > 0 {
			if x-alpha > 0 {
				return x - alpha
			}
			return 0
		}
		if x+alpha < 0 {
			return x + alpha
		}
		return 0
	})
}
