//go:build !fastmath

package pitch

import "math"

// mathExp2 computes 2^x using standard library math.
func mathExp2(x float64) float64 {
	return math.Exp2(x)
}

// mathLog2 computes log2(x) using standard library math.
func mathLog2(x float64) float64 {
	return math.Log2(x)
}
