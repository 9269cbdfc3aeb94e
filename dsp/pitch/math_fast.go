//go:build fastmath

package pitch

import (
	"github.com/meko-christian/algo-approx"
)

const ln2 = 0.693147180559945309417232121458

// Only table construction and Code go through these; Increment is pure
// integer arithmetic either way.
func mathExp2(x float64) float64 {
	return approx.FastExp(x * ln2)
}

func mathLog2(x float64) float64 {
	return approx.FastLog(x) / ln2
}
