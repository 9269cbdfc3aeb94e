package lfo

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lfo/dsp/core"
)

// fullScale maps int16 output to [-1, 1).
const fullScale = 1.0 / 32768

// Process ticks once per element of dst and stores the rendered sample.
func (o *Oscillator) Process(dst []int16, shape Shape) {
	for i := range dst {
		o.Tick()
		dst[i] = o.Render(shape)
	}
}

// ProcessFloat is Process with output normalized to [-1, 1). scratch is
// reused when large enough; the buffer actually used is returned so callers
// can keep it across blocks.
func (o *Oscillator) ProcessFloat(dst []float64, scratch []int16, shape Shape) []int16 {
	scratch = core.EnsureLen(scratch, len(dst))
	o.Process(scratch, shape)
	for i, v := range scratch {
		dst[i] = float64(v)
	}
	vecmath.ScaleBlock(dst, dst, fullScale)
	return scratch
}
