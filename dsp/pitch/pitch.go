package pitch

import "math"

// Octave is the pitch-code distance of a frequency doubling.
const Octave = 12 * 128

// decade is round(Octave * log2(10)).
const decade = 5102

// Calibration anchors.
const (
	Pitch10Hz  int16 = 4 * 128
	Pitch1Hz         = Pitch10Hz - decade
	Pitch100Hz       = Pitch10Hz + decade
)

// Supported increment range. MaxIncrement is half a cycle per tick.
const (
	MinIncrement uint32 = 1
	MaxIncrement uint32 = 1 << 31
)

// Reduce lowers code by one octave per halving of divider until the divider
// reaches 1, so Reduce(p, 4) == p-2*Octave and Reduce(p, 5) == p-2*Octave.
// A zero divider is treated as 1. The loop runs at most 16 times and the
// result saturates at math.MinInt16.
func Reduce(code int16, divider uint16) int16 {
	p := int32(code)
	for d := max(divider, 1); d > 1; d >>= 1 {
		p -= Octave
	}

	if p < math.MinInt16 {
		return math.MinInt16
	}

	return int16(p)
}
