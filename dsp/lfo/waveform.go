package lfo

import (
	"math"

	"github.com/cwbudde/algo-lfo/dsp/core"
)

const (
	sineBits     = 10
	sineSegments = 1 << sineBits
)

// sineTable holds one cycle plus the wrap point. Read-only after init.
var sineTable = func() [sineSegments + 1]int16 {
	var t [sineSegments + 1]int16
	for i := range t {
		t[i] = int16(math.Round(math.MaxInt16 * math.Sin(2*math.Pi*float64(i)/sineSegments)))
	}
	return t
}()

// waveform renders a full-scale sample for phase. gain is the trapezoid
// slope in Q16; other shapes ignore it.
type waveform func(phase uint32, gain int64) int16

var waveforms = [numShapes]waveform{
	ShapeSine:      func(phase uint32, _ int64) int16 { return sine(phase) },
	ShapeTriangle:  func(phase uint32, _ int64) int16 { return triangle(phase) },
	ShapeTrapezoid: trapezoid,
	ShapeRamp:      func(phase uint32, _ int64) int16 { return ramp(phase) },
	ShapeSaw:       func(phase uint32, _ int64) int16 { return saw(phase) },
}

func sine(phase uint32) int16 {
	i := phase >> (32 - sineBits)
	frac := int32((phase >> (16 - sineBits)) & 0xffff)
	a := int32(sineTable[i])
	b := int32(sineTable[i+1])
	return int16(a + ((b-a)*frac)>>16)
}

// triangle is shifted by a quarter cycle so that it starts at zero.
func triangle(phase uint32) int16 {
	p := phase + 1<<30
	if p < 1<<31 {
		return int16(int32(p>>15) - 32768)
	}
	return int16(32767 - int32((p-1<<31)>>15))
}

func trapezoid(phase uint32, gain int64) int16 {
	v := (int64(triangle(phase)) * gain) >> 16
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func ramp(phase uint32) int16 {
	return int16(int32(phase>>16) - 32768)
}

func saw(phase uint32) int16 {
	return int16(32767 - int32(phase>>16))
}

// plateauGain returns the trapezoid slope for a plateau covering
// plateau/65536 of the cycle, in Q16.
func plateauGain(plateau uint16) int64 {
	return (1 << 32) / (1<<16 - int64(plateau))
}

// applyLevel scales v by level/65536, rounding half away from zero so that
// positive and negative samples are treated alike. LevelMax is exact unity.
// The sign of v is never flipped, so zero crossings stay put.
func applyLevel(v int16, level uint16) int16 {
	if level == LevelMax {
		return v
	}
	prod := int32(v) * int32(level)
	if prod < 0 {
		return core.SaturateInt16(-((-prod + 1<<15) >> 16))
	}
	return core.SaturateInt16((prod + 1<<15) >> 16)
}
