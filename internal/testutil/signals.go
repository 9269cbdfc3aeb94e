package testutil

import (
	"math"
	"math/rand"
)

// Sine renders a quantized sine of the given peak amplitude.
func Sine(freqHz, tickRate float64, amplitude int16, length int) []int16 {
	out := make([]int16, length)
	step := 2 * math.Pi * freqHz / tickRate
	for i := range out {
		out[i] = int16(math.Round(float64(amplitude) * math.Sin(step*float64(i))))
	}
	return out
}

// Noise generates white noise with a fixed seed for reproducibility.
func Noise(seed int64, amplitude int16, length int) []int16 {
	out := make([]int16, length)
	rng := rand.New(rand.NewSource(seed))
	span := 2*int(amplitude) + 1
	for i := range out {
		out[i] = int16(rng.Intn(span) - int(amplitude))
	}
	return out
}

// Constant generates a constant-valued capture.
func Constant(value int16, length int) []int16 {
	out := make([]int16, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Capture collects n values from next, one call per tick.
func Capture(n int, next func() int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = next()
	}
	return out
}

// Normalize maps int16 samples to [-1, 1).
func Normalize(samples []int16) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = float64(v) / 32768
	}
	return out
}
