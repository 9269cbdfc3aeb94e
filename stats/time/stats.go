// Package time computes time-domain statistics of oscillator captures.
//
// Captures are raw int16 renders. Levels are reported relative to full scale
// (32768), positions as tick indices into the capture. A sample belongs to
// the positive half when it is >= 0, so a crossing is any sign change between
// consecutive ticks and a rising crossing is a step from negative to >= 0.
package time

import "math"

const fullScale = 32768

// Stats holds time-domain capture statistics.
//
//nolint:revive
type Stats struct {
	Length        int
	DC            float64 // mean
	DC_dB         float64
	RMS           float64
	RMS_dB        float64
	Max           int16
	MaxPos        int
	Min           int16
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	Peak_dB       float64
	PeakToPeak    int // max - min, in codes
	CrestFactor   float64
	Variance      float64
	ZeroCrossings int
	Rising        []int   // indices of rising crossings
	Period        float64 // mean ticks between rising crossings
	MaxStep       int     // largest |x[i] - x[i-1]|
	MaxStepPos    int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		DC_dB:   math.Inf(-1),
		RMS_dB:  math.Inf(-1),
		Peak_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass.
func Calculate(samples []int16) Stats {
	var s StreamingStats
	s.Update(samples)
	return s.Result()
}

// RMS returns the root-mean-square level of the capture.
func RMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range samples {
		v := float64(x) / fullScale
		sumSq += v * v
	}

	return math.Sqrt(sumSq / float64(len(samples)))
}

// DC returns the mean level of the capture.
func DC(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum int64
	for _, x := range samples {
		sum += int64(x)
	}

	return float64(sum) / float64(len(samples)) / fullScale
}

// Peak returns the peak absolute level of the capture.
func Peak(samples []int16) float64 {
	peak := 0
	for _, x := range samples {
		peak = max(peak, abs(int(x)))
	}

	return float64(peak) / fullScale
}

// ZeroCrossings returns the number of sign changes in the capture.
func ZeroCrossings(samples []int16) int {
	var count int

	for i := 1; i < len(samples); i++ {
		if (samples[i-1] < 0) != (samples[i] < 0) {
			count++
		}
	}

	return count
}

// RisingCrossings returns the indices i where samples[i-1] < 0 <= samples[i].
func RisingCrossings(samples []int16) []int {
	var out []int

	for i := 1; i < len(samples); i++ {
		if samples[i-1] < 0 && samples[i] >= 0 {
			out = append(out, i)
		}
	}

	return out
}

// Period estimates the cycle length in ticks from the first and last rising
// crossing. It returns 0 when fewer than two crossings are present.
func Period(samples []int16) float64 {
	return period(RisingCrossings(samples))
}

// MaxStep returns the largest absolute difference between consecutive
// samples and the index of the later one.
func MaxStep(samples []int16) (step, pos int) {
	for i := 1; i < len(samples); i++ {
		if d := abs(int(samples[i]) - int(samples[i-1])); d > step {
			step, pos = d, i
		}
	}

	return step, pos
}

func period(rising []int) float64 {
	if len(rising) < 2 {
		return 0
	}

	return float64(rising[len(rising)-1]-rising[0]) / float64(len(rising)-1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// StreamingStats accumulates statistics across consecutive blocks of one
// capture. Results are identical to [Calculate] over the concatenation.
type StreamingStats struct {
	n             int
	sum           int64
	sumSq         float64
	mean          float64
	m2            float64
	maxVal        int16
	maxPos        int
	minVal        int16
	minPos        int
	zeroCrossings int
	rising        []int
	maxStep       int
	maxStepPos    int
	last          int16
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats) Update(samples []int16) {
	for _, x := range samples {
		i := s.n
		s.n++

		v := float64(x) / fullScale
		s.sum += int64(x)
		s.sumSq += v * v

		// Welford update.
		delta := v - s.mean
		s.mean += delta / float64(s.n)
		s.m2 += delta * (v - s.mean)

		if i == 0 {
			s.maxVal, s.minVal = x, x
			s.last = x
			continue
		}

		if x > s.maxVal {
			s.maxVal, s.maxPos = x, i
		}

		if x < s.minVal {
			s.minVal, s.minPos = x, i
		}

		if (s.last < 0) != (x < 0) {
			s.zeroCrossings++
			if x >= 0 {
				s.rising = append(s.rising, i)
			}
		}

		if d := abs(int(x) - int(s.last)); d > s.maxStep {
			s.maxStep, s.maxStepPos = d, i
		}

		s.last = x
	}
}

// Result computes the final statistics from accumulated data.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return emptyStats()
	}

	nf := float64(s.n)
	dc := float64(s.sum) / nf / fullScale
	rms := math.Sqrt(s.sumSq / nf)
	peak := float64(max(abs(int(s.maxVal)), abs(int(s.minVal)))) / fullScale

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Stats{
		Length:        s.n,
		DC:            dc,
		DC_dB:         ampTodB(dc),
		RMS:           rms,
		RMS_dB:        ampTodB(rms),
		Max:           s.maxVal,
		MaxPos:        s.maxPos,
		Min:           s.minVal,
		MinPos:        s.minPos,
		Peak:          peak,
		Peak_dB:       ampTodB(peak),
		PeakToPeak:    int(s.maxVal) - int(s.minVal),
		CrestFactor:   crest,
		Variance:      s.m2 / nf,
		ZeroCrossings: s.zeroCrossings,
		Rising:        append([]int(nil), s.rising...),
		Period:        period(s.rising),
		MaxStep:       s.maxStep,
		MaxStepPos:    s.maxStepPos,
	}
}

// Reset clears all accumulated data, allowing the StreamingStats to be reused.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
