// Package thd measures the frequency and harmonic content of rendered
// oscillator captures.
//
// A capture is windowed (Hann unless configured otherwise), transformed with a single real FFT and
// reduced to a power spectrum. The fundamental is the strongest bin in the
// search range, refined by parabolic interpolation; each harmonic level is the
// root of the energy summed over a few bins around its nominal position, which
// keeps the ratios independent of where the tone falls between bins.
package thd

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lfo/dsp/core"
	"github.com/cwbudde/algo-lfo/dsp/window"
)

const fullScale = 1.0 / 32768

// ErrEmptySignal is returned when there is nothing to analyze.
var ErrEmptySignal = errors.New("thd: empty signal")

// Config holds analysis parameters.
type Config struct {
	// TickRate is the rate the capture was rendered at.
	TickRate float64
	// FFTSize is rounded up to a power of two; 0 picks the capture length.
	FFTSize int
	// FundamentalFreq pins the fundamental; 0 searches the range.
	FundamentalFreq float64
	// RangeLowerFreq and RangeUpperFreq bound the fundamental search and the
	// harmonics. Zero means one bin and Nyquist respectively.
	RangeLowerFreq float64
	RangeUpperFreq float64
	// WindowType selects the analysis window; the zero value means Hann.
	WindowType window.Type
	// CaptureBins is the half-width, in bins, summed around each tone.
	// 0 picks the main-lobe half-width of the window.
	CaptureBins int
	// MaxHarmonics bounds the harmonic count; 0 means up to the range limit.
	MaxHarmonics int
}

// Result holds analysis results. Levels are relative to full scale.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64 // bin centre
	EstimatedFreq    float64 // interpolated
	FundamentalLevel float64
	DC               float64
	THD              float64 // RSS of harmonics / fundamental
	THD_dB           float64
	OddHD            float64
	EvenHD           float64
	Harmonics        []float64
}

// Calculator analyzes captures with a fixed configuration.
type Calculator struct {
	cfg Config
	win window.Metadata
}

// NewCalculator creates a calculator for cfg.
func NewCalculator(cfg Config) *Calculator {
	win := window.Info(cfg.WindowType)
	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = win.MainLobeHalfWidth
	}
	if cfg.MaxHarmonics < 0 {
		cfg.MaxHarmonics = 0
	}
	return &Calculator{cfg: cfg, win: win}
}

// AnalyzeSamples is a one-shot analysis of a raw oscillator capture.
func AnalyzeSamples(samples []int16, cfg Config) (Result, error) {
	return NewCalculator(cfg).AnalyzeSamples(samples)
}

// AnalyzeSamples normalizes samples to [-1, 1) and analyzes them.
func (c *Calculator) AnalyzeSamples(samples []int16) (Result, error) {
	signal := make([]float64, len(samples))
	for i, v := range samples {
		signal[i] = float64(v)
	}
	vecmath.ScaleBlock(signal, signal, fullScale)
	return c.AnalyzeSignal(signal)
}

// AnalyzeSignal analyzes a normalized capture. signal is not modified.
func (c *Calculator) AnalyzeSignal(signal []float64) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}
	if !core.IsFinitePositive(c.cfg.TickRate) {
		return Result{}, fmt.Errorf("thd: tick rate must be > 0 and finite: %f", c.cfg.TickRate)
	}

	fftSize := nextPowerOf2(max(c.cfg.FFTSize, len(signal)))
	n := min(len(signal), fftSize)

	dc := 0.0
	for _, v := range signal[:n] {
		dc += v
	}
	dc /= float64(n)

	buf := make([]float64, n)
	for i, v := range signal[:n] {
		buf[i] = v - dc
	}
	window.Apply(c.cfg.WindowType, buf, window.WithPeriodic())

	in := make([]complex128, fftSize)
	for i, v := range buf {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("thd: failed to create FFT plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("thd: FFT failed: %w", err)
	}

	binCount := fftSize/2 + 1
	re := make([]float64, binCount)
	im := make([]float64, binCount)
	for i := range binCount {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	power := make([]float64, binCount)
	vecmath.Power(power, re, im)

	// Undo the coherent gain; a real tone splits across two sides.
	norm := 2 / (float64(n) * c.win.CoherentGain)
	for i := range power {
		power[i] *= norm * norm
	}

	res := c.calculate(power, fftSize)
	res.DC = dc
	return res, nil
}

// CalculateFromPower computes results from a power spectrum covering bins
// [0, Nyquist] of an FFT of size 2*(len(power)-1).
func (c *Calculator) CalculateFromPower(power []float64) Result {
	if len(power) <= 1 {
		return Result{}
	}
	return c.calculate(power, 2*(len(power)-1))
}

func (c *Calculator) calculate(power []float64, fftSize int) Result {
	cfg := c.cfg
	maxBin := len(power) - 1

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = float64(fftSize)
	}
	binHz := tickRate / float64(fftSize)

	lowerBin := 1
	if cfg.RangeLowerFreq > 0 {
		lowerBin = clampInt(int(math.Round(cfg.RangeLowerFreq/binHz)), 1, maxBin)
	}
	upperBin := maxBin
	if cfg.RangeUpperFreq > 0 {
		upperBin = clampInt(int(math.Round(cfg.RangeUpperFreq/binHz)), lowerBin, maxBin)
	}

	fund := lowerBin
	if cfg.FundamentalFreq > 0 {
		fund = clampInt(int(math.Round(cfg.FundamentalFreq/binHz)), lowerBin, upperBin)
	} else {
		for i := lowerBin; i <= upperBin; i++ {
			if power[i] > power[fund] {
				fund = i
			}
		}
	}

	res := Result{
		FundamentalFreq: float64(fund) * binHz,
		EstimatedFreq:   (float64(fund) + peakOffset(power, fund)) * binHz,
		THD_dB:          math.Inf(-1),
	}

	capture := min(cfg.CaptureBins, max(fund/2, 0))
	enbw := c.win.ENBW
	res.FundamentalLevel = toneLevel(power, fund, capture, enbw)
	if res.FundamentalLevel <= 0 {
		return res
	}

	var sumSq, oddSq, evenSq float64
	for k := 2; ; k++ {
		if cfg.MaxHarmonics > 0 && len(res.Harmonics) >= cfg.MaxHarmonics {
			break
		}
		bin := k * fund
		if bin > upperBin {
			break
		}

		ratio := toneLevel(power, bin, capture, enbw) / res.FundamentalLevel
		res.Harmonics = append(res.Harmonics, ratio)
		sumSq += ratio * ratio
		if k%2 == 0 {
			evenSq += ratio * ratio
		} else {
			oddSq += ratio * ratio
		}
	}

	res.THD = math.Sqrt(sumSq)
	res.THD_dB = core.LinearToDB(res.THD)
	res.OddHD = math.Sqrt(oddSq)
	res.EvenHD = math.Sqrt(evenSq)
	return res
}

// toneLevel is the amplitude of a tone whose energy lies in bin +- capture.
// The main lobe carries enbw times the peak-bin energy.
func toneLevel(power []float64, bin, capture int, enbw float64) float64 {
	lo := max(bin-capture, 0)
	hi := min(bin+capture, len(power)-1)

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += power[i]
	}
	if sum <= 0 {
		return 0
	}
	return math.Sqrt(sum / enbw)
}

// peakOffset refines a spectral peak by fitting a parabola through the log
// magnitudes of the peak bin and its neighbours. The result is in bins.
func peakOffset(power []float64, bin int) float64 {
	if bin <= 0 || bin >= len(power)-1 {
		return 0
	}
	a, b, c := power[bin-1], power[bin], power[bin+1]
	if a <= 0 || b <= 0 || c <= 0 {
		return 0
	}
	la, lb, lc := math.Log(a), math.Log(b), math.Log(c)
	den := la - 2*lb + lc
	if den == 0 {
		return 0
	}
	return 0.5 * (la - lc) / den
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}

	if val > hi {
		return hi
	}

	return val
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
