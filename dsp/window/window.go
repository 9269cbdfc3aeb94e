// Package window generates the analysis windows applied to oscillator
// captures before they are transformed.
//
// All supported types are sums of cosines, so their spectral properties
// follow directly from the term coefficients.
package window

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function. The zero value is Hann.
type Type int

const (
	TypeHann Type = iota
	TypeRectangular
	TypeHamming
	TypeBlackman
	TypeFlatTop
)

// ErrUnknownType is returned by ParseType for an unrecognised name.
var ErrUnknownType = errors.New("window: unknown type")

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
)

// Cosine-sum terms, lowest order first.
var termsByType = map[Type][]float64{
	TypeRectangular: {1},
	TypeHann:        {0.5, -0.5},
	TypeHamming:     {0.54, -0.46},
	TypeBlackman:    {0.42, -0.5, 0.08},
	TypeFlatTop:     {0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368},
}

var namesByType = map[Type]string{
	TypeRectangular: "Rectangular",
	TypeHann:        "Hann",
	TypeHamming:     "Hamming",
	TypeBlackman:    "Blackman",
	TypeFlatTop:     "FlatTop",
}

// String returns the window name.
func (t Type) String() string {
	if name, ok := namesByType[t]; ok {
		return name
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a case-insensitive window name to its Type.
func ParseType(name string) (Type, error) {
	name = strings.TrimSpace(name)
	for t, n := range namesByType {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}

	return TypeHann, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Metadata holds spectral properties of a window type in its periodic form.
type Metadata struct {
	Name string
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW         float64
	CoherentGain float64
	// MainLobeHalfWidth is the distance in bins from the peak to the first null.
	MainLobeHalfWidth int
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. Unknown types
// yield a rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	terms := termsOf(t)
	out := make([]float64, length)
	for i := range out {
		out[i] = cosineSum(samplePosition(i, length, cfg.periodic), terms)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	terms := termsOf(t)

	a0 := terms[0]
	sq := a0 * a0
	for _, a := range terms[1:] {
		sq += a * a / 2
	}

	name, ok := namesByType[t]
	if !ok {
		name = namesByType[TypeRectangular]
	}

	return Metadata{
		Name:              name,
		ENBW:              sq / (a0 * a0),
		CoherentGain:      a0,
		MainLobeHalfWidth: len(terms),
	}
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

func termsOf(t Type) []float64 {
	if terms, ok := termsByType[t]; ok {
		return terms
	}

	return termsByType[TypeRectangular]
}

func cosineSum(x float64, terms []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range terms {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
