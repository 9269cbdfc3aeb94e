package lfo

import (
	"errors"
	"fmt"
	"strings"
)

// Shape selects a waveform law.
type Shape uint8

const (
	ShapeSine Shape = iota
	ShapeTriangle
	ShapeTrapezoid
	ShapeRamp
	ShapeSaw

	numShapes
)

// ErrInvalidShape is returned when a shape name or value is not recognized.
var ErrInvalidShape = errors.New("lfo: invalid shape")

var shapeNames = [numShapes]string{
	ShapeSine:      "sine",
	ShapeTriangle:  "triangle",
	ShapeTrapezoid: "trapezoid",
	ShapeRamp:      "ramp",
	ShapeSaw:       "saw",
}

// Shapes returns all valid shapes in declaration order.
func Shapes() []Shape {
	out := make([]Shape, numShapes)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	return s < numShapes
}

// String returns the lower-case shape name.
func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
	return shapeNames[s]
}

// ParseShape resolves a shape name, ignoring case and surrounding spaces.
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return ShapeSine, fmt.Errorf("%w: %q", ErrInvalidShape, name)
}

// PhaseSource selects which accumulator drives rendering.
type PhaseSource uint8

const (
	// PhaseDivided renders from the divided accumulator. With a divider of 1
	// it is identical to PhaseMain.
	PhaseDivided PhaseSource = iota
	// PhaseMain renders from the undivided accumulator and ignores the
	// divider for timing.
	PhaseMain
)

// ErrInvalidPhaseSource is returned for unknown phase sources.
var ErrInvalidPhaseSource = errors.New("lfo: invalid phase source")

// Valid reports whether p is a known phase source.
func (p PhaseSource) Valid() bool {
	return p <= PhaseMain
}

func (p PhaseSource) String() string {
	switch p {
	case PhaseDivided:
		return "divided"
	case PhaseMain:
		return "main"
	default:
		return fmt.Sprintf("PhaseSource(%d)", uint8(p))
	}
}

// ParsePhaseSource resolves "divided" or "main".
func ParsePhaseSource(name string) (PhaseSource, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "divided":
		return PhaseDivided, nil
	case "main":
		return PhaseMain, nil
	default:
		return PhaseDivided, fmt.Errorf("%w: %q", ErrInvalidPhaseSource, name)
	}
}
