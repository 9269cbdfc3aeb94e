package lfo

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lfo/dsp/pitch"
)

// LevelMax is the level that renders at (almost exactly) full scale.
const LevelMax = math.MaxUint16

const defaultPlateau = 1 << 15

// Option mutates oscillator construction parameters.
type Option func(*config) error

type config struct {
	pitch          int16
	divider        uint16
	level          uint16
	initialPhase   uint32
	plateau        uint16
	source         PhaseSource
	smoothing      bool
	smoothingPitch int16
}

func defaultConfig() config {
	return config{
		pitch:   pitch.Pitch10Hz,
		divider: 1,
		level:   LevelMax,
		plateau: defaultPlateau,
		source:  PhaseDivided,
	}
}

// WithPitch sets the initial pitch code.
func WithPitch(code int16) Option {
	return func(cfg *config) error {
		cfg.pitch = code
		return nil
	}
}

// WithDivider sets the initial clock divider. Zero is treated as 1.
func WithDivider(divider uint16) Option {
	return func(cfg *config) error {
		cfg.divider = max(divider, 1)
		return nil
	}
}

// WithLevel sets the initial amplitude level.
func WithLevel(level uint16) Option {
	return func(cfg *config) error {
		cfg.level = level
		return nil
	}
}

// WithPhase sets the initial phase offset as a fraction of a turn in 1/65536
// steps.
func WithPhase(offset uint16) Option {
	return func(cfg *config) error {
		cfg.initialPhase = uint32(offset) << 16
		return nil
	}
}

// WithPlateau sets the fraction of the cycle, in 1/65536 steps, the trapezoid
// spends flat at its extremes. Zero renders a plain triangle.
func WithPlateau(plateau uint16) Option {
	return func(cfg *config) error {
		cfg.plateau = plateau
		return nil
	}
}

// WithPhaseSource selects which accumulator drives rendering.
func WithPhaseSource(source PhaseSource) Option {
	return func(cfg *config) error {
		if !source.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidPhaseSource, source)
		}
		cfg.source = source
		return nil
	}
}

// WithSmoothingPitch makes every shape render as a sine while the divided
// pitch is at or above code, avoiding hard edges at fast rates.
func WithSmoothingPitch(code int16) Option {
	return func(cfg *config) error {
		cfg.smoothing = true
		cfg.smoothingPitch = code
		return nil
	}
}

// params is an immutable configuration snapshot. The tick path reads one
// snapshot per call; setters publish a new one.
type params struct {
	config

	dividedPitch int16
	increment    uint32
	gain         int64
}

func newParams(m *pitch.Mapper, cfg config) *params {
	p := &params{config: cfg}
	p.derive(m)
	return p
}

// derive recomputes every field that depends on the config inputs.
func (p *params) derive(m *pitch.Mapper) {
	p.divider = max(p.divider, 1)
	p.increment = m.Increment(p.pitch)
	p.dividedPitch = pitch.Reduce(p.pitch, p.divider)
	p.gain = plateauGain(p.plateau)
}

// render maps an effective phase to a level-scaled sample.
func (p *params) render(shape Shape, phase uint32) int16 {
	if !shape.Valid() || (p.smoothing && p.dividedPitch >= p.smoothingPitch) {
		shape = ShapeSine
	}
	return applyLevel(waveforms[shape](phase, p.gain), p.level)
}
