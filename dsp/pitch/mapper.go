package pitch

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-lfo/dsp/core"
)

const (
	tableShift = 4
	tableStep  = 1 << tableShift
	tableSize  = Octave/tableStep + 1

	phaseModulus = 1 << 32
)

// ErrInvalidTickRate is returned when a Mapper is built for a tick rate that is
// not positive and finite.
var ErrInvalidTickRate = errors.New("pitch: tick rate must be > 0 and finite")

// Option mutates Mapper construction parameters.
type Option func(*mapperConfig) error

type mapperConfig struct {
	refCode int16
	refHz   float64
	minInc  uint32
	maxInc  uint32
}

func defaultMapperConfig() mapperConfig {
	return mapperConfig{
		refCode: Pitch10Hz,
		refHz:   10,
		minInc:  MinIncrement,
		maxInc:  MaxIncrement,
	}
}

// WithReference retunes the mapping so that code plays at hz. It is meant for
// calibration trims; the default is Pitch10Hz at 10 Hz.
func WithReference(code int16, hz float64) Option {
	return func(cfg *mapperConfig) error {
		if !core.IsFinitePositive(hz) {
			return fmt.Errorf("pitch: reference frequency must be > 0 and finite: %f", hz)
		}
		cfg.refCode = code
		cfg.refHz = hz
		return nil
	}
}

// WithIncrementRange narrows the saturation bounds of the mapping.
func WithIncrementRange(minInc, maxInc uint32) Option {
	return func(cfg *mapperConfig) error {
		if minInc == 0 || minInc > maxInc {
			return fmt.Errorf("pitch: invalid increment range [%d, %d]", minInc, maxInc)
		}
		cfg.minInc = minInc
		cfg.maxInc = maxInc
		return nil
	}
}

// Mapper converts pitch codes to phase increments for one tick rate.
type Mapper struct {
	tickRate float64
	refCode  int16
	refHz    float64
	minInc   uint32
	maxInc   uint32

	// table[i] is the increment for code i*tableStep within octave 0.
	// table[tableSize-1] is twice table[0] so adjacent octaves join without a step.
	table [tableSize]uint64
}

// NewMapper builds the increment table for tickRate ticks per second.
func NewMapper(tickRate float64, opts ...Option) (*Mapper, error) {
	if !core.IsFinitePositive(tickRate) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidTickRate, tickRate)
	}

	cfg := defaultMapperConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	m := &Mapper{
		tickRate: tickRate,
		refCode:  cfg.refCode,
		refHz:    cfg.refHz,
		minInc:   cfg.minInc,
		maxInc:   cfg.maxInc,
	}
	m.buildTable()
	return m, nil
}

func (m *Mapper) buildTable() {
	scale := phaseModulus * m.refHz / m.tickRate
	for i := 0; i < tableSize-1; i++ {
		octaves := float64(i*tableStep-int(m.refCode)) / Octave
		v := math.Round(scale * mathExp2(octaves))
		if v < 1 {
			v = 1
		}
		if v > math.MaxUint64/4 {
			v = math.MaxUint64 / 4
		}
		m.table[i] = uint64(v)
		if i > 0 && m.table[i] < m.table[i-1] {
			m.table[i] = m.table[i-1]
		}
	}
	m.table[tableSize-1] = max(2*m.table[0], m.table[tableSize-2])
}

// TickRate returns the tick rate the table was built for.
func (m *Mapper) TickRate() float64 { return m.tickRate }

// Increment returns the phase increment for code. It is total over the int16
// domain: codes past either end saturate to the configured increment range.
func (m *Mapper) Increment(code int16) uint32 {
	c := int32(code)
	octaves := c / Octave
	rem := c % Octave
	if rem < 0 {
		rem += Octave
		octaves--
	}

	idx := rem >> tableShift
	frac := uint64(rem & (tableStep - 1))
	a := m.table[idx]
	b := m.table[idx+1]
	v := a + ((b-a)*frac)>>tableShift

	switch {
	case octaves > 0:
		if v > uint64(m.maxInc)>>uint(octaves) {
			return m.maxInc
		}
		v <<= uint(octaves)
	case octaves < 0:
		v >>= uint(-octaves)
	}

	return core.SaturateUint32(v, uint64(m.minInc), uint64(m.maxInc))
}

// Frequency returns the oscillation frequency in Hz realised by code.
func (m *Mapper) Frequency(code int16) float64 {
	return float64(m.Increment(code)) * m.tickRate / phaseModulus
}

// Code returns the pitch code closest to hz, clamped to the int16 domain.
// Non-positive or NaN frequencies map to math.MinInt16.
func (m *Mapper) Code(hz float64) int16 {
	if !(hz > 0) {
		return math.MinInt16
	}

	c := float64(m.refCode) + math.Round(Octave*mathLog2(hz/m.refHz))
	return int16(core.Clamp(c, math.MinInt16, math.MaxInt16))
}
