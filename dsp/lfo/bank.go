package lfo

import (
	"fmt"

	"github.com/cwbudde/algo-lfo/dsp/core"
	"github.com/cwbudde/algo-lfo/dsp/pitch"
)

// Bank groups oscillators that share a mapper and a tick source, like the
// outputs of a multi-channel LFO module.
type Bank struct {
	oscs []*Oscillator
}

// NewBank creates n oscillators configured with opts.
func NewBank(m *pitch.Mapper, n int, opts ...Option) (*Bank, error) {
	if n <= 0 {
		return nil, fmt.Errorf("lfo bank size must be > 0: %d", n)
	}

	b := &Bank{oscs: make([]*Oscillator, n)}
	for i := range b.oscs {
		o, err := New(m, opts...)
		if err != nil {
			return nil, err
		}
		b.oscs[i] = o
	}
	return b, nil
}

// Len returns the number of outputs.
func (b *Bank) Len() int { return len(b.oscs) }

// Oscillator returns output i.
func (b *Bank) Oscillator(i int) *Oscillator { return b.oscs[i] }

// Tick advances every output by one tick.
func (b *Bank) Tick() {
	for _, o := range b.oscs {
		o.Tick()
	}
}

// Render writes one sample per output into dst and returns the number
// written. Slots of dst past the last output are cleared.
func (b *Bank) Render(dst []int16, shape Shape) int {
	n := min(len(dst), len(b.oscs))
	for i := range n {
		dst[i] = b.oscs[i].Render(shape)
	}
	core.Zero(dst[n:])
	return n
}

// SetPitch sets the pitch of every output.
func (b *Bank) SetPitch(code int16) {
	for _, o := range b.oscs {
		o.SetPitch(code)
	}
}

// SetLevel sets the level of every output.
func (b *Bank) SetLevel(level uint16) {
	for _, o := range b.oscs {
		o.SetLevel(level)
	}
}

// SetDivider sets the same divider on every output.
func (b *Bank) SetDivider(divider uint16) {
	for _, o := range b.oscs {
		o.SetDivider(divider)
	}
}

// SetDividers sets per-output dividers. Extra values are ignored; outputs
// without a value keep their divider.
func (b *Bank) SetDividers(dividers []uint16) {
	for i, d := range dividers {
		if i >= len(b.oscs) {
			return
		}
		b.oscs[i].SetDivider(d)
	}
}

// SetSpread staggers the outputs: output i gets a phase offset of i*offset
// in 1/65536 turns. An offset of 1<<14 puts four outputs in quadrature.
func (b *Bank) SetSpread(offset uint16) {
	for i, o := range b.oscs {
		o.SetPhase(uint16(i) * offset)
	}
}

// Reset resets every output.
func (b *Bank) Reset() {
	for _, o := range b.oscs {
		o.Reset()
	}
}
