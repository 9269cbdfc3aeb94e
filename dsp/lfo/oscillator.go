package lfo

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-lfo/dsp/pitch"
)

// ErrNilMapper is returned when an oscillator is built without a Mapper.
var ErrNilMapper = errors.New("lfo: nil pitch mapper")

// State is the observable run state of an oscillator.
type State uint8

const (
	// StateIdle holds right after construction or Reset: phase is zero.
	StateIdle State = iota
	// StateRunning holds after at least one tick since the last reset.
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Oscillator is one LFO output. An Oscillator must not be copied after first
// use.
//
// Tick and Render belong to the tick goroutine. The setters and Reset may be
// called from any other goroutine; changes take effect at the next tick.
type Oscillator struct {
	mapper *pitch.Mapper

	mu  sync.Mutex
	cfg atomic.Pointer[params]

	// Written by the tick path only.
	phase        atomic.Uint32
	dividedPhase atomic.Uint32
	dividerCount atomic.Uint32
	ticks        atomic.Uint64

	resetPending atomic.Bool
}

// New creates an oscillator whose pitch codes are mapped by m.
func New(m *pitch.Mapper, opts ...Option) (*Oscillator, error) {
	if m == nil {
		return nil, ErrNilMapper
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	o := &Oscillator{mapper: m}
	o.cfg.Store(newParams(m, cfg))
	return o, nil
}

// update derives and publishes a new snapshot. Setters are serialized so
// that concurrent callers never lose each other's fields.
func (o *Oscillator) update(fn func(*config)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next := *o.cfg.Load()
	fn(&next.config)
	next.derive(o.mapper)
	o.cfg.Store(&next)
}

// SetPitch sets the pitch code and recomputes the cached increment and
// divided pitch.
func (o *Oscillator) SetPitch(code int16) {
	o.update(func(c *config) { c.pitch = code })
}

// SetDivider sets the clock divider. Zero is treated as 1.
func (o *Oscillator) SetDivider(divider uint16) {
	o.update(func(c *config) { c.divider = max(divider, 1) })
}

// SetLevel sets the amplitude level; LevelMax is full scale.
func (o *Oscillator) SetLevel(level uint16) {
	o.update(func(c *config) { c.level = level })
}

// SetPhase sets the render-time phase offset in 1/65536 turns.
func (o *Oscillator) SetPhase(offset uint16) {
	o.SetInitialPhase(uint32(offset) << 16)
}

// SetInitialPhase sets the render-time phase offset at full resolution.
func (o *Oscillator) SetInitialPhase(offset uint32) {
	o.update(func(c *config) { c.initialPhase = offset })
}

// SetPlateau sets the trapezoid plateau fraction in 1/65536 of a cycle.
func (o *Oscillator) SetPlateau(plateau uint16) {
	o.update(func(c *config) { c.plateau = plateau })
}

// SetPhaseSource selects the accumulator that drives rendering. Unknown
// sources fall back to PhaseDivided.
func (o *Oscillator) SetPhaseSource(source PhaseSource) {
	if !source.Valid() {
		source = PhaseDivided
	}
	o.update(func(c *config) { c.source = source })
}

// SetSmoothingPitch enables sine smoothing at and above code.
func (o *Oscillator) SetSmoothingPitch(code int16) {
	o.update(func(c *config) {
		c.smoothing = true
		c.smoothingPitch = code
	})
}

// ClearSmoothing disables sine smoothing.
func (o *Oscillator) ClearSmoothing() {
	o.update(func(c *config) { c.smoothing = false })
}

// Reset returns both accumulators and the divider count to zero. The
// configuration is left untouched. Readers observe phase zero immediately;
// the registers are cleared by the next Tick.
func (o *Oscillator) Reset() {
	o.resetPending.Store(true)
}

// Tick advances the oscillator by one tick.
func (o *Oscillator) Tick() {
	p := o.cfg.Load()

	if o.resetPending.Swap(false) {
		o.phase.Store(0)
		o.dividedPhase.Store(0)
		o.dividerCount.Store(0)
		o.ticks.Store(0)
	}

	o.phase.Store(o.phase.Load() + p.increment)

	count := o.dividerCount.Load() + 1
	if count >= uint32(p.divider) {
		count = 0
		o.dividedPhase.Store(o.dividedPhase.Load() + p.increment)
	}
	o.dividerCount.Store(count)
	o.ticks.Add(1)
}

// Render returns the current sample for shape. It does not change any state,
// so repeated calls between ticks return the same value. Invalid shapes
// render as ShapeSine.
func (o *Oscillator) Render(shape Shape) int16 {
	p := o.cfg.Load()
	return p.render(shape, o.effectivePhase(p))
}

func (o *Oscillator) effectivePhase(p *params) uint32 {
	if o.resetPending.Load() {
		return p.initialPhase
	}
	if p.source == PhaseMain {
		return o.phase.Load() + p.initialPhase
	}
	return o.dividedPhase.Load() + p.initialPhase
}

// Phase returns the main accumulator.
func (o *Oscillator) Phase() uint32 {
	if o.resetPending.Load() {
		return 0
	}
	return o.phase.Load()
}

// DividedPhase returns the divided accumulator.
func (o *Oscillator) DividedPhase() uint32 {
	if o.resetPending.Load() {
		return 0
	}
	return o.dividedPhase.Load()
}

// DividerCount returns the position within the current division window.
func (o *Oscillator) DividerCount() uint32 {
	if o.resetPending.Load() {
		return 0
	}
	return o.dividerCount.Load()
}

// Ticks returns the number of ticks since construction or the last reset.
func (o *Oscillator) Ticks() uint64 {
	if o.resetPending.Load() {
		return 0
	}
	return o.ticks.Load()
}

// State reports whether the oscillator has ticked since the last reset.
func (o *Oscillator) State() State {
	if o.Ticks() == 0 {
		return StateIdle
	}
	return StateRunning
}

// Mapper returns the pitch mapper shared by this oscillator.
func (o *Oscillator) Mapper() *pitch.Mapper { return o.mapper }

// Pitch returns the configured pitch code.
func (o *Oscillator) Pitch() int16 { return o.cfg.Load().pitch }

// DividedPitch returns the pitch reduced by the divider's octaves.
func (o *Oscillator) DividedPitch() int16 { return o.cfg.Load().dividedPitch }

// Divider returns the configured clock divider.
func (o *Oscillator) Divider() uint16 { return o.cfg.Load().divider }

// Level returns the configured amplitude level.
func (o *Oscillator) Level() uint16 { return o.cfg.Load().level }

// InitialPhase returns the render-time phase offset.
func (o *Oscillator) InitialPhase() uint32 { return o.cfg.Load().initialPhase }

// Plateau returns the trapezoid plateau fraction.
func (o *Oscillator) Plateau() uint16 { return o.cfg.Load().plateau }

// Smoothing returns the sine smoothing threshold and whether smoothing is
// enabled.
func (o *Oscillator) Smoothing() (code int16, enabled bool) {
	p := o.cfg.Load()
	return p.smoothingPitch, p.smoothing
}

// PhaseSource returns the accumulator that drives rendering.
func (o *Oscillator) PhaseSource() PhaseSource { return o.cfg.Load().source }

// Increment returns the cached phase increment for the current pitch.
func (o *Oscillator) Increment() uint32 { return o.cfg.Load().increment }
