// Package lfo implements a fixed-point control-rate low-frequency oscillator.
//
// Each tick the oscillator advances a 32-bit phase accumulator by an increment
// derived from a logarithmic pitch code (see package pitch), advances a second
// "divided" accumulator once every divider ticks, and renders a signed 16-bit
// sample from the selected phase register, a static phase offset and an
// amplitude level.
//
// Two goroutines are expected: a tick goroutine calling Tick and Render at a
// fixed cadence, and a control goroutine calling the setters. Setters derive a
// complete configuration snapshot and publish it with a single atomic store;
// the tick path reads one snapshot per call and never locks or allocates.
//
// Shapes:
//   - Sine: interpolated 1024-segment table.
//   - Triangle: 0 at phase 0, peak at 1/4, trough at 3/4.
//   - Trapezoid: triangle with flat top and bottom (plateau fraction).
//   - Ramp: rises over the whole cycle.
//   - Saw: falls over the whole cycle.
package lfo
