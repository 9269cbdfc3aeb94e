// Package pitch maps logarithmic pitch codes to linear phase increments.
//
// A pitch code counts 1/128 semitone steps, so one octave is 12*128 codes.
// The Mapper turns a code into the per-tick addend of a 32-bit phase
// accumulator running at a fixed tick rate. Equal code deltas give equal
// frequency ratios; the curve is anchored so that Pitch10Hz lands on 10 Hz and
// Pitch1Hz/Pitch100Hz sit one decade either side.
//
// The one-octave lookup table is built once per Mapper and never written
// again, so a Mapper can be shared by any number of oscillators without
// locking.
package pitch
