package lfo

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-lfo/dsp/pitch"
)

func TestProcessMatchesTickRender(t *testing.T) {
	a := newTestOscillator(t, WithPitch(pitch.Pitch100Hz), WithDivider(3))
	b := newTestOscillator(t, WithPitch(pitch.Pitch100Hz), WithDivider(3))

	got := make([]int16, 257)
	a.Process(got, ShapeTrapezoid)

	for i := range got {
		b.Tick()
		if want := b.Render(ShapeTrapezoid); got[i] != want {
			t.Fatalf("sample %d mismatch: got=%d want=%d", i, got[i], want)
		}
	}
}

func TestProcessFloatNormalizes(t *testing.T) {
	a := newTestOscillator(t, WithPitch(pitch.Pitch100Hz))
	b := newTestOscillator(t, WithPitch(pitch.Pitch100Hz))

	dst := make([]float64, 128)
	scratch := a.ProcessFloat(dst, nil, ShapeSaw)
	if len(scratch) != len(dst) {
		t.Fatalf("len(scratch) = %d, want %d", len(scratch), len(dst))
	}

	want := make([]int16, len(dst))
	b.Process(want, ShapeSaw)

	for i := range dst {
		if diff := math.Abs(dst[i] - float64(want[i])/32768); diff > 1e-12 {
			t.Fatalf("sample %d mismatch: got=%g want=%g", i, dst[i], float64(want[i])/32768)
		}
		if dst[i] < -1 || dst[i] >= 1 {
			t.Fatalf("sample %d out of range: %g", i, dst[i])
		}
	}

	reused := a.ProcessFloat(dst[:64], scratch, ShapeSaw)
	if &reused[0] != &scratch[0] {
		t.Fatal("ProcessFloat did not reuse scratch")
	}
}
