package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-lfo/dsp/lfo"
	"github.com/cwbudde/algo-lfo/dsp/pitch"
	"github.com/cwbudde/algo-lfo/dsp/window"
)

func defaultOptions() options {
	return options{
		rate:    1000,
		pitch:   int(pitch.Pitch10Hz),
		divider: 1,
		level:   lfo.LevelMax,
		plateau: 1 << 15,
		shape:   "sine",
		source:  "divided",
		smooth:  -1 << 31,
		ticks:   1000,
	}
}

func TestBuildDefaults(t *testing.T) {
	osc, shape, err := defaultOptions().build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if shape != lfo.ShapeSine {
		t.Fatalf("shape = %v, want sine", shape)
	}
	if osc.Pitch() != pitch.Pitch10Hz || osc.Divider() != 1 || osc.Level() != lfo.LevelMax {
		t.Fatalf("oscillator = pitch %d divider %d level %d", osc.Pitch(), osc.Divider(), osc.Level())
	}
}

func TestBuildHzOverridesPitch(t *testing.T) {
	o := defaultOptions()
	o.pitch = 0
	o.hz = 100

	osc, _, err := o.build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if got := osc.Mapper().Frequency(osc.Pitch()); got < 99 || got > 101 {
		t.Fatalf("frequency = %g, want ~100", got)
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*options)
		target error
	}{
		{"shape", func(o *options) { o.shape = "square" }, lfo.ErrInvalidShape},
		{"source", func(o *options) { o.source = "both" }, lfo.ErrInvalidPhaseSource},
		{"rate", func(o *options) { o.rate = 0 }, pitch.ErrInvalidTickRate},
		{"level", func(o *options) { o.level = 1 << 16 }, nil},
		{"divider", func(o *options) { o.divider = 70000 }, nil},
		{"ticks", func(o *options) { o.ticks = 0 }, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := defaultOptions()
			tc.mutate(&o)

			_, _, err := o.build()
			if err == nil {
				t.Fatal("build() error = nil")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Fatalf("build() error = %v, want %v", err, tc.target)
			}
		})
	}
}

func TestPrintDump(t *testing.T) {
	o := defaultOptions()
	o.shape = "ramp"
	osc, shape, err := o.build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	var buf bytes.Buffer
	if err := printDump(&buf, osc, shape, 4); err != nil {
		t.Fatalf("printDump() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header + 4:\n%s", len(lines), buf.String())
	}
	if fields := strings.Fields(lines[0]); len(fields) != 4 || fields[0] != "tick" {
		t.Fatalf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[4]); fields[0] != "3" || fields[1] != "171798692" {
		t.Fatalf("last row = %q, want tick 3 at phase 4*increment", lines[4])
	}
}

func TestPrintSummary(t *testing.T) {
	o := defaultOptions()
	o.shape = "triangle"
	osc, shape, err := o.build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	var buf bytes.Buffer
	if err := printSummary(&buf, osc, shape, o.ticks, 64, window.TypeHann); err != nil {
		t.Fatalf("printSummary() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Shape", "triangle", "Increment", "42949673", "Period", "100.00 ticks", "Window", "Hann", "THD", "H3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSummaryWindow(t *testing.T) {
	o := defaultOptions()
	o.shape = "saw"
	osc, shape, err := o.build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	win, err := window.ParseType("FlatTop")
	if err != nil {
		t.Fatalf("ParseType() error = %v", err)
	}

	var buf bytes.Buffer
	if err := printSummary(&buf, osc, shape, o.ticks, 64, win); err != nil {
		t.Fatalf("printSummary() error = %v", err)
	}
	if !strings.Contains(buf.String(), "FlatTop") {
		t.Fatalf("summary missing window name:\n%s", buf.String())
	}
}

func TestPrintBench(t *testing.T) {
	osc, shape, err := defaultOptions().build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	var buf bytes.Buffer
	if err := printBench(&buf, osc, shape, 1000); err != nil {
		t.Fatalf("printBench() error = %v", err)
	}
	for _, want := range []string{"Host", "ns/tick", "Bank x4"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("bench output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestRunRealtime(t *testing.T) {
	osc, shape, err := defaultOptions().build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	var buf bytes.Buffer
	if err := runRealtime(context.Background(), &buf, osc, shape, 1000, 120*time.Millisecond, 20*time.Millisecond); err != nil {
		t.Fatalf("runRealtime() error = %v", err)
	}
	if osc.Ticks() == 0 {
		t.Fatal("no ticks delivered")
	}
	if !strings.Contains(buf.String(), "ticks=") {
		t.Fatalf("no report lines:\n%s", buf.String())
	}
}

func TestPrintSummaryBlockSizeInvariant(t *testing.T) {
	render := func(block int) string {
		o := defaultOptions()
		o.shape = "trapezoid"
		o.divider = 3
		osc, shape, err := o.build()
		if err != nil {
			t.Fatalf("build() error = %v", err)
		}

		var buf bytes.Buffer
		if err := printSummary(&buf, osc, shape, 777, block, window.TypeHann); err != nil {
			t.Fatalf("printSummary() error = %v", err)
		}
		return buf.String()
	}

	if a, b := render(1), render(64); a != b {
		t.Fatalf("block size changed the summary:\n%s\nvs\n%s", a, b)
	}
}

func TestBenchBankMirrorsOscillator(t *testing.T) {
	o := defaultOptions()
	o.shape = "saw"
	o.divider = 4
	o.level = 20000
	o.smooth = -4000
	osc, _, err := o.build()
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	bank, err := benchBank(osc, 4)
	if err != nil {
		t.Fatalf("benchBank() error = %v", err)
	}

	wantCode, wantOn := osc.Smoothing()
	for i := range bank.Len() {
		b := bank.Oscillator(i)
		if code, on := b.Smoothing(); code != wantCode || on != wantOn {
			t.Fatalf("output %d smoothing = (%d, %v), want (%d, %v)", i, code, on, wantCode, wantOn)
		}
		if b.Pitch() != osc.Pitch() || b.Divider() != osc.Divider() || b.Level() != osc.Level() {
			t.Fatalf("output %d = pitch %d divider %d level %d", i, b.Pitch(), b.Divider(), b.Level())
		}
	}

	// The divided pitch (10 Hz / 4) is above the threshold, so the saw renders
	// as a sine: 0 at phase 0 instead of the saw's top.
	osc.Tick()
	bank.Tick()
	out := make([]int16, bank.Len())
	bank.Render(out, lfo.ShapeSaw)
	if got := osc.Render(lfo.ShapeSaw); got != 0 || out[0] != 0 {
		t.Fatalf("smoothed saw: oscillator = %d, bank output 0 = %d, want 0", got, out[0])
	}
}
