// Command lfoinfo renders, analyses and benchmarks a control-rate LFO.
//
// Usage:
//
//	lfoinfo [flags]
//
// Without a mode flag it renders -ticks samples and prints capture statistics
// together with an FFT analysis of the result.
//
// Examples:
//
//	lfoinfo -hz 2.5 -shape triangle
//	lfoinfo -pitch 512 -divider 4 -shape trapezoid -plateau 16384
//	lfoinfo -dump -ticks 200 -shape saw
//	lfoinfo -shape saw -window flattop
//	lfoinfo -bench -ticks 10000000
//	lfoinfo -run 5s -rate 2000 -hz 1
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cwbudde/algo-lfo/dsp/core"
	"github.com/cwbudde/algo-lfo/dsp/lfo"
	"github.com/cwbudde/algo-lfo/dsp/pitch"
	"github.com/cwbudde/algo-lfo/dsp/window"
)

type options struct {
	rate     float64
	pitch    int
	hz       float64
	divider  uint
	level    uint
	phase    uint
	plateau  uint
	shape    string
	source   string
	smooth   int
	window   string
	ticks    int
	block    int
	dump     bool
	bench    bool
	run      time.Duration
	interval time.Duration
}

func main() {
	var o options
	defaults := core.DefaultTickConfig()
	flag.Float64Var(&o.rate, "rate", defaults.TickRate, "tick rate in Hz")
	flag.IntVar(&o.pitch, "pitch", int(pitch.Pitch10Hz), "pitch code in 1/128 semitones ("+fmt.Sprint(pitch.Pitch10Hz)+" = 10 Hz)")
	flag.Float64Var(&o.hz, "hz", 0, "frequency in Hz; overrides -pitch when > 0")
	flag.UintVar(&o.divider, "divider", 1, "clock divider (0 is treated as 1)")
	flag.UintVar(&o.level, "level", lfo.LevelMax, "output level, 0..65535")
	flag.UintVar(&o.phase, "phase", 0, "initial phase as a fraction of 65536")
	flag.UintVar(&o.plateau, "plateau", 1<<15, "trapezoid plateau as a fraction of 65536")
	flag.StringVar(&o.shape, "shape", "sine", "waveform: "+shapeNames())
	flag.StringVar(&o.source, "source", "divided", "phase register to render: divided or main")
	flag.IntVar(&o.smooth, "smooth", math.MinInt32, "render sine at or above this divided pitch code (unset disables)")
	flag.StringVar(&o.window, "window", "hann", "FFT analysis window: rectangular, hann, hamming, blackman or flattop")
	flag.IntVar(&o.ticks, "ticks", 4096, "number of ticks to render")
	flag.IntVar(&o.block, "block", defaults.BlockSize, "ticks rendered per block in summary mode")
	flag.BoolVar(&o.dump, "dump", false, "print one tab separated row per tick")
	flag.BoolVar(&o.bench, "bench", false, "measure tick cost and print host features")
	flag.DurationVar(&o.run, "run", 0, "tick in real time for the given duration")
	flag.DurationVar(&o.interval, "interval", 250*time.Millisecond, "report interval for -run")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lfoinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a control-rate LFO and prints statistics, raw ticks or timings.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lfoinfo -hz 2.5 -shape triangle\n")
		fmt.Fprintf(os.Stderr, "  lfoinfo -dump -ticks 200 -shape saw\n")
		fmt.Fprintf(os.Stderr, "  lfoinfo -bench\n")
		fmt.Fprintf(os.Stderr, "  lfoinfo -run 5s -hz 1\n")
	}
	flag.Parse()

	osc, shape, err := o.build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	win, err := window.ParseType(o.window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	tc := core.ApplyOptions(core.WithTickRate(o.rate), core.WithBlockSize(o.block))

	switch {
	case o.run > 0:
		log.SetFlags(log.Ltime | log.Lmicroseconds)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runRealtime(ctx, os.Stdout, osc, shape, tc.TickRate, o.run, o.interval); err != nil {
			log.Fatalf("error: %v", err)
		}
	case o.bench:
		err = printBench(os.Stdout, osc, shape, o.ticks)
	case o.dump:
		err = printDump(os.Stdout, osc, shape, o.ticks)
	default:
		err = printSummary(os.Stdout, osc, shape, o.ticks, tc.BlockSize, win)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// build validates o and constructs the oscillator it describes.
func (o options) build() (*lfo.Oscillator, lfo.Shape, error) {
	shape, err := lfo.ParseShape(o.shape)
	if err != nil {
		return nil, 0, err
	}
	source, err := lfo.ParsePhaseSource(o.source)
	if err != nil {
		return nil, 0, err
	}

	for _, f := range []struct {
		name string
		v    uint
	}{
		{"divider", o.divider},
		{"level", o.level},
		{"phase", o.phase},
		{"plateau", o.plateau},
	} {
		if f.v > math.MaxUint16 {
			return nil, 0, fmt.Errorf("-%s out of range: %d", f.name, f.v)
		}
	}
	if o.ticks <= 0 {
		return nil, 0, fmt.Errorf("-ticks must be > 0: %d", o.ticks)
	}

	m, err := pitch.NewMapper(o.rate)
	if err != nil {
		return nil, 0, err
	}

	code := int16(max(math.MinInt16, min(math.MaxInt16, o.pitch)))
	if o.hz > 0 {
		code = m.Code(o.hz)
	}

	opts := []lfo.Option{
		lfo.WithPitch(code),
		lfo.WithDivider(uint16(o.divider)),
		lfo.WithLevel(uint16(o.level)),
		lfo.WithPhase(uint16(o.phase)),
		lfo.WithPlateau(uint16(o.plateau)),
		lfo.WithPhaseSource(source),
	}
	if o.smooth != math.MinInt32 {
		opts = append(opts, lfo.WithSmoothingPitch(int16(max(math.MinInt16, min(math.MaxInt16, o.smooth)))))
	}

	osc, err := lfo.New(m, opts...)
	if err != nil {
		return nil, 0, err
	}
	return osc, shape, nil
}

func shapeNames() string {
	names := make([]string, 0, len(lfo.Shapes()))
	for _, s := range lfo.Shapes() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
