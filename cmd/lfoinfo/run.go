package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-lfo/dsp/clock"
	"github.com/cwbudde/algo-lfo/dsp/lfo"
)

// runRealtime drives osc from a wall-clock ticker for d and prints the
// latest output every interval. The tick goroutine publishes the rendered
// value through an atomic; the reporter never touches the oscillator's
// tick-owned state except through its atomic accessors.
func runRealtime(ctx context.Context, w io.Writer, osc *lfo.Oscillator, shape lfo.Shape, rate float64, d, interval time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	src := clock.NewTicker()
	var latest atomic.Int32

	handler := func() {
		osc.Tick()
		latest.Store(int32(osc.Render(shape)))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return clock.Run(ctx, src, rate, handler)
	})
	g.Go(func() error {
		return report(ctx, w, osc, &latest, interval)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	log.Printf("ran %d ticks at %g Hz, %d missed", src.Ticks(), rate, src.Missed())
	return nil
}

func report(ctx context.Context, w io.Writer, osc *lfo.Oscillator, latest *atomic.Int32, interval time.Duration) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	tk := time.NewTicker(interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
			if _, err := fmt.Fprintf(w, "ticks=%d phase=%d value=%d\n", osc.Ticks(), osc.DividedPhase(), latest.Load()); err != nil {
				return err
			}
		}
	}
}
