// Package clock provides periodic tick sources for driving oscillators.
//
// A Source is the software counterpart of a hardware timer interrupt: it is
// initialized at a fixed rate, started with a handler and stopped. The handler
// runs on a single goroutine, once per tick, in order.
package clock

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-lfo/dsp/core"
)

// Handler is invoked once per tick.
type Handler func()

// Source is a periodic tick source.
type Source interface {
	// Init configures the source to tick rate times per second.
	Init(rate float64) error
	// Start begins invoking h. It returns immediately.
	Start(ctx context.Context, h Handler) error
	// Stop halts the source and waits for the handler to return.
	Stop()
}

var (
	ErrInvalidRate    = errors.New("clock: rate must be > 0 and finite")
	ErrNotInitialized = errors.New("clock: source not initialized")
	ErrRunning        = errors.New("clock: source already running")
	ErrNilHandler     = errors.New("clock: nil handler")
)

func validateRate(rate float64) error {
	if !core.IsFinitePositive(rate) {
		return fmt.Errorf("%w: %f", ErrInvalidRate, rate)
	}
	return nil
}

// Run initializes src at rate, starts it with h and blocks until ctx is done,
// then stops the source. A cancelled context is not an error.
func Run(ctx context.Context, src Source, rate float64, h Handler) error {
	if err := src.Init(rate); err != nil {
		return err
	}
	if err := src.Start(ctx, h); err != nil {
		return err
	}
	<-ctx.Done()
	src.Stop()
	return nil
}
