package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultWakeInterval = time.Millisecond
	defaultMaxCatchUp   = 1 << 12
)

// TickerOption configures a Ticker.
type TickerOption func(*Ticker)

// WithWakeInterval sets how often the goroutine wakes to deliver due ticks.
// The effective interval is never shorter than one tick period.
func WithWakeInterval(d time.Duration) TickerOption {
	return func(t *Ticker) {
		if d > 0 {
			t.wake = d
		}
	}
}

// WithMaxCatchUp bounds the number of ticks delivered per wake-up. Ticks
// beyond the bound are counted as missed rather than delivered late.
func WithMaxCatchUp(n int) TickerOption {
	return func(t *Ticker) {
		if n > 0 {
			t.maxCatchUp = uint64(n)
		}
	}
}

// Ticker is a wall-clock Source built on time.Ticker. Each wake-up delivers
// every tick that has come due since Start, so the tick count tracks elapsed
// time instead of the wake-up count.
type Ticker struct {
	mu         sync.Mutex
	rate       float64
	wake       time.Duration
	maxCatchUp uint64
	runCtx     context.Context
	cancel     context.CancelFunc
	done       chan struct{}

	ticks  atomic.Uint64
	missed atomic.Uint64
}

var _ Source = (*Ticker)(nil)

// NewTicker creates an uninitialized ticker.
func NewTicker(opts ...TickerOption) *Ticker {
	t := &Ticker{
		wake:       defaultWakeInterval,
		maxCatchUp: defaultMaxCatchUp,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Init sets the tick rate. It fails while the ticker is running. A ticker
// whose Start context has ended counts as stopped.
func (t *Ticker) Init(rate float64) error {
	if err := validateRate(rate); err != nil {
		return err
	}

	t.reap()
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done != nil {
		return ErrRunning
	}
	t.rate = rate
	return nil
}

// Start launches the tick goroutine.
func (t *Ticker) Start(ctx context.Context, h Handler) error {
	if h == nil {
		return ErrNilHandler
	}

	t.reap()
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rate == 0 {
		return ErrNotInitialized
	}
	if t.done != nil {
		return ErrRunning
	}

	ctx, t.cancel = context.WithCancel(ctx)
	t.runCtx = ctx
	t.done = make(chan struct{})
	t.ticks.Store(0)
	t.missed.Store(0)

	wake := max(t.wake, time.Duration(float64(time.Second)/t.rate))
	go t.run(ctx, h, t.rate, wake, t.done)
	return nil
}

func (t *Ticker) run(ctx context.Context, h Handler, rate float64, wake time.Duration, done chan struct{}) {
	defer close(done)

	tk := time.NewTicker(wake)
	defer tk.Stop()

	start := time.Now()
	var accounted uint64
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tk.C:
			due := uint64(now.Sub(start).Seconds() * rate)
			if due <= accounted {
				continue
			}
			n := due - accounted
			if n > t.maxCatchUp {
				t.missed.Add(n - t.maxCatchUp)
				n = t.maxCatchUp
			}
			for range n {
				h()
			}
			t.ticks.Add(n)
			accounted = due
		}
	}
}

// reap releases a run whose context was cancelled by the caller's parent
// context, waiting for its goroutine outside the lock.
func (t *Ticker) reap() {
	t.mu.Lock()
	if t.done == nil || t.runCtx.Err() == nil {
		t.mu.Unlock()
		return
	}
	cancel, done := t.cancel, t.done
	t.runCtx, t.cancel, t.done = nil, nil, nil
	t.mu.Unlock()

	cancel()
	<-done
}

// Stop cancels the tick goroutine and waits for it to exit. Stopping a
// stopped ticker is a no-op.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.runCtx, t.cancel, t.done = nil, nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Rate returns the configured tick rate.
func (t *Ticker) Rate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rate
}

// Ticks returns the number of handler invocations since Start.
func (t *Ticker) Ticks() uint64 { return t.ticks.Load() }

// Missed returns the number of due ticks dropped by the catch-up bound.
func (t *Ticker) Missed() uint64 { return t.missed.Load() }
