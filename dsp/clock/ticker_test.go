package clock

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerDeliversElapsedTicks(t *testing.T) {
	tk := NewTicker()
	if err := tk.Init(2000); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	var count atomic.Uint64
	start := time.Now()
	if err := tk.Start(context.Background(), func() { count.Add(1) }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	tk.Stop()
	elapsed := time.Since(start)

	got := count.Load()
	if got == 0 {
		t.Fatal("no ticks delivered")
	}
	if limit := uint64(math.Ceil(elapsed.Seconds()*2000)) + 1; got > limit {
		t.Fatalf("delivered %d ticks in %v, want <= %d", got, elapsed, limit)
	}
	if tk.Ticks() != got {
		t.Fatalf("Ticks() = %d, want %d", tk.Ticks(), got)
	}
}

func TestTickerCatchUpBound(t *testing.T) {
	tk := NewTicker(WithWakeInterval(20*time.Millisecond), WithMaxCatchUp(5))
	if err := tk.Init(10000); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := tk.Start(context.Background(), func() {}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(70 * time.Millisecond)
	tk.Stop()

	if tk.Missed() == 0 {
		t.Fatal("Missed() = 0, want dropped ticks")
	}
	if tk.Ticks() == 0 || tk.Missed() <= tk.Ticks() {
		t.Fatalf("Ticks() = %d, Missed() = %d, want mostly dropped ticks", tk.Ticks(), tk.Missed())
	}
}

func TestTickerLifecycleErrors(t *testing.T) {
	tk := NewTicker()
	if err := tk.Start(context.Background(), func() {}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Start() error = %v, want ErrNotInitialized", err)
	}
	if err := tk.Init(math.Inf(1)); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("Init(Inf) error = %v, want ErrInvalidRate", err)
	}
	if err := tk.Init(100); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := tk.Start(context.Background(), nil); !errors.Is(err, ErrNilHandler) {
		t.Fatalf("Start(nil) error = %v, want ErrNilHandler", err)
	}
	if err := tk.Start(context.Background(), func() {}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := tk.Start(context.Background(), func() {}); !errors.Is(err, ErrRunning) {
		t.Fatalf("second Start() error = %v, want ErrRunning", err)
	}
	if err := tk.Init(200); !errors.Is(err, ErrRunning) {
		t.Fatalf("Init() while running error = %v, want ErrRunning", err)
	}
	tk.Stop()
	tk.Stop()

	if tk.Rate() != 100 {
		t.Fatalf("Rate() = %v, want 100", tk.Rate())
	}
}

func TestTickerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	tk := NewTicker()
	if err := Run(ctx, tk, 1000, func() {}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	after := tk.Ticks()
	time.Sleep(10 * time.Millisecond)
	if tk.Ticks() != after {
		t.Fatal("ticker kept running after Run returned")
	}
}

func TestTickerRestartsAfterParentCancel(t *testing.T) {
	tk := NewTicker()
	if err := tk.Init(1000); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := tk.Start(ctx, func() {}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	if err := tk.Init(500); err != nil {
		t.Fatalf("Init() after parent cancel error = %v", err)
	}
	if err := tk.Start(context.Background(), func() {}); err != nil {
		t.Fatalf("Start() after parent cancel error = %v", err)
	}
	defer tk.Stop()

	if tk.Rate() != 500 {
		t.Fatalf("Rate() = %v, want 500", tk.Rate())
	}
	if err := tk.Init(250); !errors.Is(err, ErrRunning) {
		t.Fatalf("Init() on live run error = %v, want ErrRunning", err)
	}
}
