package clock

import (
	"context"
	"sync"
)

// Manual is a Source that ticks only when stepped. It is meant for tests and
// offline rendering where wall-clock time is irrelevant.
type Manual struct {
	mu      sync.Mutex
	rate    float64
	handler Handler
	ticks   uint64
}

var _ Source = (*Manual)(nil)

// Init sets the nominal tick rate.
func (m *Manual) Init(rate float64) error {
	if err := validateRate(rate); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handler != nil {
		return ErrRunning
	}
	m.rate = rate
	return nil
}

// Start arms the source with h. The context is not used: a manual source
// only ticks when stepped.
func (m *Manual) Start(_ context.Context, h Handler) error {
	if h == nil {
		return ErrNilHandler
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rate == 0 {
		return ErrNotInitialized
	}
	if m.handler != nil {
		return ErrRunning
	}
	m.handler = h
	m.ticks = 0
	return nil
}

// Stop disarms the source.
func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = nil
}

// Step invokes the handler up to n times and returns how many ticks were
// delivered; zero when the source is stopped. The handler runs without the
// source's lock held, so it may query or stop the source. Stepping ends early
// once the source is stopped.
func (m *Manual) Step(n int) int {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	if h == nil || n <= 0 {
		return 0
	}

	for i := range n {
		h()

		m.mu.Lock()
		m.ticks++
		stopped := m.handler == nil
		m.mu.Unlock()
		if stopped {
			return i + 1
		}
	}
	return n
}

// Rate returns the nominal tick rate.
func (m *Manual) Rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

// Ticks returns the number of ticks delivered since Start.
func (m *Manual) Ticks() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}
