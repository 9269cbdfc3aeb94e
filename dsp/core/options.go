package core

// TickConfig defines the fixed cadence shared by an oscillator and the
// block helpers that drive it.
type TickConfig struct {
	// TickRate is the number of ticks per second delivered by the periodic
	// source.
	TickRate float64
	// BlockSize is the number of ticks rendered per block by host tools.
	BlockSize int
}

// Option mutates a TickConfig.
type Option func(*TickConfig)

// DefaultTickConfig returns the control-rate defaults: a 1 kHz tick and
// 64-tick blocks.
func DefaultTickConfig() TickConfig {
	return TickConfig{
		TickRate:  1000,
		BlockSize: 64,
	}
}

// WithTickRate sets the tick rate in Hz. Non-positive values are ignored.
func WithTickRate(tickRate float64) Option {
	return func(cfg *TickConfig) {
		if tickRate > 0 {
			cfg.TickRate = tickRate
		}
	}
}

// WithBlockSize sets the block size. Non-positive values are ignored.
func WithBlockSize(blockSize int) Option {
	return func(cfg *TickConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) TickConfig {
	cfg := DefaultTickConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
