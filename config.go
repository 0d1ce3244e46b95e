package itk

import (
	"github.com/ygrebnov/errorc"

	"github.com/Dr-G/ITK/backend"
	"github.com/Dr-G/ITK/metrics"
)

// config holds MultiThreader configuration.
type config struct {
	// NumberOfThreads is the requested thread count for dispatch rounds.
	// Zero (default) means "use the global limit at dispatch time". The
	// effective count of any round is additionally clamped down against the
	// limit; it is never raised.
	NumberOfThreads uint

	// Backend is the thread-creation strategy. Default: backend.NewOS().
	Backend backend.Backend

	// Limit is the thread-count ceiling consulted once per round.
	// Default: the process-wide global limit.
	Limit *GlobalLimit

	// Metrics provides the instruments dispatch rounds record into.
	// Default: a no-op provider.
	Metrics metrics.Provider
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		NumberOfThreads: 0, // resolve from Limit per round
		Backend:         backend.NewOS(),
		Limit:           globalLimit,
		Metrics:         metrics.NewNoopProvider(),
	}
}

// validateConfig performs lightweight invariants checks after options ran.
func validateConfig(cfg *config) error {
	if cfg.Backend == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "backend must not be nil"))
	}
	if cfg.Limit == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "global limit must not be nil"))
	}
	return nil
}

// Option configures a MultiThreader. Use New(opts...) to construct one.
type Option func(*config) error

// WithNumberOfThreads sets the requested thread count (must be > 0). The
// effective per-round count is still clamped against the global limit and
// MaxThreads.
func WithNumberOfThreads(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithNumberOfThreads requires n > 0"))
		}
		cfg.NumberOfThreads = n
		return nil
	}
}

// WithBackend selects the thread-creation strategy.
func WithBackend(b backend.Backend) Option {
	return func(cfg *config) error {
		if b == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithBackend requires a non-nil backend"))
		}
		cfg.Backend = b
		return nil
	}
}

// WithSequentialExecution selects the sequential fallback backend: all work
// of a round runs inline on the calling goroutine. Not suitable for
// SpawnThread, whose functions poll a cancellation flag that can only be
// cleared after Spawn returns.
func WithSequentialExecution() Option {
	return func(cfg *config) error {
		cfg.Backend = backend.NewSequential()
		return nil
	}
}

// WithGlobalLimit injects a dedicated thread-count limit instead of the
// process-wide one.
func WithGlobalLimit(l *GlobalLimit) Option {
	return func(cfg *config) error {
		if l == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithGlobalLimit requires a non-nil limit"))
		}
		cfg.Limit = l
		return nil
	}
}

// WithMetrics sets the metrics provider dispatch instrumentation records
// into (default: no-op).
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}
