package itk

import (
	"runtime"
	"sync/atomic"
)

// GlobalLimit is a process-wide ceiling on concurrently usable threads.
// Reads and writes are atomic; no further locking is required. The zero
// value is ready to use: the first read resolves the default from the number
// of available CPUs.
//
// A MultiThreader consults its limit exactly once per dispatch round, so a
// concurrent SetMax never affects a round already in progress.
type GlobalLimit struct {
	max atomic.Int64
}

// NewGlobalLimit returns a limit with the default (CPU-derived) ceiling.
func NewGlobalLimit() *GlobalLimit { return &GlobalLimit{} }

// Max returns the current ceiling, resolving the CPU-derived default on
// first use. The result is always within [1, MaxThreads].
func (l *GlobalLimit) Max() int {
	if v := l.max.Load(); v > 0 {
		return int(v)
	}
	d := int64(defaultNumberOfThreads())
	// Another goroutine may resolve the default or set a value concurrently;
	// either way the stored value wins.
	l.max.CompareAndSwap(0, d)
	return int(l.max.Load())
}

// SetMax sets the ceiling, clamping it into [1, MaxThreads]. It takes effect
// for subsequent dispatch rounds only.
func (l *GlobalLimit) SetMax(n int) {
	if n < 1 {
		n = 1
	}
	if n > MaxThreads {
		n = MaxThreads
	}
	l.max.Store(int64(n))
}

func defaultNumberOfThreads() int {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	if n > MaxThreads {
		n = MaxThreads
	}
	return n
}

// globalLimit is the process-wide default instance used by every
// MultiThreader that was not given an explicit limit via WithGlobalLimit.
var globalLimit = NewGlobalLimit()

// GetGlobalMaximumNumberOfThreads returns the process-wide thread ceiling.
func GetGlobalMaximumNumberOfThreads() int { return globalLimit.Max() }

// SetGlobalMaximumNumberOfThreads sets the process-wide thread ceiling,
// clamped into [1, MaxThreads]. Rounds already in progress are unaffected.
func SetGlobalMaximumNumberOfThreads(n int) { globalLimit.SetMax(n) }
