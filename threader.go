package itk

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/Dr-G/ITK/backend"
	"github.com/Dr-G/ITK/metrics"
)

// MultiThreader executes one registered function across N threads per
// dispatch round and aggregates the per-thread outcomes. Methods are safe
// for concurrent use; rounds are serialized per instance.
type MultiThreader struct {
	cfg config

	// roundMu makes dispatch rounds non-reentrant and protects the method
	// registrations and slot registries.
	roundMu sync.Mutex

	single     ThreadFunc
	singleData any

	slots *slotRegistry

	// multiple-method state; kept separate so MultipleMethodExecute cannot
	// corrupt single-method slots.
	multiFns  [MaxThreads]ThreadFunc
	multiData [MaxThreads]any
	multi     *slotRegistry

	// persistently spawned threads (SpawnThread / TerminateThread)
	spawned spawnedSet

	rounds        metrics.Counter
	spawnFailures metrics.Counter
	activeThreads metrics.UpDownCounter
	roundDuration metrics.Histogram
}

// New creates a MultiThreader using functional options.
func New(opts ...Option) (*MultiThreader, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	m := &MultiThreader{
		cfg:   cfg,
		slots: newSlotRegistry(),
		multi: newSlotRegistry(),
	}
	m.spawned.free = queue.New()
	for i := 0; i < MaxThreads; i++ {
		m.spawned.free.Add(i)
	}

	m.rounds = cfg.Metrics.Counter("dispatch.rounds",
		metrics.WithDescription("completed dispatch rounds"), metrics.WithUnit("1"))
	m.spawnFailures = cfg.Metrics.Counter("dispatch.spawn_failures",
		metrics.WithDescription("thread creations refused by the backend"), metrics.WithUnit("1"))
	m.activeThreads = cfg.Metrics.UpDownCounter("dispatch.active_threads",
		metrics.WithDescription("currently running spawned threads"), metrics.WithUnit("1"))
	m.roundDuration = cfg.Metrics.Histogram("dispatch.round_duration",
		metrics.WithDescription("dispatch round duration"), metrics.WithUnit("seconds"))

	return m, nil
}

// SetSingleMethod registers the function all threads of a dispatch round will
// run, together with an opaque data value handed to every invocation. It
// overwrites any prior registration and starts no threads.
func (m *MultiThreader) SetSingleMethod(fn ThreadFunc, data any) {
	m.roundMu.Lock()
	defer m.roundMu.Unlock()
	m.single = fn
	m.singleData = data
}

// SetNumberOfThreads sets the requested thread count for subsequent rounds.
// Values are clamped into [1, MaxThreads]; the global limit still applies
// per round.
func (m *MultiThreader) SetNumberOfThreads(n int) {
	if n < 1 {
		n = 1
	}
	if n > MaxThreads {
		n = MaxThreads
	}
	m.roundMu.Lock()
	defer m.roundMu.Unlock()
	m.cfg.NumberOfThreads = uint(n)
}

// NumberOfThreads returns the requested thread count, with an unset request
// resolved to the global limit. The effective count of a round is still
// clamped down against the limit at dispatch time.
func (m *MultiThreader) NumberOfThreads() int {
	m.roundMu.Lock()
	defer m.roundMu.Unlock()
	if m.cfg.NumberOfThreads > 0 {
		return int(m.cfg.NumberOfThreads)
	}
	return m.cfg.Limit.Max()
}

// SingleMethodExecute runs one dispatch round of the registered single
// method. It returns nil when every thread succeeded, the abort error itself
// when slot 0 aborted (after draining all spawned threads), or a single
// error wrapping ErrExecutionFailed otherwise.
func (m *MultiThreader) SingleMethodExecute() error {
	m.roundMu.Lock()
	defer m.roundMu.Unlock()

	if m.single == nil {
		return ErrNoSingleMethod
	}

	n := m.clampedThreadCount()
	m.slots.reset()
	for i := 0; i < n; i++ {
		m.slots.configure(i, m.single, m.singleData, n)
	}
	return m.executeRound(m.slots, n)
}

// clampedThreadCount resolves the effective thread count for one round:
// min(requested, limit), never below 1. Callers hold roundMu.
func (m *MultiThreader) clampedThreadCount() int {
	ceiling := m.cfg.Limit.Max()
	n := int(m.cfg.NumberOfThreads)
	if n == 0 || n > ceiling {
		n = ceiling
	}
	if n < 1 {
		n = 1
	}
	return n
}

// executeRound spawns threads 1..n-1 over the pre-configured registry, runs
// slot 0 inline, joins everything, and aggregates outcomes. Callers hold
// roundMu.
func (m *MultiThreader) executeRound(reg *slotRegistry, n int) error {
	start := time.Now()
	defer func() {
		m.rounds.Add(1)
		m.roundDuration.Record(time.Since(start).Seconds())
	}()

	// Spawn every thread even if an earlier spawn failed: threads already
	// started must not be orphaned, and the failure is recorded per slot.
	var handles [MaxThreads]backend.Handle
	for i := 1; i < n; i++ {
		s := reg.slot(i)
		h, err := m.cfg.Backend.Spawn(func() { supervise(s) })
		if err != nil {
			s.outcome = outcomeSpawnFailure
			s.err = fmt.Errorf("%w: %w", ErrSpawnFailed, err)
			m.spawnFailures.Add(1)
			continue
		}
		handles[i] = h
		m.activeThreads.Add(1)
	}

	// Slot 0 always runs on the calling goroutine, never via the backend.
	s0 := reg.slot(0)
	supervise(s0)

	if s0.outcome == outcomeAborted {
		// Drain all spawned threads best-effort, then re-raise the exact
		// abort condition, skipping aggregation.
		for i := 1; i < n; i++ {
			if handles[i] == nil {
				continue
			}
			_ = m.cfg.Backend.Wait(handles[i])
			m.activeThreads.Add(-1)
		}
		return s0.err
	}

	failed := false
	var last error
	if s0.outcome != outcomeSuccess {
		failed = true
		last = s0.err
	}

	// Wait in index order regardless of earlier failures. Completion order
	// is unspecified; only the last outcome observed here determines the
	// retained message (last-writer-wins, kept as documented behavior).
	for i := 1; i < n; i++ {
		if handles[i] != nil {
			if err := m.cfg.Backend.Wait(handles[i]); err != nil {
				failed = true
				last = fmt.Errorf("%w: %w", ErrSpawnFailed, err)
			}
			m.activeThreads.Add(-1)
		}
		if s := reg.slot(i); s.outcome != outcomeSuccess {
			failed = true
			if s.err != nil {
				last = s.err
			}
		}
	}

	if failed {
		if last == nil {
			return ErrExecutionFailed
		}
		return fmt.Errorf("%w: %w", ErrExecutionFailed, last)
	}
	return nil
}

// supervise invokes a slot's function and records the tagged outcome. It is
// the per-thread boundary: no failure, including a panic, escapes the thread
// it happened on.
func supervise(s *threadSlot) {
	defer func() {
		if r := recover(); r != nil {
			s.outcome = outcomeUserFailure
			s.err = fmt.Errorf("%w: %v", ErrThreadPanicked, r)
		}
	}()

	err := s.fn(&s.info)
	switch {
	case err == nil:
		s.outcome = outcomeSuccess
	case errors.Is(err, ErrProcessAborted):
		s.outcome = outcomeAborted
		s.err = err
	default:
		s.outcome = outcomeUserFailure
		s.err = err
	}
}
