package itk

import "sync"

// MaxThreads is the fixed capacity of every slot registry. Thread counts are
// always clamped to this value; it bounds memory, not parallelism policy.
const MaxThreads = 64

// ThreadFunc is the function shape executed on every thread of a dispatch
// round. It receives the per-thread ThreadInfo and reports failure through
// its error return. Returning an error that wraps ErrProcessAborted requests
// a cooperative abort.
type ThreadFunc func(info *ThreadInfo) error

// ThreadInfo carries the per-thread view of a dispatch round. All threads of
// a round see the same NumberOfThreads and UserData; ThreadID is 0-based and
// unique within the round.
type ThreadInfo struct {
	ThreadID        int
	NumberOfThreads int
	UserData        any

	// flag is armed only for threads started via SpawnThread; it is nil for
	// dispatch-round slots.
	flag *activeFlag
}

// Active reports whether the thread should keep running. For dispatch-round
// threads there is no cancellation flag and Active always returns true. For
// threads started via SpawnThread it turns false once TerminateThread has
// been called; the function is expected to poll it and return voluntarily.
func (i *ThreadInfo) Active() bool {
	if i.flag == nil {
		return true
	}
	return i.flag.get()
}

// activeFlag is the mutex-guarded cooperative-cancellation flag.
type activeFlag struct {
	mu     sync.Mutex
	active bool
}

func (f *activeFlag) get() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *activeFlag) clear() {
	f.mu.Lock()
	f.active = false
	f.mu.Unlock()
}

// outcome is the tagged result of one slot's supervised invocation.
type outcome int

const (
	outcomePending outcome = iota
	outcomeSuccess
	outcomeUserFailure
	outcomeAborted
	outcomeSpawnFailure
)

// threadSlot is one per-thread execution record. Slots are owned exclusively
// by the MultiThreader; nothing outside the dispatcher mutates them during a
// round.
type threadSlot struct {
	info ThreadInfo
	fn   ThreadFunc

	outcome outcome
	err     error
}

// slotRegistry is a fixed arena of execution records, reused across rounds.
type slotRegistry struct {
	slots [MaxThreads]threadSlot
}

func newSlotRegistry() *slotRegistry {
	r := &slotRegistry{}
	for i := range r.slots {
		r.slots[i].info.ThreadID = i
	}
	r.reset()
	return r
}

// reset restores every slot to the not-yet-run state and clears diagnostics.
// ThreadID assignments are stable for the registry's lifetime.
func (r *slotRegistry) reset() {
	for i := range r.slots {
		s := &r.slots[i]
		s.fn = nil
		s.info.NumberOfThreads = 0
		s.info.UserData = nil
		s.outcome = outcomePending
		s.err = nil
	}
}

// configure writes the function/data/threadCount triple into slot i. The
// dispatcher configures all slots from the calling goroutine before any
// spawn, so no locking is needed here.
func (r *slotRegistry) configure(i int, fn ThreadFunc, data any, threadCount int) {
	s := &r.slots[i]
	s.fn = fn
	s.info.UserData = data
	s.info.NumberOfThreads = threadCount
	s.outcome = outcomePending
	s.err = nil
}

func (r *slotRegistry) slot(i int) *threadSlot { return &r.slots[i] }
